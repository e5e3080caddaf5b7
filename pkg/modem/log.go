package modem

import "github.com/sirupsen/logrus"

var logger = logrus.WithField("component", "modem")

// debugLog skips formatting entirely unless debug logging is on.
func debugLog(fields logrus.Fields, format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logger.WithFields(fields).Debugf(format, args...)
}
