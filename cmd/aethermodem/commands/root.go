package commands

import (
	"fmt"

	"Aethermodem/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "aethermodem",
	Short:         "FSK acoustic text modem",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configFile != "" {
			cfg, err = config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
		} else {
			cfg = config.Default()
		}
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides the config file)")
}

func setupLogging(cmd *cobra.Command) error {
	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
