// Command aethermodem sends and receives short text messages as sound.
//
// Usage:
//
//	aethermodem [--config file] [--log-level level] <command> [args]
//
// Commands:
//
//	encode   - write the samples of a message to a file
//	decode   - print the messages found in a sample file
//	simulate - pass messages through a simulated noisy medium
//	send     - play a message on the audio device
//	listen   - print messages heard by the audio device
//	record   - save raw audio device input to a file
//	play     - play a sample file on the audio device
//	chat     - exchange lines of text with other nodes
package main

import (
	"fmt"
	"os"

	"Aethermodem/cmd/aethermodem/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
