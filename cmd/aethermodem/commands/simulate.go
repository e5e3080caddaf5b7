package commands

import (
	"fmt"
	"time"

	"Aethermodem/internal/config"
	"Aethermodem/pkg/async"
	"Aethermodem/pkg/modem"

	"github.com/spf13/cobra"
)

var (
	simulateNoise   float64
	simulateDecoder string
	simulateTimeout time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <message>...",
	Short: "Pass messages through a simulated noisy medium",
	Long: `Pass messages between two simulated nodes sharing one medium and
print what the receiving node decodes. The channel section of the
config sets gain, noise and seed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("noise") {
			cfg.Channel.Noise = simulateNoise
		}
		if simulateDecoder != "" {
			cfg.Modem.Decoder = modem.DecoderType(simulateDecoder)
		}

		network := config.CreateNetwork(cfg)
		devs := network.Build()
		sender, err := config.CreatePhysicalLayer(cfg, devs[0])
		if err != nil {
			return err
		}
		receiver, err := config.CreatePhysicalLayer(cfg, devs[1])
		if err != nil {
			return err
		}
		if err := sender.Open(); err != nil {
			return err
		}
		if err := receiver.Open(); err != nil {
			network.Stop()
			return err
		}
		defer network.Stop()

		received := async.Try(func() ([]string, error) {
			var messages []string
			for range args {
				message, err := receiver.ReceiveWithTimeout(simulateTimeout)
				if err != nil {
					return messages, err
				}
				messages = append(messages, message)
			}
			return messages, nil
		})
		for _, message := range args {
			if err := sender.Send(message); err != nil {
				return err
			}
		}

		result := async.Await(received)
		for _, message := range result.Value {
			fmt.Fprintln(cmd.OutOrStdout(), message)
		}
		return result.Err
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateNoise, "noise", 0, "standard deviation of channel noise")
	simulateCmd.Flags().StringVarP(&simulateDecoder, "decoder", "d", "", "decoder variant (dft or comparator)")
	simulateCmd.Flags().DurationVar(&simulateTimeout, "timeout", 5*time.Second, "how long to wait for each message")
	rootCmd.AddCommand(simulateCmd)
}
