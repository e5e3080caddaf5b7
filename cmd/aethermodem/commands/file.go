package commands

import (
	"fmt"

	"Aethermodem/internal/config"
	"Aethermodem/internal/utils"
	"Aethermodem/pkg/modem"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	outputFile  string
	decoderType string
	chunkSize   int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <message>",
	Short: "Write the samples of a message to a file",
	Long: `Write the samples of a message to a file.

Files ending in .txt get one sample per line, anything else raw
little endian float32.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder, err := config.CreateEncoder(cfg)
		if err != nil {
			return err
		}
		samples, err := encoder.Modulate(args[0])
		if err != nil {
			return err
		}
		if err := utils.WriteSamples(outputFile, samples); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"file": outputFile, "samples": len(samples)}).Info("message encoded")
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print the messages found in a sample file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if decoderType != "" {
			cfg.Modem.Decoder = modem.DecoderType(decoderType)
		}
		if chunkSize <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
		}
		decoder, err := config.CreateDecoder(cfg)
		if err != nil {
			return err
		}
		samples, err := utils.ReadSamples(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		decoder.Subscribe(func(message string) {
			fmt.Fprintln(out, message)
		})
		for i := 0; i < len(samples); i += chunkSize {
			decoder.Demodulate(samples[i:min(i+chunkSize, len(samples))])
		}
		decoder.Flush()
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output sample file")
	encodeCmd.MarkFlagRequired("output")

	decodeCmd.Flags().StringVarP(&decoderType, "decoder", "d", "", "decoder variant (dft or comparator)")
	decodeCmd.Flags().IntVar(&chunkSize, "chunk", 512, "samples per decode call")

	rootCmd.AddCommand(encodeCmd, decodeCmd)
}
