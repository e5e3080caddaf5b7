package commands

import (
	"bufio"
	"fmt"

	"Aethermodem/internal/config"
	"Aethermodem/pkg/async"

	"github.com/spf13/cobra"
)

var chatAddress uint8

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Exchange lines of text with other nodes on the audio device",
	Long: `Send every line read from stdin and print the lines other nodes
send. Each node needs its own address; a node never prints what it
sent itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := config.CreateDevice(cfg)
		if err != nil {
			return err
		}
		node, err := config.CreateNaiveDataLinkLayer(cfg, dev, chatAddress)
		if err != nil {
			return err
		}
		if err := node.Open(); err != nil {
			return err
		}
		defer node.Close()

		lines := make(chan string)
		input := async.Job(func() {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		})
		out := cmd.OutOrStdout()
		for {
			select {
			case line := <-lines:
				if err := node.Send(line); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "send:", err)
				}
			case packet := <-node.ReceiveAsync():
				fmt.Fprintf(out, "[%02x] %s\n", packet.Source, packet.Message)
			case <-input:
				return nil
			}
		}
	},
}

func init() {
	chatCmd.Flags().Uint8Var(&chatAddress, "address", 1, "address of this node")
	rootCmd.AddCommand(chatCmd)
}
