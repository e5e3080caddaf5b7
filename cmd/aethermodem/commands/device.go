package commands

import (
	"fmt"
	"time"

	"Aethermodem/internal/callbacks"
	"Aethermodem/internal/config"
	"Aethermodem/internal/utils"
	"Aethermodem/pkg/async"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	recordDuration time.Duration
	playRecordFile string
)

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Play a message on the audio device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := config.CreateDevice(cfg)
		if err != nil {
			return err
		}
		p, err := config.CreatePhysicalLayer(cfg, dev)
		if err != nil {
			return err
		}
		if err := p.Open(); err != nil {
			return err
		}
		defer p.Close()
		p.Listen(false)
		return p.Send(args[0])
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print messages heard by the audio device until Enter is pressed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := config.CreateDevice(cfg)
		if err != nil {
			return err
		}
		p, err := config.CreatePhysicalLayer(cfg, dev)
		if err != nil {
			return err
		}
		if err := p.Open(); err != nil {
			return err
		}
		defer p.Close()

		fmt.Fprintln(cmd.ErrOrStderr(), "Listening, press Enter to stop")
		stop := async.Line(cmd.InOrStdin())
		for {
			select {
			case message := <-p.ReceiveAsync():
				fmt.Fprintln(cmd.OutOrStdout(), message)
			case <-stop:
				return nil
			}
		}
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Save raw audio device input to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := config.CreateDevice(cfg)
		if err != nil {
			return err
		}
		recorder := &callbacks.Recorder{Limit: int(recordDuration.Seconds() * cfg.Device.SampleRate)}
		if err := dev.Start(recorder.Update); err != nil {
			return fmt.Errorf("start device: %w", err)
		}

		stop := async.Line(cmd.InOrStdin())
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
	wait:
		for !recorder.Full() {
			select {
			case <-stop:
				break wait
			case <-ticker.C:
			}
		}
		dev.Stop()

		track := recorder.Track()
		if err := utils.WriteSamples(outputFile, track); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"file": outputFile, "samples": len(track)}).Info("recording saved")
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a sample file on the audio device",
	Long: `Play a sample file on the audio device. With -o the device input
is recorded while the file plays.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := utils.ReadSamples(args[0])
		if err != nil {
			return err
		}
		dev, err := config.CreateDevice(cfg)
		if err != nil {
			return err
		}
		player := &callbacks.Player{Track: track}
		recorder := &callbacks.Recorder{}
		if err := dev.Start(callbacks.Chain(recorder.Update, player.Update)); err != nil {
			return fmt.Errorf("start device: %w", err)
		}
		ticker := time.NewTicker(10 * time.Millisecond)
		for !player.Done() {
			<-ticker.C
		}
		ticker.Stop()
		dev.Stop()

		if playRecordFile != "" {
			return utils.WriteSamples(playRecordFile, recorder.Track())
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVarP(&playRecordFile, "output", "o", "", "record the input to this file while playing")

	recordCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output sample file")
	recordCmd.MarkFlagRequired("output")
	recordCmd.Flags().DurationVar(&recordDuration, "duration", 5*time.Second, "maximum recording length")

	rootCmd.AddCommand(sendCmd, listenCmd, recordCmd, playCmd)
}
