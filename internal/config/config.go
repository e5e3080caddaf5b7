package config

import (
	"fmt"
	"os"

	"Aethermodem/pkg/device"
	"Aethermodem/pkg/layers"
	"Aethermodem/pkg/modem"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Device struct {
		Backend    string  `yaml:"backend"`
		DeviceName string  `yaml:"device_name"`
		SampleRate float64 `yaml:"sample_rate"`
		InChannel  int     `yaml:"in_channel"`
		OutChannel int     `yaml:"out_channel"`
	} `yaml:"device"`

	Modem struct {
		modem.Config `yaml:",inline"`
		Encoder      modem.EncoderType `yaml:"encoder"`
		Decoder      modem.DecoderType `yaml:"decoder"`
		Normalize    bool              `yaml:"normalize"`
	} `yaml:"modem"`

	PhysicalLayer struct {
		OutputBufferSize int `yaml:"output_buffer_size"`
	} `yaml:"physical_layer"`

	Channel struct {
		Gain  float32 `yaml:"gain"`
		Noise float64 `yaml:"noise"`
		Seed  uint64  `yaml:"seed"`
	} `yaml:"channel"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

const (
	BackendLoopback  = "loopback"
	BackendASIO      = "asio"
	BackendPortAudio = "portaudio"
)

func Default() *Config {
	var config Config
	config.Device.Backend = BackendLoopback
	config.Device.SampleRate = 48000
	config.Modem.Config = modem.DefaultConfig()
	config.Modem.Encoder = modem.BasicEncoderType
	config.Modem.Decoder = modem.DFTDecoderType
	config.PhysicalLayer.OutputBufferSize = 16
	config.Channel.Gain = 1
	config.Channel.Seed = 1
	config.Log.Level = logrus.InfoLevel.String()
	return &config
}

// LoadConfig reads a YAML file over the defaults, so absent keys keep
// their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) SampleRate() int {
	return int(c.Device.SampleRate)
}

func CreateDevice(config *Config) (device.Device, error) {
	switch config.Device.Backend {
	case BackendLoopback, "":
		return &device.Loopback{SampleRate: config.Device.SampleRate}, nil
	case BackendASIO:
		return device.NewASIO(config.Device.DeviceName, config.Device.SampleRate, config.Device.InChannel, config.Device.OutChannel)
	case BackendPortAudio:
		return device.NewPortAudio(config.Device.SampleRate)
	}
	return nil, fmt.Errorf("backend %q: %w", config.Device.Backend, device.ErrUnsupportedBackend)
}

// CreateNetwork builds a two node network where both nodes share one
// medium shaped by the channel section.
func CreateNetwork(config *Config) *device.Network[string] {
	return &device.Network[string]{
		Config: device.NetworkConfig[string]{
			{In: "air", Out: "air"},
			{In: "air", Out: "air"},
		},
		Channel: device.Channel{
			Gain:  config.Channel.Gain,
			Noise: config.Channel.Noise,
			Seed:  config.Channel.Seed,
		},
	}
}

func CreateEncoder(config *Config) (modem.Encoder, error) {
	return modem.NewEncoder(config.Modem.Encoder, config.Modem.Config, config.SampleRate())
}

func CreateDecoder(config *Config) (modem.Decoder, error) {
	decoder, err := modem.NewDecoder(config.Modem.Decoder, config.Modem.Config, config.SampleRate())
	if err != nil {
		return nil, err
	}
	if dft, ok := decoder.(*modem.DFTDecoder); ok {
		dft.Normalize = config.Modem.Normalize
	}
	return decoder, nil
}

func CreatePhysicalLayer(config *Config, dev device.Device) (*layers.PhysicalLayer, error) {
	encoder, err := CreateEncoder(config)
	if err != nil {
		return nil, err
	}
	decoder, err := CreateDecoder(config)
	if err != nil {
		return nil, err
	}
	return &layers.PhysicalLayer{
		Device:     dev,
		Encoder:    encoder,
		Decoder:    decoder,
		BufferSize: config.PhysicalLayer.OutputBufferSize,
	}, nil
}

func CreateNaiveDataLinkLayer(config *Config, dev device.Device, address byte) (*layers.NaiveDataLinkLayer, error) {
	encoder, err := CreateEncoder(config)
	if err != nil {
		return nil, err
	}
	decoder, err := CreateDecoder(config)
	if err != nil {
		return nil, err
	}
	return &layers.NaiveDataLinkLayer{
		PhysicalLayer: layers.PhysicalLayer{
			Device:     dev,
			Encoder:    encoder,
			Decoder:    decoder,
			BufferSize: config.PhysicalLayer.OutputBufferSize,
		},
		Address:    address,
		BufferSize: config.PhysicalLayer.OutputBufferSize,
	}, nil
}
