package config

import (
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/zllovesuki/OverlayManager/controller"
	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/system/remote"
	"github.com/zllovesuki/OverlayManager/system/surface"
	"github.com/zllovesuki/OverlayManager/supervisor"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sink names accepted by display.sinks
const (
	SinkSDL      = "sdl"
	SinkTerminal = "terminal"
)

type Display struct {
	Width  int      `yaml:"width" validate:"gte=160,lte=7680"`
	Height int      `yaml:"height" validate:"gte=120,lte=4320"`
	Font   string   `yaml:"font" validate:"omitempty,file"`
	Sinks  []string `yaml:"sinks" validate:"dive,oneof=sdl terminal"`
}

type Timeouts struct {
	ChannelInfo    time.Duration `yaml:"channel_info" validate:"gte=0"`
	ChannelMessage time.Duration `yaml:"channel_message" validate:"gte=0"`
	Volume         time.Duration `yaml:"volume" validate:"gte=0"`
}

// Remote selects the USB IR receiver. The HID listener is disabled when VendorID is zero.
type Remote struct {
	VendorID   uint16   `yaml:"vendor_id"`
	ProductID  uint16   `yaml:"product_id" validate:"required_with=VendorID"`
	Interfaces []string `yaml:"interfaces"`
}

type Controller struct {
	DigitDelay    time.Duration `yaml:"digit_delay" validate:"gt=0"`
	VolumeStep    float64       `yaml:"volume_step" validate:"gt=0,lte=1"`
	InitialVolume float64       `yaml:"initial_volume" validate:"gte=0,lte=1"`
}

type Channel struct {
	Number    uint16   `yaml:"number" validate:"gte=1,lte=9999"`
	Name      string   `yaml:"name" validate:"required"`
	Subtitles []string `yaml:"subtitles" validate:"dive,langcode"`
}

type Log struct {
	// Path of the rotated log file, used by release builds and whenever the terminal preview
	// owns the terminal. Empty keeps the compiled-in location.
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size" validate:"gte=1"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// Config is the manager configuration file
type Config struct {
	Display    Display    `yaml:"display"`
	Timeouts   Timeouts   `yaml:"timeouts"`
	Remote     Remote     `yaml:"remote"`
	Controller Controller `yaml:"controller"`
	Lineup     []Channel  `yaml:"lineup" validate:"required,min=1,unique=Number,dive"`

	GRPCAddress string `yaml:"grpc_address" validate:"hostname_port"`
	WebAddress  string `yaml:"web_address" validate:"omitempty,hostname_port"`
	StatePath   string `yaml:"state_path" validate:"required"`
	Log         Log    `yaml:"log"`
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func validate() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
		if err := validatorInst.RegisterValidation("langcode", validLanguageCode); err != nil {
			panic(err)
		}
	})
	return validatorInst
}

// validLanguageCode accepts the subtitle codes the channel info banner can show
func validLanguageCode(fl validator.FieldLevel) bool {
	_, err := overlay.FormatSubtitleList([]string{fl.Field().String()})
	return err == nil
}

// Default returns the configuration used for every key missing from the file
func Default() Config {
	return Config{
		Display: Display{
			Width:  1920,
			Height: 1080,
		},
		Timeouts: Timeouts{
			ChannelInfo:    overlay.DefaultChannelInfoTimeout,
			ChannelMessage: overlay.DefaultChannelMessageTimeout,
			Volume:         overlay.DefaultVolumeTimeout,
		},
		Controller: Controller{
			DigitDelay:    controller.DefaultDigitDelay,
			VolumeStep:    controller.DefaultVolumeStep,
			InitialVolume: 0.5,
		},
		Lineup: []Channel{
			{Number: 1, Name: "Channel 1"},
		},
		GRPCAddress: supervisor.DefaultGRPCAddress,
		WebAddress:  "127.0.0.1:9963",
		StatePath:   "overlay-state.yaml",
		Log: Log{
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Parse decodes a YAML document over the defaults and validates the result
func Parse(b []byte) (Config, error) {
	conf := Default()
	if len(b) > 0 {
		// the lineup in the file replaces the default one rather than merging into it
		conf.Lineup = nil
		if err := yaml.Unmarshal(b, &conf); err != nil {
			return Config{}, errors.Wrap(err, "[config] malformed configuration")
		}
		if conf.Lineup == nil {
			conf.Lineup = Default().Lineup
		}
	}
	if err := validate().Struct(conf); err != nil {
		return Config{}, errors.Wrap(err, "[config] invalid configuration")
	}
	return conf, nil
}

// Load reads and parses the file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return Config{}, errors.Wrapf(err, "[config] cannot read %s", path)
	}
	return Parse(b)
}

// OverlayTimeouts returns the banner deadlines
func (c Config) OverlayTimeouts() overlay.Timeouts {
	return overlay.Timeouts{
		ChannelInfo:    c.Timeouts.ChannelInfo,
		ChannelMessage: c.Timeouts.ChannelMessage,
		Volume:         c.Timeouts.Volume,
	}
}

func (c Config) ChannelLineup() []controller.Channel {
	lineup := make([]controller.Channel, 0, len(c.Lineup))
	for _, ch := range c.Lineup {
		lineup = append(lineup, controller.Channel{
			Number:    ch.Number,
			Name:      ch.Name,
			Subtitles: ch.Subtitles,
		})
	}
	return lineup
}

func (c Config) Hid() (remote.HidConfig, bool) {
	return remote.HidConfig{
		VendorID:   c.Remote.VendorID,
		ProductID:  c.Remote.ProductID,
		Interfaces: c.Remote.Interfaces,
	}, c.Remote.VendorID != 0
}

// Raster returns the surface configuration without sinks; those are attached by the caller
func (c Config) Raster() surface.RasterConfig {
	return surface.RasterConfig{
		Width:    c.Display.Width,
		Height:   c.Display.Height,
		FontPath: c.Display.Font,
	}
}
