package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the runtime configuration for the parking monitor.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Detector DetectorConfig
	Spaces   SpacesConfig
	Monitor  MonitorConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr        string `validate:"required"`
	MetricsAddr string `validate:"required"`
	PprofAddr   string
}

type SourceConfig struct {
	// Descriptor is the frame source: an MJPEG URL, a local file path,
	// or a YouTube page URL (resolved through yt-dlp).
	Descriptor string
	// FrameStride processes every Nth frame; skipped frames are passed
	// through for display without detection.
	FrameStride int `validate:"min=1"`
	TargetFPS   int `validate:"min=1,max=120"`
}

type DetectorConfig struct {
	BaseURL        string        `validate:"required,url"`
	VehicleClass   string        `validate:"required"`
	MinConfidence  float64       `validate:"min=0,max=1"`
	RequestTimeout time.Duration
}

type SpacesConfig struct {
	// Dir holds the parking_spaces*.json configuration files.
	Dir string `validate:"required"`
	// File is the active configuration file name within Dir.
	File string `validate:"required"`
}

type MonitorConfig struct {
	StatusInterval time.Duration
	MJPEGInterval  time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables (and an optional
// .env file) with defaults matching the original monitor behavior.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env is optional; env vars alone are enough.
	_ = viper.ReadInConfig()

	setDefaults()

	cfg := &Config{
		Server: ServerConfig{
			Addr:        viper.GetString("HTTP_ADDR"),
			MetricsAddr: viper.GetString("METRICS_ADDR"),
			PprofAddr:   viper.GetString("PPROF_ADDR"),
		},
		Source: SourceConfig{
			Descriptor:  viper.GetString("SOURCE_URL"),
			FrameStride: viper.GetInt("FRAME_STRIDE"),
			TargetFPS:   viper.GetInt("TARGET_FPS"),
		},
		Detector: DetectorConfig{
			BaseURL:        viper.GetString("DETECTOR_URL"),
			VehicleClass:   viper.GetString("DETECTOR_VEHICLE_CLASS"),
			MinConfidence:  viper.GetFloat64("DETECTOR_MIN_CONFIDENCE"),
			RequestTimeout: viper.GetDuration("DETECTOR_TIMEOUT"),
		},
		Spaces: SpacesConfig{
			Dir:  viper.GetString("SPACES_DIR"),
			File: viper.GetString("SPACES_FILE"),
		},
		Monitor: MonitorConfig{
			StatusInterval: viper.GetDuration("STATUS_INTERVAL"),
			MJPEGInterval:  viper.GetDuration("MJPEG_INTERVAL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration constraints. Callers that override
// fields after Load (e.g. command line flags) must validate again before
// using the values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("METRICS_ADDR", ":9090")
	viper.SetDefault("PPROF_ADDR", ":6060")
	viper.SetDefault("FRAME_STRIDE", 1)
	viper.SetDefault("TARGET_FPS", 10)
	viper.SetDefault("DETECTOR_URL", "http://localhost:8500")
	viper.SetDefault("DETECTOR_VEHICLE_CLASS", "car")
	viper.SetDefault("DETECTOR_MIN_CONFIDENCE", 0.25)
	viper.SetDefault("DETECTOR_TIMEOUT", 5*time.Second)
	viper.SetDefault("SPACES_DIR", ".")
	viper.SetDefault("SPACES_FILE", "parking_spaces1.json")
	viper.SetDefault("STATUS_INTERVAL", 2*time.Second)
	viper.SetDefault("MJPEG_INTERVAL", 100*time.Millisecond)
	viper.SetDefault("LOG_LEVEL", "info")
}
