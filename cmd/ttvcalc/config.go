package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI configuration
type Config struct {
	Input      string  `env:"TTV_INPUT"`
	Ticks      int     `env:"TTV_TICKS"       envDefault:"4"`
	Format     string  `env:"TTV_FORMAT"      envDefault:"text"`
	LogLevel   string  `env:"TTV_LOG_LEVEL"   envDefault:"info"`
	Locale     string  `env:"TTV_LOCALE"      envDefault:"en"`
	TankVolume float64 `env:"TTV_TANK_VOLUME" envDefault:"70"`
}

// loadConfig resolves the configuration from environment variables, then
// lets command line flags override them. A leading positional argument is
// taken as the input path when --input is not given.
func loadConfig(args []string, output io.Writer) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("ttvcalc", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Input, "input", cfg.Input, "path to the tank JSON file (required)")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "number of reaction ticks to run")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "language tag used to format numbers in text output")
	fs.Float64Var(&cfg.TankVolume, "tank-volume", cfg.TankVolume, "volume in liters of tanks that do not set one")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Input == "" && fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var errs []error
	if cfg.Input == "" {
		errs = append(errs, errors.New("--input is required"))
	}
	if cfg.Ticks < 0 {
		errs = append(errs, fmt.Errorf("--ticks cannot be negative, got %d", cfg.Ticks))
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		errs = append(errs, fmt.Errorf("unknown --format %q, expected text or json", cfg.Format))
	}
	if cfg.TankVolume <= 0 {
		errs = append(errs, fmt.Errorf("--tank-volume must be positive, got %g", cfg.TankVolume))
	}
	return errors.Join(errs...)
}
