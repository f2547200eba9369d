package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/daniacca/ttvsim/internal/atmos"
	"github.com/daniacca/ttvsim/internal/calc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.LogLevel, stderr)

	tag, err := calc.ParseLocale(cfg.Locale)
	if err != nil {
		return err
	}

	input, err := calc.LoadConfig(cfg.Input)
	if err != nil {
		return fmt.Errorf("loading tanks: %w", err)
	}
	logger.Debugf("loaded %s (hot tank: %v)", cfg.Input, input.Hot != nil)

	registry := atmos.NewDefaultRegistry(atmos.WithLogger(logger))
	calculator := calc.NewCalculator(registry,
		calc.WithLogger(logger),
		calc.WithTicks(cfg.Ticks),
		calc.WithTankVolume(cfg.TankVolume),
		calc.WithNotifier(atmos.NewLogNotifier("log", logger)),
	)

	report, err := calculator.Calculate(ctx, input)
	if err != nil {
		return err
	}

	if cfg.Format == "json" {
		return report.RenderJSON(stdout)
	}
	return report.RenderText(stdout, tag)
}
