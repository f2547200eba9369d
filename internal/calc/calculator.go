package calc

import (
	"context"
	"fmt"

	"github.com/daniacca/ttvsim/internal/atmos"
	"github.com/google/uuid"
)

// DefaultTicks is the number of reaction ticks a calculation runs.
const DefaultTicks = 4

// Calculator merges the tanks of a Config and reacts the result.
// A Calculator holds no per-calculation state and may be reused.
type Calculator struct {
	registry  *atmos.Registry
	logger    atmos.Logger
	ticks     int
	volume    float64
	notifiers []atmos.Notifier
	newID     func() string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger.
func WithLogger(logger atmos.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTicks sets how many ticks each calculation runs.
func WithTicks(ticks int) Option {
	return func(c *Calculator) {
		if ticks >= 0 {
			c.ticks = ticks
		}
	}
}

// WithTankVolume sets the volume of tanks that do not set their own.
func WithTankVolume(volume float64) Option {
	return func(c *Calculator) {
		if volume > 0 {
			c.volume = volume
		}
	}
}

// WithNotifier adds a notifier that receives every reaction event.
// It is never closed by the Calculator.
func WithNotifier(n atmos.Notifier) Option {
	return func(c *Calculator) {
		if n != nil {
			c.notifiers = append(c.notifiers, n)
		}
	}
}

// NewCalculator creates a calculator over registry. A nil registry uses the
// default reaction table.
func NewCalculator(registry *atmos.Registry, opts ...Option) *Calculator {
	c := &Calculator{
		logger: atmos.NewNoOpLogger(),
		ticks:  DefaultTicks,
		volume: DefaultTankVolume,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if registry == nil {
		registry = atmos.NewDefaultRegistry(atmos.WithLogger(c.logger))
	}
	c.registry = registry
	return c
}

// Calculate builds the tanks described by cfg, merges them and runs the
// configured number of reaction ticks on the merged mixture.
func (c *Calculator) Calculate(ctx context.Context, cfg Config) (*Report, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	report := &Report{
		ID:   c.newID(),
		Name: cfg.Name,
	}

	cold, err := cfg.Cold.Mixture(c.volume)
	if err != nil {
		return nil, fmt.Errorf("building cold tank: %w", err)
	}
	report.Cold = cold.Snapshot()

	var mixture *atmos.Mixture
	if cfg.Hot != nil {
		hot, err := cfg.Hot.Mixture(c.volume)
		if err != nil {
			return nil, fmt.Errorf("building hot tank: %w", err)
		}
		snapshot := hot.Snapshot()
		report.Hot = &snapshot
		mixture = atmos.Merge(cold, hot)
	} else {
		mixture = cold.Clone()
	}
	report.Merged = mixture.Snapshot()

	recorder := atmos.NewRecordingNotifier("report")
	manager := atmos.NewNotificationManager()
	if err := manager.RegisterNotifier(recorder); err != nil {
		return nil, err
	}
	for _, n := range c.notifiers {
		if err := manager.RegisterNotifier(n); err != nil {
			return nil, fmt.Errorf("registering notifier: %w", err)
		}
	}

	c.logger.Debugf("calculation %s started: temperature=%g pressure=%g ticks=%d",
		report.ID, mixture.Temperature, mixture.Pressure(), c.ticks)

	for tick := 1; tick <= c.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("calculation interrupted at tick %d: %w", tick, err)
		}

		result := c.registry.ReactObserved(mixture, func(r atmos.Reaction, m *atmos.Mixture) {
			event := atmos.ReactionEvent{
				CalculationID: report.ID,
				Tick:          tick,
				Reaction:      r.ID,
				Name:          r.DisplayName(),
				Priority:      r.Priority.String(),
				Temperature:   m.Temperature,
				Pressure:      m.Pressure(),
				TotalMoles:    m.TotalMoles(),
			}
			if err := manager.Notify(ctx, event); err != nil {
				c.logger.Warnf("failed to deliver reaction event: %v", err)
			}
		})
		report.Ticks = append(report.Ticks, newTick(tick, result))
	}

	report.Events = recorder.Events()
	report.Combined = mixture.Snapshot()
	report.BombRange = atmos.BombRange(report.Combined.Pressure)

	c.logger.Infof("calculation %s finished: reactions=%d pressure=%g bomb_range=%g",
		report.ID, len(report.Events), report.Combined.Pressure, report.BombRange)

	return report, nil
}
