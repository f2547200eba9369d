package calc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/daniacca/ttvsim/internal/atmos"
	"github.com/google/uuid"
)

type captureLogger struct {
	warnings []string
	infos    []string
}

func (l *captureLogger) Debugf(format string, v ...any) {}
func (l *captureLogger) Infof(format string, v ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *captureLogger) Warnf(format string, v ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}
func (l *captureLogger) Errorf(format string, v ...any) {}

type brokenNotifier struct{}

func (brokenNotifier) ID() string   { return "broken" }
func (brokenNotifier) Type() string { return "broken" }
func (brokenNotifier) Close() error { return nil }
func (brokenNotifier) Notify(ctx context.Context, event atmos.ReactionEvent) error {
	return errors.New("unreachable sink")
}

func newTestCalculator(opts ...Option) *Calculator {
	c := NewCalculator(nil, opts...)
	c.newID = func() string { return "calc-1" }
	return c
}

func TestCalculator_SingleTank(t *testing.T) {
	c := newTestCalculator()
	cfg := Config{
		Name: "condensation",
		Cold: TankConfig{Temperature: 290, Gases: map[string]float64{"water_vapor": 1}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if report.ID != "calc-1" || report.Name != "condensation" {
		t.Errorf("Unexpected report identity %q %q", report.ID, report.Name)
	}
	if report.Hot != nil {
		t.Error("Expected no hot tank")
	}
	if report.Merged != report.Cold {
		t.Errorf("Expected merged tank to equal the cold tank without a hot tank")
	}
	if len(report.Ticks) != DefaultTicks {
		t.Fatalf("Expected %d ticks, got %d", DefaultTicks, len(report.Ticks))
	}
	for i, tick := range report.Ticks {
		if tick.Number != i+1 {
			t.Errorf("Expected tick number %d, got %d", i+1, tick.Number)
		}
		if tick.String() != "Water Vapor Condensation" {
			t.Errorf("Tick %d: expected water vapor condensation, got %q", i+1, tick.String())
		}
	}
	if report.Combined.TotalMoles != 0 {
		t.Errorf("Expected all water vapor condensed, got %g moles", report.Combined.TotalMoles)
	}
	if report.BombRange != 0 {
		t.Errorf("Expected bomb range 0, got %g", report.BombRange)
	}

	if len(report.Events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(report.Events))
	}
	for i, event := range report.Events {
		if event.Tick != i+1 || event.CalculationID != "calc-1" {
			t.Errorf("Unexpected event %+v", event)
		}
		if event.Reaction != atmos.WaterVaporCondensation || event.Priority != "post-formation" {
			t.Errorf("Unexpected event %+v", event)
		}
	}
	if !approxEqual(report.Events[0].TotalMoles, 0.75) {
		t.Errorf("Expected first event at 0.75 moles, got %g", report.Events[0].TotalMoles)
	}
}

func TestCalculator_MergesTanks(t *testing.T) {
	c := newTestCalculator()
	cfg := Config{
		Cold: TankConfig{Temperature: 100, Gases: map[string]float64{"nitrogen": 10}},
		Hot:  &TankConfig{Temperature: 300, Gases: map[string]float64{"nitrogen": 10}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if report.Hot == nil {
		t.Fatal("Expected hot tank snapshot")
	}
	if !approxEqual(report.Merged.Temperature, 200) {
		t.Errorf("Expected merged temperature 200, got %g", report.Merged.Temperature)
	}
	if report.Merged.TotalMoles != 20 {
		t.Errorf("Expected 20 moles, got %g", report.Merged.TotalMoles)
	}
	// merged volume is 140 liters
	want := 20 * atmos.R * report.Merged.Temperature / 140
	if !approxEqual(report.Merged.Pressure, want) {
		t.Errorf("Expected pressure %g, got %g", want, report.Merged.Pressure)
	}
	for _, tick := range report.Ticks {
		if tick.String() != "None" {
			t.Errorf("Expected inert nitrogen, got %q", tick.String())
		}
	}
	if report.Combined != report.Merged {
		t.Error("Expected combined tank unchanged when nothing reacts")
	}
	if len(report.Events) != 0 {
		t.Errorf("Expected no events, got %d", len(report.Events))
	}
}

func TestCalculator_Suppressed(t *testing.T) {
	c := newTestCalculator()
	cfg := Config{
		Cold: TankConfig{Temperature: 300, Gases: map[string]float64{"hyper_noblium": 10, "water_vapor": 5}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	for _, tick := range report.Ticks {
		if !tick.Suppressed || tick.String() != "Hyper-Noblium Suppression" {
			t.Errorf("Expected suppressed tick, got %q", tick.String())
		}
	}
	if report.Fired().Len() != 0 {
		t.Errorf("Expected no reactions, got %v", report.Fired())
	}
}

func TestCalculator_BombRange(t *testing.T) {
	c := newTestCalculator()
	cfg := Config{
		Cold: TankConfig{Temperature: 300, Gases: map[string]float64{"nitrogen": 2000}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	want := (report.Combined.Pressure - 4053) / 607.95
	if want <= 0 || !approxEqual(report.BombRange, want) {
		t.Errorf("Expected bomb range %g, got %g", want, report.BombRange)
	}
}

func TestCalculator_Options(t *testing.T) {
	logger := &captureLogger{}
	extra := atmos.NewRecordingNotifier("extra")
	c := newTestCalculator(
		WithLogger(logger),
		WithTicks(2),
		WithTankVolume(35),
		WithNotifier(extra),
		WithNotifier(brokenNotifier{}),
	)
	cfg := Config{
		Cold: TankConfig{Temperature: 290, Gases: map[string]float64{"water_vapor": 1}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(report.Ticks) != 2 {
		t.Errorf("Expected 2 ticks, got %d", len(report.Ticks))
	}
	want := 1 * atmos.R * 290 / 35
	if !approxEqual(report.Cold.Pressure, want) {
		t.Errorf("Expected cold pressure %g at 35L, got %g", want, report.Cold.Pressure)
	}
	if len(extra.Events()) != 2 {
		t.Errorf("Expected extra notifier to receive 2 events, got %d", len(extra.Events()))
	}
	// delivery failures are logged, not fatal
	if len(logger.warnings) != 2 {
		t.Errorf("Expected 2 delivery warnings, got %v", logger.warnings)
	}
	if len(logger.infos) != 1 {
		t.Errorf("Expected one summary line, got %v", logger.infos)
	}
}

func TestCalculator_ZeroTicks(t *testing.T) {
	c := newTestCalculator(WithTicks(0))
	cfg := Config{
		Cold: TankConfig{Temperature: 290, Gases: map[string]float64{"water_vapor": 1}},
	}

	report, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(report.Ticks) != 0 || report.Combined != report.Merged {
		t.Error("Expected no ticks and an unreacted mixture")
	}
}

func TestCalculator_InvalidConfig(t *testing.T) {
	c := newTestCalculator()
	_, err := c.Calculate(context.Background(), Config{})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestCalculator_Cancelled(t *testing.T) {
	c := newTestCalculator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		Cold: TankConfig{Temperature: 290, Gases: map[string]float64{"water_vapor": 1}},
	}
	if _, err := c.Calculate(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCalculator_GeneratesUUID(t *testing.T) {
	c := NewCalculator(atmos.NewDefaultRegistry())
	cfg := Config{
		Cold: TankConfig{Temperature: 300, Gases: map[string]float64{"oxygen": 1}},
	}

	r1, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	r2, _ := c.Calculate(context.Background(), cfg)

	if _, err := uuid.Parse(r1.ID); err != nil {
		t.Errorf("Expected a UUID, got %q: %v", r1.ID, err)
	}
	if r1.ID == r2.ID {
		t.Error("Expected distinct IDs per calculation")
	}
}

func TestCalculator_Deterministic(t *testing.T) {
	c := newTestCalculator()
	cfg := Config{
		Cold: TankConfig{Temperature: 73.15, Gases: map[string]float64{"oxygen": 60}},
		Hot:  &TankConfig{Temperature: 1200, Gases: map[string]float64{"plasma": 30, "tritium": 15}},
	}

	r1, err := c.Calculate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	r2, _ := c.Calculate(context.Background(), cfg)

	if r1.Combined != r2.Combined || r1.BombRange != r2.BombRange {
		t.Error("Expected identical results for identical input")
	}
	for i := range r1.Ticks {
		if r1.Ticks[i].String() != r2.Ticks[i].String() {
			t.Errorf("Tick %d differs: %q vs %q", i+1, r1.Ticks[i], r2.Ticks[i])
		}
	}
}
