package calc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/daniacca/ttvsim/internal/atmos"
)

// ValidationError collects multiple validation issues
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid config: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "config validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(issue string) {
	e.Issues = append(e.Issues, issue)
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// ValidateConfig checks both tanks of a calculation input
func ValidateConfig(cfg Config) error {
	err := &ValidationError{}

	validateTank(cfg.Cold, "cold tank", err)
	if cfg.Hot != nil {
		validateTank(*cfg.Hot, "hot tank", err)
	}

	if err.HasIssues() {
		return err
	}
	return nil
}

func validateTank(t TankConfig, prefix string, err *ValidationError) {
	if t.Temperature <= 0 {
		err.Add(prefix + ": temperature must be positive")
	}
	if t.Volume < 0 {
		err.Add(prefix + ": volume cannot be negative")
	}
	if t.Pressure < 0 {
		err.Add(prefix + ": pressure cannot be negative")
	}
	if t.Percent && t.Pressure == 0 {
		err.Add(prefix + ": pressure is required when amounts are percentages")
	}

	// map order is random, keep the issue list stable
	names := make([]string, 0, len(t.Gases))
	for name := range t.Gases {
		names = append(names, name)
	}
	slices.Sort(names)

	seen := make(map[atmos.GasID]string)
	var percent float64
	for _, name := range names {
		amount := t.Gases[name]
		gas, ok := atmos.ParseGas(name)
		if !ok {
			err.Add(fmt.Sprintf("%s: unknown gas '%s'", prefix, name))
			continue
		}
		if other, dup := seen[gas]; dup {
			err.Add(fmt.Sprintf("%s: gas '%s' duplicates '%s'", prefix, name, other))
		} else {
			seen[gas] = name
		}
		if amount < 0 {
			err.Add(fmt.Sprintf("%s: amount of '%s' cannot be negative", prefix, name))
		}
		percent += amount
	}

	if t.Percent && percent > 100 {
		err.Add(fmt.Sprintf("%s: percentages add up to %g, more than 100", prefix, percent))
	}
}
