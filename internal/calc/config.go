package calc

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/daniacca/ttvsim/internal/atmos"
)

// DefaultTankVolume is the volume, in liters, of a tank that does not set one.
const DefaultTankVolume = 70.0

// TankConfig describes the contents of one tank.
//
// Gases maps a gas name (display name or identifier) to an amount. The
// amount is in moles, or a percentage of the tank's capacity at Pressure
// when Percent is set.
type TankConfig struct {
	Temperature float64            `json:"temperature"`
	Volume      float64            `json:"volume,omitempty"`
	Pressure    float64            `json:"pressure,omitempty"`
	Percent     bool               `json:"percent,omitempty"`
	Gases       map[string]float64 `json:"gases"`
}

// Config is a calculation input: a cold tank and an optional hot tank that
// is merged into it.
type Config struct {
	Name string      `json:"name"`
	Cold TankConfig  `json:"cold"`
	Hot  *TankConfig `json:"hot,omitempty"`
}

// MaxMoles returns how many moles fit in a tank of the given volume at the
// configured pressure and temperature.
func (t TankConfig) MaxMoles(volume float64) float64 {
	return t.Pressure * volume / (atmos.R * t.Temperature)
}

// Composition resolves the gas amounts into moles.
func (t TankConfig) Composition(volume float64) (atmos.Composition, error) {
	var comp atmos.Composition
	var maxMoles float64
	if t.Percent {
		maxMoles = t.MaxMoles(volume)
	}
	for name, amount := range t.Gases {
		gas, ok := atmos.ParseGas(name)
		if !ok {
			return atmos.Composition{}, fmt.Errorf("unknown gas %q", name)
		}
		if t.Percent {
			amount = amount / 100 * maxMoles
		}
		comp[gas] += amount
	}
	return comp, nil
}

// Mixture builds the tank's mixture. defaultVolume is used when the tank
// does not set its own volume.
func (t TankConfig) Mixture(defaultVolume float64) (*atmos.Mixture, error) {
	volume := t.Volume
	if volume == 0 {
		volume = defaultVolume
	}
	comp, err := t.Composition(volume)
	if err != nil {
		return nil, err
	}
	return atmos.NewMixture(t.Temperature, volume, comp), nil
}

// LoadConfig reads, parses and validates a calculation input file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return DecodeConfig(data)
}

// DecodeConfig parses and validates a JSON calculation input.
func DecodeConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config JSON: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
