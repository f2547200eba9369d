package atmos

import (
	"fmt"
	"math"
	"strings"
)

// Composition is a mole vector indexed by GasID.
type Composition [GasCount]float64

// Mixture is a closed volume of gas. Total moles and heat capacity are
// cached and delta-updated on every mole change, so all mole writes must go
// through AddMoles or SetMoles.
//
// A Mixture is owned by a single caller and is not safe for concurrent use.
type Mixture struct {
	Temperature float64 // Kelvin
	Volume      float64 // litres, must be > 0

	moles Composition

	totalMoles float64
	// raw sum of moles·heat capacity; the floor is applied on read
	heatCapacity float64
}

// NewMixture creates a mixture and computes its caches from scratch.
func NewMixture(temperature, volume float64, moles Composition) *Mixture {
	m := &Mixture{
		Temperature: temperature,
		Volume:      volume,
		moles:       moles,
	}
	m.recompute()
	return m
}

func (m *Mixture) recompute() {
	var total, capacity float64
	for i := 0; i < GasCount; i++ {
		total += m.moles[i]
		capacity += m.moles[i] * catalog[i].HeatCapacity
	}
	m.totalMoles = total
	m.heatCapacity = capacity
}

// AddMoles adds delta moles of gas, keeping the caches in step.
func (m *Mixture) AddMoles(gas GasID, delta float64) {
	if delta == 0 {
		return
	}
	m.moles[gas] += delta
	m.totalMoles += delta
	m.heatCapacity += delta * catalog[gas].HeatCapacity
}

// SetMoles sets the amount of gas to value.
func (m *Mixture) SetMoles(gas GasID, value float64) {
	delta := value - m.moles[gas]
	if delta == 0 {
		return
	}
	m.moles[gas] = value
	m.totalMoles += delta
	m.heatCapacity += delta * catalog[gas].HeatCapacity
}

// Moles returns the amount of gas in the mixture.
func (m *Mixture) Moles(gas GasID) float64 {
	return m.moles[gas]
}

// Composition returns a copy of the mole vector.
func (m *Mixture) Composition() Composition {
	return m.moles
}

func (m *Mixture) TotalMoles() float64 {
	return m.totalMoles
}

// HeatCapacity returns the aggregate heat capacity, never below
// MinimumHeatCapacity.
func (m *Mixture) HeatCapacity() float64 {
	return math.Max(m.heatCapacity, MinimumHeatCapacity)
}

// Pressure returns the ideal-gas pressure in kPa.
func (m *Mixture) Pressure() float64 {
	return m.totalMoles * R * m.Temperature / m.Volume
}

// FusionPower sums the fusion power coefficients of every gas present.
func (m *Mixture) FusionPower() float64 {
	var power float64
	for i := 0; i < GasCount; i++ {
		if m.moles[i] > 0 {
			power += catalog[i].FusionPower
		}
	}
	return power
}

// Clone returns an independent copy of the mixture.
func (m *Mixture) Clone() *Mixture {
	c := *m
	return &c
}

// Merge combines two mixtures into a new one. Temperature is mixed by heat
// capacity, volumes and moles are summed. Neither input is modified.
func Merge(a, b *Mixture) *Mixture {
	capA := a.HeatCapacity()
	capB := b.HeatCapacity()
	temperature := (a.Temperature*capA + b.Temperature*capB) / (capA + capB)

	var moles Composition
	for i := 0; i < GasCount; i++ {
		moles[i] = a.moles[i] + b.moles[i]
	}
	return NewMixture(temperature, a.Volume+b.Volume, moles)
}

// Snapshot is a reporting view of a mixture.
type Snapshot struct {
	Pressure    float64 `json:"pressure_kpa"`
	Temperature float64 `json:"temperature_k"`
	TotalMoles  float64 `json:"total_moles"`
}

// Snapshot captures pressure, temperature and total moles.
func (m *Mixture) Snapshot() Snapshot {
	return Snapshot{
		Pressure:    m.Pressure(),
		Temperature: m.Temperature,
		TotalMoles:  m.totalMoles,
	}
}

// Lines renders the snapshot as display lines.
func (s Snapshot) Lines() []string {
	return []string{
		fmt.Sprintf("- Pressure: %g kPa", s.Pressure),
		fmt.Sprintf("- Temperature: %g", s.Temperature),
		fmt.Sprintf("- Total Moles: %g mols", s.TotalMoles),
	}
}

func (s Snapshot) String() string {
	return strings.Join(s.Lines(), "\n")
}

func (m *Mixture) String() string {
	return m.Snapshot().String()
}

// BombRange is the display metric derived from a final pressure in kPa.
func BombRange(pressure float64) float64 {
	return math.Max((pressure-4053)/607.95, 0)
}
