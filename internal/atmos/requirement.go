package atmos

// GasRequirement is a minimum amount of one gas.
type GasRequirement struct {
	Gas   GasID
	Moles float64
}

// Requirement gates a reaction. Nil temperature bounds are unbounded.
type Requirement struct {
	MinTemperature *float64
	MaxTemperature *float64
	Gases          []GasRequirement
}

// TemperatureMet checks the optional temperature window (inclusive).
func (r Requirement) TemperatureMet(temperature float64) bool {
	if r.MinTemperature != nil && temperature < *r.MinTemperature {
		return false
	}
	if r.MaxTemperature != nil && temperature > *r.MaxTemperature {
		return false
	}
	return true
}

// GasesMet checks every gas minimum against m.
func (r Requirement) GasesMet(m *Mixture) bool {
	for _, g := range r.Gases {
		if m.moles[g.Gas] < g.Moles {
			return false
		}
	}
	return true
}

// Met reports whether m satisfies the whole requirement.
func (r Requirement) Met(m *Mixture) bool {
	return r.TemperatureMet(m.Temperature) && r.GasesMet(m)
}

// requires reports whether gas appears in the gas list.
func (r Requirement) requires(gas GasID) bool {
	for _, g := range r.Gases {
		if g.Gas == gas {
			return true
		}
	}
	return false
}

func kelvin(v float64) *float64 {
	return &v
}
