package atmos

// Bands holds one gas's reactions split by priority, each list in
// registration order.
type Bands [PriorityCount][]Reaction

// Registry indexes reactions by the rarest gas they require. It is built once
// and read-only afterwards, so a single Registry may be shared freely.
//
// A reaction is only considered during a tick when its index gas is
// present, even if the rest of its requirement would pass.
type Registry struct {
	reactions []Reaction
	index     [GasCount]*Bands
	logger    Logger
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithLogger sets the logger used during construction and dispatch.
func WithLogger(logger Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry builds the index from reactions. Reactions with no gas
// requirement or no formula cannot be dispatched and are left out.
func NewRegistry(reactions []Reaction, opts ...RegistryOption) *Registry {
	r := &Registry{logger: NewNoOpLogger()}
	for _, opt := range opts {
		opt(r)
	}

	var index [GasCount]Bands
	for _, reaction := range reactions {
		if reaction.Apply == nil {
			r.logger.Warnf("reaction %q has no formula, excluded from registry", reaction.DisplayName())
			continue
		}
		gas, ok := IndexGas(reaction)
		if !ok {
			r.logger.Warnf("reaction %q has no gas requirements, excluded from registry", reaction.DisplayName())
			continue
		}
		index[gas][reaction.Priority] = append(index[gas][reaction.Priority], reaction)
		r.reactions = append(r.reactions, reaction)
		r.logger.Debugf("indexed reaction %q under %s (%s)", reaction.DisplayName(), gas, reaction.Priority)
	}

	// gases with no reactions in any band stay nil
	for i := 0; i < GasCount; i++ {
		for _, band := range index[i] {
			if len(band) > 0 {
				bands := index[i]
				r.index[i] = &bands
				break
			}
		}
	}

	return r
}

// NewDefaultRegistry builds a registry over DefaultReactions.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	return NewRegistry(DefaultReactions(), opts...)
}

// IndexGas picks the gas a reaction is indexed under: the required gas with
// the smallest rarity. Ties go to the gas that comes first in catalog order.
func IndexGas(reaction Reaction) (GasID, bool) {
	best := GasID(-1)
	for i := 0; i < GasCount; i++ {
		gas := GasID(i)
		if !reaction.Requirement.requires(gas) {
			continue
		}
		if best < 0 || catalog[gas].Rarity < catalog[best].Rarity {
			best = gas
		}
	}
	return best, best >= 0
}

// Lookup returns the reactions indexed under gas.
func (r *Registry) Lookup(gas GasID) (Bands, bool) {
	if !gas.Valid() || r.index[gas] == nil {
		return Bands{}, false
	}
	return *r.index[gas], true
}

// Reactions returns every indexed reaction in registration order.
func (r *Registry) Reactions() []Reaction {
	out := make([]Reaction, len(r.reactions))
	copy(out, r.reactions)
	return out
}

// Suppressed reports whether hyper-noblium inhibits all reactions in m.
func Suppressed(m *Mixture) bool {
	return m.moles[HyperNoblium] >= 5 && m.Temperature > 20
}

// React runs one tick against m.
func (r *Registry) React(m *Mixture) TickResult {
	return r.ReactObserved(m, nil)
}

// ReactObserved runs one tick against m and calls observe after every
// reaction that fired, with the mixture in its post-reaction state.
//
// Candidates are gathered per gas in catalog order, each gas contributing
// its bands in priority order. Temperature windows are checked against the
// temperature at the start of the tick. Gas minimums are checked against the
// live mixture, so gas consumed or produced earlier in the tick affects
// later candidates.
func (r *Registry) ReactObserved(m *Mixture, observe func(Reaction, *Mixture)) TickResult {
	if Suppressed(m) {
		r.logger.Debugf("reactions suppressed by hyper-noblium: moles=%g temperature=%g", m.moles[HyperNoblium], m.Temperature)
		return TickResult{Suppressed: true}
	}

	candidates := make([]Reaction, 0, len(r.reactions))
	for i := 0; i < GasCount; i++ {
		if m.moles[i] <= 0 || r.index[i] == nil {
			continue
		}
		for _, band := range r.index[i] {
			candidates = append(candidates, band...)
		}
	}

	temperature := m.Temperature
	result := TickResult{}
	for _, reaction := range candidates {
		if !reaction.Requirement.TemperatureMet(temperature) {
			continue
		}
		if !reaction.Requirement.GasesMet(m) {
			continue
		}
		if !reaction.Apply(m) {
			continue
		}
		result.Fired = append(result.Fired, reaction.ID)
		if observe != nil {
			observe(reaction, m)
		}
	}
	return result
}
