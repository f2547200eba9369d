package atmos

import "strings"

// Priority is the phase a reaction belongs to within a tick.
type Priority int

const (
	PreFormation Priority = iota
	Formation
	PostFormation
	Fire

	PriorityCount = int(iota)
)

func (p Priority) String() string {
	switch p {
	case PreFormation:
		return "pre-formation"
	case Formation:
		return "formation"
	case PostFormation:
		return "post-formation"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// ReactionID identifies one of the built-in reaction rules.
type ReactionID uint8

const (
	WaterVaporCondensation ReactionID = iota
	PlasmaCombustion
	TritiumCombustion
	NitrousFormation
	NitrousDecomposition
	BzFormation
	PluoxiumFormation
	NitriumFormation
	NitriumDecomposition
	NobliumFormation
	Fusion

	reactionCount
)

var reactionNames = [reactionCount]string{
	WaterVaporCondensation: "Water Vapor Condensation",
	PlasmaCombustion:       "Plasma Combustion",
	TritiumCombustion:      "Tritium Combustion",
	NitrousFormation:       "Nitrous Oxide Formation",
	NitrousDecomposition:   "Nitrous Oxide Decomposition",
	BzFormation:            "Bz Formation",
	PluoxiumFormation:      "Pluoxium Formation",
	NitriumFormation:       "Nitrium Formation",
	NitriumDecomposition:   "Nitrium Decomposition",
	NobliumFormation:       "Hyper-Noblium Formation",
	Fusion:                 "Plasmic Fusion",
}

func (id ReactionID) String() string {
	if id >= reactionCount {
		return "unknown"
	}
	return reactionNames[id]
}

// ParseReaction resolves a display name, ignoring case.
func ParseReaction(name string) (ReactionID, bool) {
	key := strings.TrimSpace(name)
	for id := ReactionID(0); id < reactionCount; id++ {
		if strings.EqualFold(key, reactionNames[id]) {
			return id, true
		}
	}
	return 0, false
}

// ReactionSet is a bitset of reaction ids.
type ReactionSet uint16

func (s ReactionSet) Add(id ReactionID) ReactionSet {
	return s | 1<<id
}

func (s ReactionSet) Has(id ReactionID) bool {
	return s&(1<<id) != 0
}

func (s ReactionSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// IDs lists the members in ascending id order.
func (s ReactionSet) IDs() []ReactionID {
	out := make([]ReactionID, 0, s.Len())
	for id := ReactionID(0); id < reactionCount; id++ {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s ReactionSet) String() string {
	if s == 0 {
		return "None"
	}
	names := make([]string, 0, s.Len())
	for _, id := range s.IDs() {
		names = append(names, id.String())
	}
	return strings.Join(names, ", ")
}

// Reaction is one rule of the reaction table: a gating requirement and the
// formula applied when it is met. Apply reports whether the reaction
// actually happened.
type Reaction struct {
	ID          ReactionID
	Name        string
	Priority    Priority
	Requirement Requirement
	Apply       func(m *Mixture) bool
}

// DisplayName returns Name, falling back to the id's name.
func (r Reaction) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID.String()
}

// TickResult is the outcome of one dispatch tick.
type TickResult struct {
	Suppressed bool         `json:"suppressed"`
	Fired      []ReactionID `json:"fired"`
}

// Set returns the fired reactions as a set.
func (r TickResult) Set() ReactionSet {
	var s ReactionSet
	for _, id := range r.Fired {
		s = s.Add(id)
	}
	return s
}

// String lists fired reactions in firing order.
func (r TickResult) String() string {
	if r.Suppressed {
		return "Hyper-Noblium Suppression"
	}
	if len(r.Fired) == 0 {
		return "None"
	}
	names := make([]string, len(r.Fired))
	for i, id := range r.Fired {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
