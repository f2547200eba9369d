package atmos

import "strings"

// Physical constants shared by the mixture and the reaction rules.
const (
	R                   = 8.31    // ideal gas constant, kPa·L/(mol·K)
	OneAtmosphere       = 101.325 // kPa
	TCMB                = 2.7     // cosmic background temperature, K
	T0C                 = 273.15
	T20C                = 293.15
	MinimumHeatCapacity = 0.0003
	MinimumMoleCount    = 0.01
)

// GasID identifies a species in the catalog. The numeric order is the
// catalog order and drives dispatch iteration.
type GasID int

const (
	Oxygen GasID = iota
	Nitrogen
	CarbonDioxide
	Plasma
	WaterVapor
	HyperNoblium
	NitrousOxide
	Nitrium
	Tritium
	Bz
	Pluoxium

	GasCount = int(iota)
)

// Gas holds the physical coefficients of a species.
// Rarity is a commonality score: larger means more common.
type Gas struct {
	ID           GasID
	Name         string
	HeatCapacity float64
	FusionPower  float64
	Rarity       float64
}

var catalog = [GasCount]Gas{
	{ID: Oxygen, Name: "Oxygen", HeatCapacity: 20, FusionPower: 0, Rarity: 900},
	{ID: Nitrogen, Name: "Nitrogen", HeatCapacity: 20, FusionPower: 0, Rarity: 1000},
	{ID: CarbonDioxide, Name: "Carbon Dioxide", HeatCapacity: 30, FusionPower: 0, Rarity: 700},
	{ID: Plasma, Name: "Plasma", HeatCapacity: 200, FusionPower: 0, Rarity: 800},
	{ID: WaterVapor, Name: "Water Vapor", HeatCapacity: 40, FusionPower: 8, Rarity: 500},
	{ID: HyperNoblium, Name: "Hyper-Noblium", HeatCapacity: 2000, FusionPower: 10, Rarity: 50},
	{ID: NitrousOxide, Name: "Nitrous Oxide", HeatCapacity: 40, FusionPower: 10, Rarity: 600},
	{ID: Nitrium, Name: "Nitrium", HeatCapacity: 10, FusionPower: 7, Rarity: 1},
	{ID: Tritium, Name: "Tritium", HeatCapacity: 10, FusionPower: 5, Rarity: 300},
	{ID: Bz, Name: "Bz", HeatCapacity: 20, FusionPower: 8, Rarity: 400},
	{ID: Pluoxium, Name: "Pluoxium", HeatCapacity: 80, FusionPower: -10, Rarity: 200},
}

var identifiers = [GasCount]string{
	"oxygen", "nitrogen", "carbon_dioxide", "plasma", "water_vapor",
	"hyper_noblium", "nitrous_oxide", "nitrium", "tritium", "bz", "pluoxium",
}

// Lookup returns the catalog entry for id. id must be valid.
func Lookup(id GasID) Gas {
	return catalog[id]
}

// Gases returns every species in catalog order.
func Gases() []Gas {
	out := make([]Gas, GasCount)
	copy(out, catalog[:])
	return out
}

// Valid reports whether id names a catalog entry.
func (id GasID) Valid() bool {
	return id >= 0 && int(id) < GasCount
}

func (id GasID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return catalog[id].Name
}

// ParseGas resolves a display name ("Carbon Dioxide") or an identifier
// ("carbon_dioxide") case-insensitively.
func ParseGas(name string) (GasID, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i := 0; i < GasCount; i++ {
		if key == strings.ToLower(catalog[i].Name) || key == identifiers[i] {
			return GasID(i), true
		}
	}
	return 0, false
}
