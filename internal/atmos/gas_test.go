package atmos

import (
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	gases := Gases()
	if len(gases) != GasCount {
		t.Fatalf("Expected %d gases, got %d", GasCount, len(gases))
	}
	for i, g := range gases {
		if g.ID != GasID(i) {
			t.Errorf("Expected gas at index %d to have ID %d, got %d", i, i, g.ID)
		}
		if g.HeatCapacity <= 0 {
			t.Errorf("Expected positive heat capacity for %s, got %g", g.Name, g.HeatCapacity)
		}
		if g.Rarity <= 0 {
			t.Errorf("Expected positive rarity for %s, got %g", g.Name, g.Rarity)
		}
	}
	if gases[0].ID != Oxygen || gases[GasCount-1].ID != Pluoxium {
		t.Errorf("Expected catalog to run Oxygen..Pluoxium, got %s..%s", gases[0].Name, gases[GasCount-1].Name)
	}
}

func TestGasesReturnsCopy(t *testing.T) {
	gases := Gases()
	gases[0].HeatCapacity = 9999

	if Lookup(Oxygen).HeatCapacity != 20 {
		t.Errorf("Expected catalog to be unaffected by caller mutation, got %g", Lookup(Oxygen).HeatCapacity)
	}
}

func TestLookup(t *testing.T) {
	g := Lookup(HyperNoblium)
	if g.Name != "Hyper-Noblium" {
		t.Errorf("Expected 'Hyper-Noblium', got '%s'", g.Name)
	}
	if g.HeatCapacity != 2000 {
		t.Errorf("Expected heat capacity 2000, got %g", g.HeatCapacity)
	}
	if g.Rarity != 50 {
		t.Errorf("Expected rarity 50, got %g", g.Rarity)
	}
	if Lookup(Pluoxium).FusionPower != -10 {
		t.Errorf("Expected pluoxium fusion power -10, got %g", Lookup(Pluoxium).FusionPower)
	}
}

func TestGasIDString(t *testing.T) {
	if CarbonDioxide.String() != "Carbon Dioxide" {
		t.Errorf("Expected 'Carbon Dioxide', got '%s'", CarbonDioxide.String())
	}
	if GasID(-1).String() != "unknown" {
		t.Errorf("Expected 'unknown' for invalid id, got '%s'", GasID(-1).String())
	}
	if GasID(GasCount).Valid() {
		t.Error("Expected GasCount to be an invalid id")
	}
}

func TestParseGas(t *testing.T) {
	tests := []struct {
		input string
		want  GasID
		ok    bool
	}{
		{"Oxygen", Oxygen, true},
		{"oxygen", Oxygen, true},
		{"  Tritium ", Tritium, true},
		{"Carbon Dioxide", CarbonDioxide, true},
		{"carbon_dioxide", CarbonDioxide, true},
		{"HYPER-NOBLIUM", HyperNoblium, true},
		{"hyper_noblium", HyperNoblium, true},
		{"water_vapor", WaterVapor, true},
		{"BZ", Bz, true},
		{"helium", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseGas(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseGas(%q): expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseGas(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}
