package atmos

import "math"

// DefaultReactions returns the built-in reaction table in declaration order.
// The order is significant: it is the order rules are appended to the
// registry's band lists.
func DefaultReactions() []Reaction {
	return []Reaction{
		{
			ID:       WaterVaporCondensation,
			Priority: PostFormation,
			Requirement: Requirement{
				MaxTemperature: kelvin(waterVaporCondensationPoint),
				Gases:          []GasRequirement{{WaterVapor, MinimumMoleCount}},
			},
			Apply: waterVaporCondensation,
		},
		{
			ID:       PlasmaCombustion,
			Priority: Fire,
			Requirement: Requirement{
				MinTemperature: kelvin(plasmaMinimumBurnTemperature),
				Gases: []GasRequirement{
					{Plasma, MinimumMoleCount},
					{Oxygen, MinimumMoleCount},
				},
			},
			Apply: plasmaCombustion,
		},
		{
			ID:       TritiumCombustion,
			Priority: Fire,
			Requirement: Requirement{
				MinTemperature: kelvin(tritiumMinimumBurnTemperature),
				Gases: []GasRequirement{
					{Tritium, MinimumMoleCount},
					{Oxygen, MinimumMoleCount},
				},
			},
			Apply: tritiumCombustion,
		},
		{
			ID:       NitrousFormation,
			Priority: Formation,
			Requirement: Requirement{
				MinTemperature: kelvin(n2oFormationMinTemperature),
				MaxTemperature: kelvin(n2oFormationMaxTemperature),
				Gases: []GasRequirement{
					{Oxygen, 10},
					{Nitrogen, 20},
					{Bz, 5},
				},
			},
			Apply: nitrousFormation,
		},
		{
			ID:       NitrousDecomposition,
			Priority: PostFormation,
			Requirement: Requirement{
				MinTemperature: kelvin(n2oDecompositionMinTemperature),
				MaxTemperature: kelvin(n2oDecompositionMaxTemperature),
				Gases:          []GasRequirement{{NitrousOxide, MinimumMoleCount * 2}},
			},
			Apply: nitrousDecomposition,
		},
		{
			ID:       BzFormation,
			Priority: Formation,
			Requirement: Requirement{
				MaxTemperature: kelvin(bzFormationMaxTemperature),
				Gases: []GasRequirement{
					{NitrousOxide, 10},
					{Plasma, 10},
				},
			},
			Apply: bzFormation,
		},
		{
			ID:       PluoxiumFormation,
			Priority: Formation,
			Requirement: Requirement{
				MinTemperature: kelvin(pluoxiumFormationMinTemperature),
				MaxTemperature: kelvin(pluoxiumFormationMaxTemperature),
				Gases: []GasRequirement{
					{CarbonDioxide, MinimumMoleCount},
					{Oxygen, MinimumMoleCount},
					{Tritium, MinimumMoleCount},
				},
			},
			Apply: pluoxiumFormation,
		},
		{
			ID:       NitriumFormation,
			Priority: Formation,
			Requirement: Requirement{
				MinTemperature: kelvin(nitriumFormationMinTemperature),
				Gases: []GasRequirement{
					{Tritium, 20},
					{Nitrogen, 10},
					{Bz, 5},
				},
			},
			Apply: nitriumFormation,
		},
		{
			ID:       NitriumDecomposition,
			Priority: Formation,
			Requirement: Requirement{
				MaxTemperature: kelvin(nitriumDecompositionMaxTemperature),
				Gases: []GasRequirement{
					{Oxygen, MinimumMoleCount},
					{Nitrium, MinimumMoleCount},
				},
			},
			Apply: nitriumDecomposition,
		},
		{
			ID:       NobliumFormation,
			Priority: Formation,
			Requirement: Requirement{
				MinTemperature: kelvin(nobliumFormationMinTemperature),
				MaxTemperature: kelvin(nobliumFormationMaxTemperature),
				Gases: []GasRequirement{
					{Nitrogen, MinimumMoleCount},
					{Tritium, MinimumMoleCount},
				},
			},
			Apply: nobliumFormation,
		},
		{
			ID:       Fusion,
			Priority: Formation,
			Requirement: Requirement{
				MinTemperature: kelvin(fusionTemperatureThreshold),
				Gases: []GasRequirement{
					{Tritium, fusionTritiumMolesUsed},
					{Plasma, fusionMoleThreshold},
					{CarbonDioxide, fusionMoleThreshold},
				},
			},
			Apply: fusion,
		},
	}
}

// settle converts energy into a temperature change using the heat capacity
// measured before the mole changes. Nothing happens when the new heat
// capacity is at the floor.
func settle(m *Mixture, temperature, oldCapacity, energy float64) {
	newCapacity := m.HeatCapacity()
	if newCapacity > MinimumHeatCapacity {
		m.Temperature = (temperature*oldCapacity + energy) / newCapacity
	}
}

// settleAboveTCMB is settle with the result floored at TCMB.
func settleAboveTCMB(m *Mixture, oldCapacity, energy float64) {
	newCapacity := m.HeatCapacity()
	if newCapacity > MinimumHeatCapacity {
		m.Temperature = math.Max((m.Temperature*oldCapacity+energy)/newCapacity, TCMB)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

const waterVaporCondensationPoint = T20C + 10

func waterVaporCondensation(m *Mixture) bool {
	m.AddMoles(WaterVapor, -0.25)
	return true
}

const (
	plasmaMinimumBurnTemperature = 373.15
	plasmaUpperTemperature       = plasmaMinimumBurnTemperature + 1270
	oxygenBurnRatioBase          = 1.4
	plasmaOxygenFullburn         = 10
	superSaturationThreshold     = 96
	plasmaBurnRateDelta          = 9
	firePlasmaEnergyReleased     = 3e6
)

func plasmaCombustion(m *Mixture) bool {
	temperature := m.Temperature

	var scale float64
	if temperature > plasmaUpperTemperature {
		scale = 1
	} else {
		scale = (temperature - plasmaMinimumBurnTemperature) / (plasmaUpperTemperature - plasmaMinimumBurnTemperature)
	}
	if scale <= 0 {
		return false
	}

	oxygenBurnRatio := oxygenBurnRatioBase - scale
	plasma := m.moles[Plasma]
	oxygen := m.moles[Oxygen]

	// past the super saturation ratio the burn yields tritium
	superSaturation := false
	var burnRate float64
	switch ratio := oxygen / plasma; {
	case ratio >= superSaturationThreshold:
		burnRate = plasma / plasmaBurnRateDelta * scale
		superSaturation = true
	case ratio >= plasmaOxygenFullburn:
		burnRate = plasma / plasmaBurnRateDelta * scale
	default:
		burnRate = plasma / plasmaOxygenFullburn / plasmaBurnRateDelta * scale
	}
	if burnRate < MinimumHeatCapacity {
		return false
	}

	oldCapacity := m.HeatCapacity()
	burnRate = math.Min(math.Min(burnRate, plasma), oxygen*(1/oxygenBurnRatio))
	m.SetMoles(Plasma, plasma-burnRate)
	m.SetMoles(Oxygen, oxygen-burnRate*oxygenBurnRatio)
	if superSaturation {
		m.AddMoles(Tritium, burnRate)
	} else {
		m.AddMoles(CarbonDioxide, burnRate*0.75)
		m.AddMoles(WaterVapor, burnRate*0.25)
	}

	settle(m, temperature, oldCapacity, firePlasmaEnergyReleased*burnRate)
	return true
}

const (
	tritiumMinimumBurnTemperature = 373.15
	tritiumBurnOxyFactor          = 100
	tritiumOxygenFullburn         = 10
	minimumTritOxyburnEnergy      = 2e6
	fireTritiumEnergyReleased     = 280000
)

func tritiumCombustion(m *Mixture) bool {
	// the released energy is seeded with the current temperature
	energy := m.Temperature
	oldCapacity := m.HeatCapacity()
	temperature := m.Temperature
	initialTritium := m.moles[Tritium]

	var burned float64
	if m.moles[Oxygen] < initialTritium || minimumTritOxyburnEnergy > temperature*oldCapacity {
		burned = math.Min(m.moles[Oxygen]/tritiumBurnOxyFactor, initialTritium)
		m.AddMoles(Tritium, -burned)
	} else {
		burned = initialTritium
		m.SetMoles(Tritium, m.moles[Tritium]*(1-1.0/tritiumOxygenFullburn))
		m.AddMoles(Oxygen, -m.moles[Tritium])
		energy += fireTritiumEnergyReleased * burned * (tritiumOxygenFullburn - 1)
	}

	m.AddMoles(WaterVapor, burned)
	if burned > 0 {
		energy += fireTritiumEnergyReleased * burned
	}
	if energy > 0 {
		settle(m, temperature, oldCapacity, energy)
	}
	return true
}

const (
	n2oFormationMinTemperature = 200
	n2oFormationMaxTemperature = 250
	n2oFormationEnergy         = 10000
)

func nitrousFormation(m *Mixture) bool {
	efficiency := math.Min(m.moles[Oxygen]*2, m.moles[Nitrogen])
	if m.moles[Oxygen]-efficiency*0.5 < 0 || m.moles[Nitrogen]-efficiency < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(Oxygen, -efficiency*0.5)
	m.AddMoles(Nitrogen, -efficiency)
	m.AddMoles(NitrousOxide, efficiency)

	settleAboveTCMB(m, oldCapacity, efficiency*n2oFormationEnergy)
	return true
}

const (
	n2oDecompositionMinTemperature = 1400
	n2oDecompositionMaxTemperature = 100000
	n2oDecompositionRateDivisor    = 2
	n2oDecompositionMinScaleTemp   = 0
	n2oDecompositionMaxScaleTemp   = 100000
	n2oDecompositionScaleDivisor   = -0.25 * ((n2oDecompositionMaxScaleTemp - n2oDecompositionMinScaleTemp) * 2)
	n2oDecompositionEnergy         = 200000
)

func nitrousDecomposition(m *Mixture) bool {
	temperature := m.Temperature
	// parabola in temperature, peaking halfway between the scale bounds
	burned := m.moles[NitrousOxide] / n2oDecompositionRateDivisor *
		((temperature - n2oDecompositionMinScaleTemp) * (temperature - n2oDecompositionMaxScaleTemp) / n2oDecompositionScaleDivisor)
	if burned <= 0 || m.moles[NitrousOxide]-burned < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(NitrousOxide, -burned)
	m.AddMoles(Nitrogen, burned)
	m.AddMoles(Oxygen, burned/2)

	settleAboveTCMB(m, oldCapacity, n2oDecompositionEnergy*burned)
	return true
}

const (
	bzFormationMaxTemperature = 313.15
	bzFormationEnergy         = 80000
)

func bzFormation(m *Mixture) bool {
	environmentEfficiency := m.Volume / m.Pressure()
	n2o := m.moles[NitrousOxide]
	plasma := m.moles[Plasma]

	ratioEfficiency := math.Min(n2o/plasma, 1)
	// share of the nitrous oxide that decomposes instead of forming bz
	decomposed := math.Max(4*(plasma/(n2o+plasma)-0.75), 0)
	formed := math.Min(
		0.01*ratioEfficiency*environmentEfficiency,
		math.Min(n2o*2.5, plasma*(1/(0.8*(1-decomposed)))),
	)
	if n2o-formed*0.4 < 0 || plasma-0.8*formed*(1-decomposed) < 0 || formed <= 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	if decomposed > 0 {
		amount := 0.4 * formed * decomposed
		m.AddMoles(Nitrogen, amount)
		m.AddMoles(Oxygen, 0.5*amount)
	}
	m.AddMoles(Bz, formed*(1-decomposed))
	m.AddMoles(NitrousOxide, -0.4*formed)
	m.AddMoles(Plasma, -0.8*formed*(1-decomposed))

	energy := formed * (bzFormationEnergy + decomposed*(n2oDecompositionEnergy-bzFormationEnergy))
	settleAboveTCMB(m, oldCapacity, energy)
	return true
}

const (
	pluoxiumFormationMinTemperature = 50
	pluoxiumFormationMaxTemperature = T0C
	pluoxiumFormationMaxRate        = 5
	pluoxiumFormationEnergy         = 250
)

func pluoxiumFormation(m *Mixture) bool {
	produced := math.Min(pluoxiumFormationMaxRate, math.Min(
		m.moles[CarbonDioxide],
		math.Min(m.moles[Oxygen]*2, m.moles[Tritium]*100),
	))
	if produced <= 0 ||
		m.moles[CarbonDioxide]-produced < 0 ||
		m.moles[Oxygen]-produced*0.5 < 0 ||
		m.moles[Tritium]-produced*0.01 < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(CarbonDioxide, -produced)
	m.AddMoles(Oxygen, -produced*0.5)
	m.AddMoles(Tritium, -produced*0.01)
	m.AddMoles(Pluoxium, produced)

	settleAboveTCMB(m, oldCapacity, produced*pluoxiumFormationEnergy)
	return true
}

const (
	nitriumFormationMinTemperature = 1500
	nitriumFormationTempDivisor    = 2985.2
	nitriumFormationEnergy         = 100000
)

func nitriumFormation(m *Mixture) bool {
	efficiency := math.Min(m.Temperature/nitriumFormationTempDivisor, math.Min(
		m.moles[Tritium],
		math.Min(m.moles[Nitrogen], m.moles[Bz]*20),
	))
	if efficiency <= 0 ||
		m.moles[Tritium]-efficiency < 0 ||
		m.moles[Nitrogen]-efficiency < 0 ||
		m.moles[Bz]-efficiency*0.05 < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(Tritium, -efficiency)
	m.AddMoles(Nitrogen, -efficiency)
	m.AddMoles(Bz, -efficiency*0.05)
	m.AddMoles(Nitrium, efficiency)

	// endothermic
	settleAboveTCMB(m, oldCapacity, -efficiency*nitriumFormationEnergy)
	return true
}

const (
	nitriumDecompositionMaxTemperature = T0C + 70
	nitriumDecompositionTempDivisor    = 2985.2
	nitriumDecompositionEnergy         = 30000
)

func nitriumDecomposition(m *Mixture) bool {
	efficiency := math.Min(m.Temperature/nitriumDecompositionTempDivisor, m.moles[Nitrium])
	if efficiency <= 0 || m.moles[Nitrium]-efficiency < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(Nitrium, -efficiency)
	m.AddMoles(Nitrogen, efficiency)

	settleAboveTCMB(m, oldCapacity, efficiency*nitriumDecompositionEnergy)
	return true
}

const (
	nobliumFormationMinTemperature = TCMB
	nobliumFormationMaxTemperature = 15
	nobliumFormationEnergy         = 2e7
)

func nobliumFormation(m *Mixture) bool {
	tritium := m.moles[Tritium]
	nitrogen := m.moles[Nitrogen]
	reduction := clamp(tritium/(tritium+m.moles[Bz]), 0.001, 1)
	formed := math.Min(
		(nitrogen+tritium)*0.01,
		math.Min(tritium*(1/(5*reduction)), nitrogen*0.1),
	)
	if formed <= 0 || tritium-5*formed*reduction < 0 || nitrogen-10*formed < 0 {
		return false
	}

	oldCapacity := m.HeatCapacity()
	m.AddMoles(Tritium, -5*formed*reduction)
	m.AddMoles(Nitrogen, -10*formed)
	m.AddMoles(HyperNoblium, formed)

	energy := formed * (nobliumFormationEnergy / math.Max(m.moles[Bz], 1))
	settleAboveTCMB(m, oldCapacity, energy)
	return true
}

const (
	fusionMoleThreshold                = 250
	fusionTritiumConversionCoefficient = 0.002
	instabilityGasPowerFactor          = 3
	fusionTritiumMolesUsed             = 1
	plasmaBindingEnergy                = 20000000
	toroidCalculatedThreshold          = 5.96
	fusionTemperatureThreshold         = 10000
	fusionInstabilityEndothermality    = 2
	fusionScaleDivisor                 = 10
	fusionMinimalScale                 = 50
	fusionSlopeDivisor                 = 1250
	fusionEnergyTranslationExponent    = 1.25
	fusionBaseTempScale                = 6
	fusionMiddleEnergyReference        = 1e6
	fusionBufferDivisor                = 1
	fusionSineScale                    = 57.2957795
	fusionMaximumTemperature           = 1e31
)

func fusion(m *Mixture) bool {
	thermalEnergy := m.Temperature * m.HeatCapacity()
	initialPlasma := m.moles[Plasma]
	initialCarbon := m.moles[CarbonDioxide]
	scaleFactor := math.Max(m.Volume/fusionScaleDivisor, fusionMinimalScale)

	temperatureScale := math.Log10(m.Temperature)
	toroidalSize := toroidCalculatedThreshold
	if temperatureScale <= fusionBaseTempScale {
		toroidalSize += (temperatureScale - fusionBaseTempScale) / fusionBufferDivisor
	} else {
		toroidalSize += math.Pow(4, (temperatureScale-fusionBaseTempScale)/fusionSlopeDivisor)
	}
	instability := math.Mod(m.FusionPower()*instabilityGasPowerFactor, toroidalSize)

	plasma := (initialPlasma - fusionMoleThreshold) / scaleFactor
	carbon := (initialCarbon - fusionMoleThreshold) / scaleFactor
	plasma -= math.Mod(instability*math.Sin(carbon*fusionSineScale), toroidalSize)
	carbon -= math.Mod(plasma, toroidalSize)

	m.SetMoles(Plasma, plasma*scaleFactor+fusionMoleThreshold)
	m.SetMoles(CarbonDioxide, carbon*scaleFactor+fusionMoleThreshold)

	deltaPlasma := math.Min(initialPlasma-m.moles[Plasma], toroidalSize*scaleFactor*1.5)

	var reactionEnergy float64
	if instability <= fusionInstabilityEndothermality || deltaPlasma > 0 {
		reactionEnergy = math.Max(deltaPlasma*plasmaBindingEnergy, 0)
	} else {
		reactionEnergy = deltaPlasma * plasmaBindingEnergy * math.Pow(instability-fusionInstabilityEndothermality, 0.5)
	}

	if reactionEnergy > 0 {
		middleEnergy := (toroidCalculatedThreshold/2*scaleFactor + fusionMoleThreshold) * (200 * fusionMiddleEnergyReference)
		thermalEnergy = middleEnergy * math.Pow(fusionEnergyTranslationExponent, math.Log10(thermalEnergy/middleEnergy))

		bowdlerized := clamp(reactionEnergy,
			thermalEnergy*(math.Pow(1/fusionEnergyTranslationExponent, 2)-1),
			thermalEnergy*(math.Pow(fusionEnergyTranslationExponent, 2)-1),
		)
		// log of the translation exponent in base ratio, not the reverse
		ratio := (thermalEnergy + bowdlerized) / middleEnergy
		exponent := math.Log(fusionEnergyTranslationExponent) / math.Log(ratio)
		thermalEnergy = middleEnergy * math.Pow(10, exponent)
	}

	m.AddMoles(Tritium, -fusionTritiumMolesUsed)

	waste := scaleFactor * (fusionTritiumConversionCoefficient * fusionTritiumMolesUsed)
	if deltaPlasma > 0 {
		m.AddMoles(WaterVapor, waste)
	} else {
		m.AddMoles(Bz, waste)
	}
	m.AddMoles(Oxygen, waste)

	if reactionEnergy > 0 || (reactionEnergy == 0 && instability <= fusionInstabilityEndothermality) {
		newCapacity := m.HeatCapacity()
		if newCapacity > MinimumHeatCapacity {
			m.Temperature = clamp(thermalEnergy/newCapacity, TCMB, fusionMaximumTemperature)
		}
	}
	return true
}
