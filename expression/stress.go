package expression

import (
	"math"

	"cultigen/environment"
	"cultigen/genetics"
	"cultigen/traits"
)

// StressType identifies one environmental stress axis.
type StressType uint8

const (
	HeatStress StressType = iota
	ColdStress
	LightDeficiency
	LightExcess
	DroughtStress
	HumidityExcess
	NutrientDeficiency
	CO2Deficiency
)

// String returns the stress type name.
func (s StressType) String() string {
	switch s {
	case HeatStress:
		return "heat"
	case ColdStress:
		return "cold"
	case LightDeficiency:
		return "light-deficiency"
	case LightExcess:
		return "light-excess"
	case DroughtStress:
		return "drought"
	case HumidityExcess:
		return "humidity-excess"
	case NutrientDeficiency:
		return "nutrient-deficiency"
	case CO2Deficiency:
		return "co2-deficiency"
	default:
		return "unknown"
	}
}

// StressCategory is the severity bucket of the overall stress level.
type StressCategory uint8

const (
	Optimal StressCategory = iota
	Mild
	ModerateStress
	Severe
	Critical
)

// String returns the category name.
func (c StressCategory) String() string {
	switch c {
	case Optimal:
		return "Optimal"
	case Mild:
		return "Mild"
	case ModerateStress:
		return "Moderate"
	case Severe:
		return "Severe"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// StressFactor is one active stress axis with its per-trait impact deltas.
// Impacts are proportional adjustments (negative harms, positive boosts).
type StressFactor struct {
	Type      StressType
	Intensity float64 // in [0, 1]
	Impacts   map[traits.Trait]float64
}

// StressResponse is the full stress picture for one calculation.
type StressResponse struct {
	OverallLevel     float64 // in [0, 1], after resistance reduction
	Category         StressCategory
	ActiveStresses   []StressFactor
	Resistance       float64 // in [0.2, 0.9]
	AdaptiveCapacity float64 // in [0.1, 0.7]
	HardeningBonus   float64
	Adaptations      map[traits.Trait]float64
	ToleranceBonuses map[StressType]float64
}

// Stress detection thresholds and formulas follow the documented policies.
const (
	optimalTemp       = 24.0
	tempDeadband      = 3.0
	tempStressScale   = 12.0
	lowLightThreshold = 200.0
	highLightThreshold = 1000.0
	droughtThreshold  = 30.0
	humidThreshold    = 75.0
	nutrientTempLow   = 18.0
	nutrientTempHigh  = 30.0
	co2Threshold      = 300.0
)

// analyzeStress evaluates the five stress axes against the snapshot.
// resilience is the genotype's resolved tolerance-gene magnitude. Readings
// left at their zero sentinel are treated as unmeasured and their axes are
// skipped rather than read as extreme deprivation.
func analyzeStress(env environment.Snapshot, g *genetics.Genotype, resilience float64) *StressResponse {
	resistance := clamp(0.5+0.4*resilience-0.3*g.Inbreeding, 0.2, 0.9)
	capacity := clamp(0.4+0.3*resilience-0.3*g.Inbreeding, 0.1, 0.7)

	var factors []StressFactor

	if env.Temperature != 0 {
		dev := env.Temperature - optimalTemp
		if dev > tempDeadband {
			i := math.Min(1, (dev-tempDeadband)/tempStressScale)
			factors = append(factors, StressFactor{
				Type:      HeatStress,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Height: -0.10 * i,
					traits.Yield:  -0.25 * i,
					traits.THC:    0.05 * i, // defense compound response
				},
			})
		} else if dev < -tempDeadband {
			i := math.Min(1, (-dev-tempDeadband)/tempStressScale)
			factors = append(factors, StressFactor{
				Type:      ColdStress,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Height: -0.15 * i,
					traits.Yield:  -0.20 * i,
				},
			})
		}
	}

	if env.Light != 0 {
		if env.Light < lowLightThreshold {
			i := (lowLightThreshold - env.Light) / lowLightThreshold
			factors = append(factors, StressFactor{
				Type:      LightDeficiency,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Height: 0.10 * i, // etiolation stretch
					traits.Yield:  -0.30 * i,
					traits.THC:    -0.15 * i,
					traits.CBD:    -0.10 * i,
				},
			})
		} else if env.Light > highLightThreshold {
			i := math.Min(1, (env.Light-highLightThreshold)/500)
			factors = append(factors, StressFactor{
				Type:      LightExcess,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Height: -0.10 * i,
					traits.Yield:  -0.10 * i,
					traits.THC:    0.08 * i, // UV-driven resin response
					traits.CBD:    0.04 * i,
				},
			})
		}
	}

	if env.Humidity != 0 {
		if env.Humidity < droughtThreshold {
			i := (droughtThreshold - env.Humidity) / droughtThreshold
			factors = append(factors, StressFactor{
				Type:      DroughtStress,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Height: -0.20 * i,
					traits.Yield:  -0.15 * i,
					traits.THC:    0.10 * i,
				},
			})
		} else if env.Humidity > humidThreshold {
			i := (env.Humidity - humidThreshold) / 25
			factors = append(factors, StressFactor{
				Type:      HumidityExcess,
				Intensity: i,
				Impacts: map[traits.Trait]float64{
					traits.Yield: -0.25 * i, // mold risk
					traits.CBD:   -0.05 * i,
				},
			})
		}
	}

	// Nutrient uptake proxied by temperature and moisture together; without
	// a humidity reading there is no basis for the proxy.
	if env.Temperature != 0 && env.Humidity != 0 &&
		(env.Temperature < nutrientTempLow || env.Temperature > nutrientTempHigh) {
		const i = 0.3
		factors = append(factors, StressFactor{
			Type:      NutrientDeficiency,
			Intensity: i,
			Impacts: map[traits.Trait]float64{
				traits.Height: -0.05 * i,
				traits.Yield:  -0.10 * i,
			},
		})
	}

	if env.CO2 != 0 && env.CO2 < co2Threshold {
		i := math.Min(1, (co2Threshold-env.CO2)/100)
		factors = append(factors, StressFactor{
			Type:      CO2Deficiency,
			Intensity: i,
			Impacts: map[traits.Trait]float64{
				traits.Yield:  -0.20 * i,
				traits.Height: -0.05 * i,
			},
		})
	}

	resp := &StressResponse{
		ActiveStresses:   factors,
		Resistance:       resistance,
		AdaptiveCapacity: capacity,
		Adaptations:      make(map[traits.Trait]float64),
		ToleranceBonuses: make(map[StressType]float64),
	}

	if len(factors) == 0 {
		resp.Category = Optimal
		return resp
	}

	var sum, max float64
	for _, f := range factors {
		sum += f.Intensity
		if f.Intensity > max {
			max = f.Intensity
		}
	}
	overall := (sum/float64(len(factors)) + max) / 2

	// Simultaneous stresses compound.
	overall *= 1 + 0.15*float64(len(factors)-1)
	overall = clamp01(overall)

	// Resistance buys back up to 40%.
	overall *= 1 - 0.4*resistance
	overall = clamp01(overall)

	resp.OverallLevel = overall
	resp.Category = categorize(overall)

	for _, f := range factors {
		resp.ToleranceBonuses[f.Type] = clamp(0.3*resilience, 0, 0.3)
	}

	// Mild stress hardens the plant; severe stress forces triage.
	if overall > 0.1 && overall < 0.4 {
		resp.HardeningBonus = 0.1 * capacity
		resp.Adaptations[traits.THC] = 0.04 * capacity
		resp.Adaptations[traits.CBD] = 0.03 * capacity
	} else if overall > 0.6 {
		resp.Adaptations[traits.Height] = -0.10 * overall
		resp.Adaptations[traits.Yield] = -0.15 * overall
		resp.Adaptations[traits.THC] = 0.05 * overall
		resp.Adaptations[traits.CBD] = 0.02 * overall
	}

	return resp
}

func categorize(overall float64) StressCategory {
	switch {
	case overall < 0.2:
		return Optimal
	case overall < 0.4:
		return Mild
	case overall < 0.7:
		return ModerateStress
	case overall < 0.9:
		return Severe
	default:
		return Critical
	}
}

// traitStressDelta computes the final proportional stress effect for one
// trait: summed factor impacts (harm reduced by any matching tolerance
// bonus) plus the adaptation delta.
func (r *StressResponse) traitStressDelta(t traits.Trait) float64 {
	if r == nil {
		return 0
	}
	var delta float64
	for _, f := range r.ActiveStresses {
		imp := f.Impacts[t]
		if imp < 0 {
			imp *= 1 - r.ToleranceBonuses[f.Type]
		}
		delta += imp
	}
	return delta + r.Adaptations[t]
}
