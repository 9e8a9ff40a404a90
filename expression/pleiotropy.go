package expression

import "cultigen/traits"

// Pleiotropy constants. Ratios are fractions of the total cannabinoid load;
// the height ratio is actual over strain baseline.
const (
	thcDominantRatio  = 0.8
	cbdDominantRatio  = 0.2
	tallPlantRatio    = 1.2
	shortPlantRatio   = 0.8
	cannabinoidBudget = 25.0 // combined % above which synthesis competes with yield
)

// applyPleiotropy adjusts the four independently computed trait values for
// known cross-trait trade-offs. Values are mutated in place; bases are the
// strain baselines used for the height ratio.
func applyPleiotropy(values, bases map[traits.Trait]float64, lociPerTrait map[traits.Trait]int) {
	thc := values[traits.THC]
	cbd := values[traits.CBD]

	// Cannabinoid antagonism: the synthases compete for the same CBGA pool.
	if total := thc + cbd; total > 0 {
		switch ratio := thc / total; {
		case ratio > thcDominantRatio:
			values[traits.CBD] = cbd * 0.9
		case ratio < cbdDominantRatio:
			values[traits.THC] = thc * 0.9
		}
	}

	// Height correlates with canopy size (yield) and dilutes potency.
	if base := bases[traits.Height]; base > 0 {
		switch ratio := values[traits.Height] / base; {
		case ratio > tallPlantRatio:
			values[traits.Yield] *= 1.15
			values[traits.THC] *= 0.95
		case ratio < shortPlantRatio:
			values[traits.Yield] *= 0.925
			values[traits.THC] *= 1.03
		}
	}

	// A cannabinoid load beyond the budget draws energy away from flower
	// mass, proportionally to the excess at a 10% scaling factor.
	if load := values[traits.THC] + values[traits.CBD]; load > cannabinoidBudget {
		excess := (load - cannabinoidBudget) / cannabinoidBudget
		values[traits.Yield] *= clamp(1-0.1*excess, 0.5, 1)
	}

	// Genotypes with many loci behind one trait get a shared complexity
	// bonus: +2% per extra gene, capped at +10%, on all four traits.
	maxLoci := 0
	for _, n := range lociPerTrait {
		if n > maxLoci {
			maxLoci = n
		}
	}
	if maxLoci > 3 {
		bonus := 1 + minFloat(0.10, 0.02*float64(maxLoci-3))
		for _, t := range traits.Expressed {
			values[t] *= bonus
		}
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
