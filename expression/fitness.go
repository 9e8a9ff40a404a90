package expression

import (
	"math"

	"cultigen/genetics"
	"cultigen/traits"
)

// Fitness aggregation weights. The per-trait closeness terms and the
// environmental-adaptation term sum to one.
const (
	fitnessBase      = 0.45
	fitnessScale     = 0.35
	heightWeight     = 0.20
	thcWeight        = 0.25
	cbdWeight        = 0.15
	yieldWeight      = 0.30
	adaptationWeight = 0.10

	outbredThreshold = 0.25
	balanceWeight    = 0.10
	stressPenalty    = 0.30
)

// computeFitness aggregates the phenotype into a single adaptedness score in
// [0.1, 1.0].
func computeFitness(values map[traits.Trait]float64, g *genetics.Genotype, stress *StressResponse) float64 {
	ch := closeness(values[traits.Height], traits.Height.Optimum())
	cthc := closeness(values[traits.THC], traits.THC.Optimum())
	ccbd := closeness(values[traits.CBD], traits.CBD.Optimum())
	cyield := closeness(values[traits.Yield], traits.Yield.Optimum())

	overall := 0.0
	adaptation := 1.0
	if stress != nil {
		overall = stress.OverallLevel
		adaptation = clamp01(1 - overall + stress.HardeningBonus)
	}

	score := heightWeight*ch + thcWeight*cthc + cbdWeight*ccbd +
		yieldWeight*cyield + adaptationWeight*adaptation

	fitness := fitnessBase + fitnessScale*score

	// Outbreeding bonus: genetically diverse stock is more vigorous. An
	// empty genotype has nothing to outbreed.
	if g.LocusCount() > 0 && g.Inbreeding < outbredThreshold {
		fitness += 0.05 + 0.05*(1-g.Inbreeding/outbredThreshold)
	}

	// Balance bonus rewards phenotypes with no weak trait, not just a high
	// average.
	avg := (ch + cthc + ccbd + cyield) / 4
	low := math.Min(math.Min(ch, cthc), math.Min(ccbd, cyield))
	fitness += balanceWeight * (0.5*avg + 0.5*low)

	fitness *= 1 - stressPenalty*overall

	return clamp(fitness, 0.1, 1.0)
}

// closeness scores how near a trait value sits to its optimum, 1 at the
// optimum falling linearly to 0 at a full optimum's distance away.
func closeness(value, optimum float64) float64 {
	if optimum <= 0 {
		return 0
	}
	return 1 - clamp01(math.Abs(value-optimum)/optimum)
}
