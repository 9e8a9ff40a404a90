package expression

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"cultigen/genetics"
	"cultigen/traits"
)

// Epistasis output bounds. Interaction can at most cut a trait to 60% or
// amplify it to 180% of its additive expectation.
const (
	epistasisFloor = 0.6
	epistasisCeil  = 1.8
)

// Effect-strength thresholds for pathway synergy decisions.
const (
	strongEffect = 0.3
	weakEffect   = 0.15
)

// locusContribution carries everything the interaction calculators need to
// know about one contributing locus.
type locusContribution struct {
	LocusID      string
	Category     genetics.GeneCategory
	Pattern      genetics.DominancePattern
	E1, E2       float64 // per-allele effects after environmental modulation
	Resolved     float64 // dominance-resolved locus effect
	EnvSensitive bool    // either allele flagged environment-sensitive
}

// epistasisModifier computes the non-additive interaction modifier for one
// trait from its contributing loci. Requires at least two loci.
func epistasisModifier(t traits.Trait, contribs []locusContribution) float64 {
	m := generalInteractionTerm(contribs)

	switch t {
	case traits.THC, traits.CBD:
		m *= cannabinoidPathwayTerm(contribs)
	case traits.Height:
		m *= heightPathwayTerm(contribs)
	case traits.Yield:
		m *= yieldPathwayTerm(contribs)
	}

	return clamp(m, epistasisFloor, epistasisCeil)
}

// cannabinoidPathwayTerm models the precursor -> synthase chain. Strong
// synthase expression without precursor supply is substrate-limited;
// regulatory loci scale the whole chain.
func cannabinoidPathwayTerm(contribs []locusContribution) float64 {
	prec := avgAbsByCategory(contribs, genetics.CategoryPrecursor)
	syn := avgAbsByCategory(contribs, genetics.CategorySynthase)
	reg := avgByCategory(contribs, genetics.CategoryRegulatory)

	term := 1.0
	if prec >= strongEffect && syn >= strongEffect {
		term *= 1.2
	} else if syn >= strongEffect && prec < weakEffect {
		term *= 0.8 // substrate-limited
	}

	term *= 1 + clamp(reg*0.5, -0.15, 0.15)
	return term
}

// heightPathwayTerm rewards growth-hormone and structural genes acting
// together and penalizes stacking too many height loci.
func heightPathwayTerm(contribs []locusContribution) float64 {
	growth := avgAbsByCategory(contribs, genetics.CategoryGrowth)
	structural := avgAbsByCategory(contribs, genetics.CategoryStructural)

	term := 1.0
	if growth >= 0.2 && structural >= 0.2 {
		term *= 1.15
	}
	if n := len(contribs); n > 4 {
		term *= math.Max(0.85, 1-0.05*float64(n-4))
	}
	return term
}

// yieldPathwayTerm combines photosynthesis x metabolism synergy with a
// size x flowering interaction that has an optimal band.
func yieldPathwayTerm(contribs []locusContribution) float64 {
	photo := avgAbsByCategory(contribs, genetics.CategoryPhotosynthesis)
	metab := avgAbsByCategory(contribs, genetics.CategoryMetabolic)
	size := avgAbsByCategory(contribs, genetics.CategoryGrowth, genetics.CategoryStructural)
	flower := avgAbsByCategory(contribs, genetics.CategoryFlowering)

	term := 1 + math.Min(photo*metab, 0.25)

	interaction := size * flower
	switch {
	case interaction > 0.3:
		term *= 0.9 // over-interaction: plant too busy growing to flower well
	case interaction >= 0.02:
		term *= 1.1
	}
	return term
}

// generalInteractionTerm rewards effect distributions near the optimal
// variance of 0.3 and moderately polygenic architectures (3-6 loci).
func generalInteractionTerm(contribs []locusContribution) float64 {
	const optimalVariance = 0.3

	effects := make([]float64, len(contribs))
	for i, c := range contribs {
		effects[i] = c.Resolved
	}

	v := stat.Variance(effects, nil)
	closeness := 1 - math.Min(1, math.Abs(v-optimalVariance)/optimalVariance)
	m := 0.9 + 0.2*closeness

	switch n := len(contribs); {
	case n >= 3 && n <= 6:
		m *= 1 + 0.015*float64(n)
	case n > 6:
		m *= math.Max(0.8, 1-0.03*float64(n-6))
	}
	return m
}

func avgAbsByCategory(contribs []locusContribution, cats ...genetics.GeneCategory) float64 {
	var sum float64
	var n int
	for _, c := range contribs {
		for _, cat := range cats {
			if c.Category == cat {
				sum += math.Abs(c.Resolved)
				n++
				break
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func avgByCategory(contribs []locusContribution, cat genetics.GeneCategory) float64 {
	var sum float64
	var n int
	for _, c := range contribs {
		if c.Category == cat {
			sum += c.Resolved
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
