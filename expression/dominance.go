package expression

import "cultigen/genetics"

// Heterozygote interaction scaling for over/underdominant loci.
const (
	overdominantBoost    = 1.2
	underdominantPenalty = 0.8
	homozygoteSplit      = 0.5
)

// resolveLocus combines the two allele effect magnitudes at one locus into a
// single locus effect according to the gene's dominance pattern.
func resolveLocus(e1, e2 float64, pattern genetics.DominancePattern) float64 {
	switch pattern {
	case genetics.Complete:
		if e1 >= e2 {
			return e1
		}
		return e2
	case genetics.Incomplete:
		return (e1 + e2) / 2
	case genetics.Codominant:
		return e1 + e2
	case genetics.Overdominant:
		if e1 != e2 {
			return (e1 + e2) * overdominantBoost
		}
		return (e1 + e2) * homozygoteSplit
	case genetics.Underdominant:
		if e1 != e2 {
			return (e1 + e2) * underdominantPenalty
		}
		return (e1 + e2) * homozygoteSplit
	default:
		return (e1 + e2) / 2
	}
}

// resolveOrphan is the deterministic fallback when no dominance pattern can
// be resolved (allele whose gene is missing from the catalog).
func resolveOrphan(e1, e2 float64) float64 {
	return (e1 + e2) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
