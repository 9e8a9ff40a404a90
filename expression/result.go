package expression

import (
	"time"

	"cultigen/traits"
)

// Result is the immutable outcome of one expression calculation. The engine
// builds a fresh record per call and never mutates it afterwards.
type Result struct {
	GenotypeID string

	Height float64 // meters
	THC    float64 // percent
	CBD    float64 // percent
	Yield  float64 // grams

	// Fitness is the overall adaptedness score in [0.1, 1.0] (0.5 on the
	// fallback path).
	Fitness float64

	// Stress is nil when the environment was uninitialized.
	Stress *StressResponse

	// QTL holds the per-trait polygenic profiles for traits where the QTL
	// aggregation ran (two or more contributing loci).
	QTL map[traits.Trait]*QTLProfile

	CalculatedAt      time.Time
	EpistasisApplied  bool
	PleiotropyApplied bool

	// TraitLoci counts contributing loci per trait. All zeros means the
	// calculation degraded to pure defaults; callers should check this (or
	// the summary) rather than expecting an error.
	TraitLoci map[traits.Trait]int

	// EnvironmentalSummary is a free-text description of environmental
	// conditions, or an explanation on the fallback path.
	EnvironmentalSummary string
}

// Value returns the computed value for an expressed trait.
func (r *Result) Value(t traits.Trait) float64 {
	switch t {
	case traits.Height:
		return r.Height
	case traits.THC:
		return r.THC
	case traits.CBD:
		return r.CBD
	case traits.Yield:
		return r.Yield
	default:
		return 0
	}
}

// Degraded reports whether the calculation contributed no genetic
// information (missing data or fallback path).
func (r *Result) Degraded() bool {
	for _, n := range r.TraitLoci {
		if n > 0 {
			return false
		}
	}
	return true
}
