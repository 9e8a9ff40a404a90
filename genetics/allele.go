package genetics

import "cultigen/traits"

// TraitEffect is one (trait, magnitude) entry of an allele's effect table.
// Magnitudes are dimensionless modifiers, typically in [-1, 1].
type TraitEffect struct {
	Trait     traits.Trait
	Magnitude float64
}

// Allele is one variant form of a gene. Alleles hold a back-reference to the
// owning gene by ID only; they never own the gene. Immutable after load.
type Allele struct {
	ID      string
	GeneID  string
	Name    string
	Effects []TraitEffect

	// EnvSensitive marks alleles whose expression is modulated by current
	// grow conditions (GxE interaction).
	EnvSensitive bool

	// EnvModifiers optionally scales the allele's effect under a named
	// condition band ("heat", "cold", "low_light", "high_light", "drought",
	// "humid"). Missing entries mean no modulation for that band.
	EnvModifiers map[string]float64
}

// EffectOn returns the allele's effect magnitude for a trait, zero if the
// effect table has no matching entry.
func (a *Allele) EffectOn(t traits.Trait) float64 {
	if a == nil {
		return 0
	}
	for _, e := range a.Effects {
		if e.Trait == t {
			return e.Magnitude
		}
	}
	return 0
}
