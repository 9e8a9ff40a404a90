package expression

import (
	"math"
	"sort"

	"cultigen/environment"
	"cultigen/genetics"
	"cultigen/traits"
)

// QTLClass buckets a locus by the magnitude of its contribution to a
// polygenic trait.
type QTLClass uint8

const (
	Major QTLClass = iota
	Moderate
	Minor
	Modifier
)

// String returns the class name.
func (c QTLClass) String() string {
	switch c {
	case Major:
		return "Major"
	case Moderate:
		return "Moderate"
	case Minor:
		return "Minor"
	case Modifier:
		return "Modifier"
	default:
		return "Unknown"
	}
}

// QTL class thresholds on mean absolute allele effect.
const (
	majorThreshold    = 0.4
	moderateThreshold = 0.15
	minorThreshold    = 0.05
)

// QTLEffect describes one locus's contribution to a trait in quantitative
// genetics terms.
type QTLEffect struct {
	LocusID        string
	Trait          traits.Trait
	Additive       float64 // mean of the two allele effects
	DominanceDev   float64 // deviation from additivity, pattern-dependent
	TotalEffect    float64
	Class          QTLClass
	EnvSensitivity float64 // in [0.1, 0.8]
	Heritability   float64 // in [0.2, 0.9]
}

// QTLProfile is the aggregate polygenic picture of one trait.
type QTLProfile struct {
	Effects              []QTLEffect // sorted by |TotalEffect| descending
	ArchitectureModifier float64     // in [0.9, 1.15]
	Modifier             float64     // multiplicative modifier on the genetic term
}

// dominanceDeviation computes the deviation from purely additive behavior.
// Near-equal alleles express no deviation regardless of pattern.
func dominanceDeviation(e1, e2, additive float64, pattern genetics.DominancePattern) float64 {
	if math.Abs(e1-e2) < 0.01 {
		return 0
	}
	switch pattern {
	case genetics.Complete:
		return math.Max(e1, e2) - additive
	case genetics.Codominant:
		return 0.3 * additive
	case genetics.Overdominant:
		return 0.25 * math.Abs(e1-e2)
	case genetics.Underdominant:
		return -0.25 * math.Abs(e1-e2)
	default: // Incomplete is purely additive
		return 0
	}
}

func classify(meanAbsEffect float64) QTLClass {
	switch {
	case meanAbsEffect >= majorThreshold:
		return Major
	case meanAbsEffect >= moderateThreshold:
		return Moderate
	case meanAbsEffect >= minorThreshold:
		return Minor
	default:
		return Modifier
	}
}

func classHeritability(c QTLClass) float64 {
	switch c {
	case Major:
		return 0.85
	case Moderate:
		return 0.65
	case Minor:
		return 0.5
	default:
		return 0.35
	}
}

// classSensitivity adjusts base environmental sensitivity by QTL class:
// large-effect loci are buffered, modifiers amplify environmental noise.
func classSensitivity(base float64, c QTLClass) float64 {
	switch c {
	case Major:
		base *= 0.7
	case Modifier:
		base *= 1.4
	}
	return clamp(base, 0.1, 0.8)
}

// rankWeight implements rank-based diminishing returns over the sorted
// contributions: 100%, 90%, 80%, then 70% - 10% per further rank, floor 20%.
func rankWeight(rank int) float64 {
	switch rank {
	case 0:
		return 1.0
	case 1:
		return 0.9
	case 2:
		return 0.8
	default:
		return math.Max(0.2, 0.7-0.1*float64(rank-3))
	}
}

// aggregateQTL folds the contributing loci of one trait into a polygenic
// modifier with rank-based diminishing returns, per-QTL environmental
// interaction and an architecture adjustment.
func aggregateQTL(t traits.Trait, contribs []locusContribution, env environment.Snapshot) *QTLProfile {
	effects := make([]QTLEffect, 0, len(contribs))
	for _, c := range contribs {
		additive := (c.E1 + c.E2) / 2
		meanAbs := (math.Abs(c.E1) + math.Abs(c.E2)) / 2
		class := classify(meanAbs)
		dev := dominanceDeviation(c.E1, c.E2, additive, c.Pattern)

		baseSens := 0.3
		if c.EnvSensitive {
			baseSens = 0.5
		}

		effects = append(effects, QTLEffect{
			LocusID:        c.LocusID,
			Trait:          t,
			Additive:       additive,
			DominanceDev:   dev,
			TotalEffect:    additive + dev,
			Class:          class,
			EnvSensitivity: classSensitivity(baseSens, class),
			Heritability:   classHeritability(class),
		})
	}

	// Largest effects first; ties broken by locus ID so the ranking is
	// stable across runs.
	sort.Slice(effects, func(i, j int) bool {
		ai, aj := math.Abs(effects[i].TotalEffect), math.Abs(effects[j].TotalEffect)
		if ai != aj {
			return ai > aj
		}
		return effects[i].LocusID < effects[j].LocusID
	})

	quality := envQuality(env)
	initialized := env.Initialized()

	var sum float64
	var majors, minors, modifiers int
	for rank, e := range effects {
		envFactor := 1.0
		if initialized {
			envFactor = 1 + (quality-0.5)*e.EnvSensitivity
		}
		sum += e.TotalEffect * rankWeight(rank) * envFactor

		switch e.Class {
		case Major:
			majors++
		case Minor:
			minors++
		case Modifier:
			modifiers++
		}
	}

	arch := 1.0
	if majors >= 1 && majors <= 3 && minors >= 3 {
		arch += 0.10 // oligogenic backbone with polygenic background
	}
	if majors > 4 {
		arch -= 0.05
	}
	if modifiers > 2 {
		arch += math.Min(0.05, 0.02*float64(modifiers-2))
	}
	arch = clamp(arch, 0.9, 1.15)

	return &QTLProfile{
		Effects:              effects,
		ArchitectureModifier: arch,
		Modifier:             clamp(1+0.25*sum*arch, 0.7, 1.4),
	}
}
