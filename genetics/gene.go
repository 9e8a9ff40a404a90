// Package genetics defines the immutable gene/allele model and genotypes
// consumed by the expression engine, plus the authored catalog they are
// loaded from. Definitions are load-time immutable and safe to share
// read-only across goroutines.
package genetics

// DominancePattern is the rule for combining the two allele effects at a
// locus into a single locus effect.
type DominancePattern uint8

const (
	Complete DominancePattern = iota
	Incomplete
	Codominant
	Overdominant
	Underdominant
)

// String returns the pattern name as it appears in catalog files.
func (d DominancePattern) String() string {
	switch d {
	case Complete:
		return "complete"
	case Incomplete:
		return "incomplete"
	case Codominant:
		return "codominant"
	case Overdominant:
		return "overdominant"
	case Underdominant:
		return "underdominant"
	default:
		return "unknown"
	}
}

// GeneCategory places a gene in a biosynthetic or structural pathway. The
// epistasis calculator keys its pathway heuristics off this field.
type GeneCategory uint8

const (
	CategoryGeneral GeneCategory = iota
	CategoryPrecursor
	CategorySynthase
	CategoryRegulatory
	CategoryGrowth
	CategoryStructural
	CategoryPhotosynthesis
	CategoryMetabolic
	CategoryFlowering
	CategoryTolerance
)

// String returns the category name as it appears in catalog files.
func (c GeneCategory) String() string {
	switch c {
	case CategoryPrecursor:
		return "precursor"
	case CategorySynthase:
		return "synthase"
	case CategoryRegulatory:
		return "regulatory"
	case CategoryGrowth:
		return "growth"
	case CategoryStructural:
		return "structural"
	case CategoryPhotosynthesis:
		return "photosynthesis"
	case CategoryMetabolic:
		return "metabolic"
	case CategoryFlowering:
		return "flowering"
	case CategoryTolerance:
		return "tolerance"
	default:
		return "general"
	}
}

// Gene is one locus definition. Genes are shared by reference across
// genotypes and never mutated after catalog load.
type Gene struct {
	ID        string
	Name      string
	Dominance DominancePattern
	Category  GeneCategory
}
