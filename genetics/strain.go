package genetics

import "cultigen/traits"

// Morphotype is the structural classification of a strain. Baseline height
// and yield follow the morphotype, not the strain name.
type Morphotype uint8

const (
	Hybrid Morphotype = iota
	Indica
	Sativa
	Autoflower
)

// String returns the morphotype name as it appears in catalog files.
func (m Morphotype) String() string {
	switch m {
	case Indica:
		return "indica"
	case Sativa:
		return "sativa"
	case Autoflower:
		return "autoflower"
	default:
		return "hybrid"
	}
}

// Chemotype is the cannabinoid profile classification of a strain.
type Chemotype uint8

const (
	Balanced Chemotype = iota
	HighTHC
	HighCBD
)

// String returns the chemotype name as it appears in catalog files.
func (c Chemotype) String() string {
	switch c {
	case HighTHC:
		return "high_thc"
	case HighCBD:
		return "high_cbd"
	default:
		return "balanced"
	}
}

// Strain is a strain-of-origin record. The engine uses it only to look up
// per-trait baseline values.
type Strain struct {
	ID         string
	Name       string
	Morphotype Morphotype
	Chemotype  Chemotype
	HighYield  bool
}

// Documented trait defaults, used for nil strains, empty genotypes and the
// engine's fallback result.
const (
	DefaultHeight = 1.5  // meters
	DefaultTHC    = 15.0 // percent
	DefaultCBD    = 1.0  // percent
	DefaultYield  = 400.0 // grams
)

// DefaultBase returns the documented default base value for a trait.
func DefaultBase(t traits.Trait) float64 {
	switch t {
	case traits.Height:
		return DefaultHeight
	case traits.THC:
		return DefaultTHC
	case traits.CBD:
		return DefaultCBD
	case traits.Yield:
		return DefaultYield
	default:
		return 0
	}
}

// BaseValue returns the strain's baseline for a trait. A nil strain yields
// the trait default.
func (s *Strain) BaseValue(t traits.Trait) float64 {
	if s == nil {
		return DefaultBase(t)
	}
	switch t {
	case traits.Height:
		switch s.Morphotype {
		case Sativa:
			return 2.0
		case Indica:
			return 1.2
		case Autoflower:
			return 0.9
		default:
			return DefaultHeight
		}
	case traits.THC:
		switch s.Chemotype {
		case HighTHC:
			return 22.0
		case HighCBD:
			return 8.0
		default:
			return DefaultTHC
		}
	case traits.CBD:
		switch s.Chemotype {
		case HighCBD:
			return 12.0
		case HighTHC:
			return 0.5
		default:
			return DefaultCBD
		}
	case traits.Yield:
		if s.HighYield {
			return 550.0
		}
		if s.Morphotype == Autoflower {
			return 300.0
		}
		return DefaultYield
	default:
		return 0
	}
}
