// Package traits defines the observable plant characteristics the expression
// engine computes, along with their display names and fitness optima.
package traits

// Trait identifies a single quantitative plant trait.
type Trait uint8

const (
	// Height is plant height in meters.
	Height Trait = iota
	// THC is tetrahydrocannabinol concentration in percent.
	THC
	// CBD is cannabidiol concentration in percent.
	CBD
	// Yield is dry flower yield in grams.
	Yield
	// Resilience is a pseudo-trait carried by tolerance alleles. It never
	// receives an expressed value; its resolved magnitude feeds stress
	// resistance and tolerance bonuses.
	Resilience
)

// Expressed lists the traits that receive a computed phenotype value.
var Expressed = []Trait{Height, THC, CBD, Yield}

// Name returns the human-readable trait name.
func (t Trait) Name() string {
	switch t {
	case Height:
		return "Height"
	case THC:
		return "THC"
	case CBD:
		return "CBD"
	case Yield:
		return "Yield"
	case Resilience:
		return "Resilience"
	default:
		return "Unknown"
	}
}

// IsExpressed reports whether the trait receives a phenotype value.
func (t Trait) IsExpressed() bool {
	return t <= Yield
}

// Optimum returns the target value used by fitness closeness scoring.
func (t Trait) Optimum() float64 {
	switch t {
	case Height:
		return 1.8 // meters
	case THC:
		return 20.0 // percent
	case CBD:
		return 8.0 // percent
	case Yield:
		return 600.0 // grams
	default:
		return 0
	}
}
