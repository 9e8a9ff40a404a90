package expression

import (
	"math"
	"testing"

	"cultigen/genetics"
	"cultigen/traits"
)

func defaultValues() map[traits.Trait]float64 {
	return map[traits.Trait]float64{
		traits.Height: genetics.DefaultHeight,
		traits.THC:    genetics.DefaultTHC,
		traits.CBD:    genetics.DefaultCBD,
		traits.Yield:  genetics.DefaultYield,
	}
}

func TestFitnessBounds(t *testing.T) {
	awful := map[traits.Trait]float64{
		traits.Height: 0, traits.THC: 0, traits.CBD: 0, traits.Yield: 0,
	}
	ideal := map[traits.Trait]float64{
		traits.Height: traits.Height.Optimum(),
		traits.THC:    traits.THC.Optimum(),
		traits.CBD:    traits.CBD.Optimum(),
		traits.Yield:  traits.Yield.Optimum(),
	}
	crushed := &StressResponse{OverallLevel: 1}

	for _, v := range []map[traits.Trait]float64{awful, ideal, defaultValues()} {
		for _, s := range []*StressResponse{nil, crushed} {
			f := computeFitness(v, &genetics.Genotype{}, s)
			if f < 0.1 || f > 1.0 {
				t.Errorf("fitness %v outside [0.1, 1.0]", f)
			}
		}
	}
}

func TestDefaultPhenotypeFitnessBand(t *testing.T) {
	// Trait defaults with no genetics or stress land in the moderate band.
	f := computeFitness(defaultValues(), &genetics.Genotype{}, nil)
	if f < 0.5 || f > 0.8 {
		t.Errorf("default phenotype fitness = %v, want within [0.5, 0.8]", f)
	}
}

func TestStressReducesFitness(t *testing.T) {
	v := defaultValues()
	g := &genetics.Genotype{}

	calm := computeFitness(v, g, nil)
	stressed := computeFitness(v, g, &StressResponse{OverallLevel: 0.7})
	if stressed >= calm {
		t.Errorf("stress should cost fitness: %v >= %v", stressed, calm)
	}
}

func TestOutbreedingBonus(t *testing.T) {
	v := defaultValues()
	pair := genetics.AllelePair{First: &genetics.Allele{ID: "a"}, Second: &genetics.Allele{ID: "b"}}

	outbred := &genetics.Genotype{
		Inbreeding: 0.05,
		Pairs:      map[string]genetics.AllelePair{"locus": pair},
	}
	inbred := &genetics.Genotype{
		Inbreeding: 0.6,
		Pairs:      map[string]genetics.AllelePair{"locus": pair},
	}
	empty := &genetics.Genotype{Inbreeding: 0.05}

	fOut := computeFitness(v, outbred, nil)
	fIn := computeFitness(v, inbred, nil)
	fEmpty := computeFitness(v, empty, nil)

	if fOut <= fIn {
		t.Errorf("outbred stock should be fitter: %v <= %v", fOut, fIn)
	}
	// No loci means no diversity to reward, whatever the coefficient says.
	if fEmpty != fIn {
		t.Errorf("empty genotype got an outbreeding bonus: %v != %v", fEmpty, fIn)
	}
}

func TestBalanceBonusRewardsEvenPhenotypes(t *testing.T) {
	// Same average closeness, different spread: the even phenotype wins.
	even := map[traits.Trait]float64{
		traits.Height: 1.44, // closeness 0.8
		traits.THC:    16,   // closeness 0.8
		traits.CBD:    6.4,  // closeness 0.8
		traits.Yield:  480,  // closeness 0.8
	}
	spiky := map[traits.Trait]float64{
		traits.Height: 1.8, // closeness 1.0
		traits.THC:    20,  // closeness 1.0
		traits.CBD:    8,   // closeness 1.0
		traits.Yield:  120, // closeness 0.2
	}
	g := &genetics.Genotype{}
	if computeFitness(even, g, nil) <= computeFitness(spiky, g, nil) {
		t.Error("balanced phenotype should outscore the spiky one")
	}
}

func TestCloseness(t *testing.T) {
	cases := []struct {
		value, optimum, want float64
	}{
		{1.8, 1.8, 1.0},
		{0.9, 1.8, 0.5},
		{3.6, 1.8, 0},
		{5.0, 1.8, 0},
		{0, 1.8, 0},
	}
	for _, tc := range cases {
		if got := closeness(tc.value, tc.optimum); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("closeness(%v, %v) = %v, want %v", tc.value, tc.optimum, got, tc.want)
		}
	}
}
