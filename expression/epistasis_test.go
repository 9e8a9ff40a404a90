package expression

import (
	"testing"

	"cultigen/genetics"
	"cultigen/traits"
)

func contrib(id string, cat genetics.GeneCategory, resolved float64) locusContribution {
	return locusContribution{
		LocusID:  id,
		Category: cat,
		Pattern:  genetics.Complete,
		E1:       resolved,
		E2:       resolved,
		Resolved: resolved,
	}
}

func TestEpistasisBounds(t *testing.T) {
	// Stack the strongest conceivable synergies and the harshest penalties;
	// the modifier must stay inside [0.6, 1.8].
	synergy := []locusContribution{
		contrib("p1", genetics.CategoryPrecursor, 0.9),
		contrib("p2", genetics.CategoryPrecursor, 0.9),
		contrib("s1", genetics.CategorySynthase, 0.9),
		contrib("r1", genetics.CategoryRegulatory, 0.9),
	}
	penalty := []locusContribution{
		contrib("s1", genetics.CategorySynthase, 0.9),
		contrib("r1", genetics.CategoryRegulatory, -0.9),
		contrib("x1", genetics.CategoryGeneral, 0.9),
		contrib("x2", genetics.CategoryGeneral, 0.9),
		contrib("x3", genetics.CategoryGeneral, 0.9),
		contrib("x4", genetics.CategoryGeneral, 0.9),
		contrib("x5", genetics.CategoryGeneral, 0.9),
		contrib("x6", genetics.CategoryGeneral, 0.9),
	}

	for _, tr := range traits.Expressed {
		for _, contribs := range [][]locusContribution{synergy, penalty} {
			m := epistasisModifier(tr, contribs)
			if m < epistasisFloor || m > epistasisCeil {
				t.Errorf("%s: modifier %v outside [%v, %v]", tr.Name(), m, epistasisFloor, epistasisCeil)
			}
		}
	}
}

func TestCannabinoidPathwaySynergy(t *testing.T) {
	balanced := []locusContribution{
		contrib("prec", genetics.CategoryPrecursor, 0.4),
		contrib("syn", genetics.CategorySynthase, 0.4),
	}
	limited := []locusContribution{
		contrib("prec", genetics.CategoryPrecursor, 0.05),
		contrib("syn", genetics.CategorySynthase, 0.4),
	}

	if got := cannabinoidPathwayTerm(balanced); got <= 1.0 {
		t.Errorf("precursor+synthase synergy should exceed 1.0, got %v", got)
	}
	if got := cannabinoidPathwayTerm(limited); got >= 1.0 {
		t.Errorf("substrate-limited chain should be penalized, got %v", got)
	}
}

func TestCannabinoidRegulatoryScaling(t *testing.T) {
	up := []locusContribution{
		contrib("syn", genetics.CategorySynthase, 0.2),
		contrib("reg", genetics.CategoryRegulatory, 0.4),
	}
	down := []locusContribution{
		contrib("syn", genetics.CategorySynthase, 0.2),
		contrib("reg", genetics.CategoryRegulatory, -0.4),
	}
	if cannabinoidPathwayTerm(up) <= cannabinoidPathwayTerm(down) {
		t.Error("upregulation should beat downregulation")
	}
}

func TestHeightPathway(t *testing.T) {
	synergy := []locusContribution{
		contrib("g", genetics.CategoryGrowth, 0.3),
		contrib("s", genetics.CategoryStructural, 0.3),
	}
	if got := heightPathwayTerm(synergy); got <= 1.0 {
		t.Errorf("growth+structural synergy should exceed 1.0, got %v", got)
	}

	// Six height loci trip diminishing returns.
	crowded := make([]locusContribution, 6)
	for i := range crowded {
		crowded[i] = contrib(string(rune('a'+i)), genetics.CategoryGeneral, 0.2)
	}
	if got := heightPathwayTerm(crowded); got >= 1.0 {
		t.Errorf("more than four height loci should be penalized, got %v", got)
	}
}

func TestYieldPathway(t *testing.T) {
	synergy := []locusContribution{
		contrib("ph", genetics.CategoryPhotosynthesis, 0.4),
		contrib("me", genetics.CategoryMetabolic, 0.4),
	}
	if got := yieldPathwayTerm(synergy); got <= 1.0 {
		t.Errorf("photosynthesis x metabolism synergy should exceed 1.0, got %v", got)
	}

	over := []locusContribution{
		contrib("g", genetics.CategoryGrowth, 0.8),
		contrib("f", genetics.CategoryFlowering, 0.8),
	}
	inBand := []locusContribution{
		contrib("g", genetics.CategoryGrowth, 0.3),
		contrib("f", genetics.CategoryFlowering, 0.3),
	}
	if yieldPathwayTerm(over) >= yieldPathwayTerm(inBand) {
		t.Error("over-interaction should score below the optimal band")
	}
}

func TestGeneralTermFavorsOptimalVariance(t *testing.T) {
	// Variance exactly 0.3 is ideal; identical effects (variance 0) are not.
	near := []locusContribution{
		contrib("a", genetics.CategoryGeneral, 0.0),
		contrib("b", genetics.CategoryGeneral, 0.77),
	}
	flat := []locusContribution{
		contrib("a", genetics.CategoryGeneral, 0.3),
		contrib("b", genetics.CategoryGeneral, 0.3),
	}
	if generalInteractionTerm(near) <= generalInteractionTerm(flat) {
		t.Error("near-optimal variance should outscore zero variance")
	}
}
