package genetics

import (
	"os"
	"path/filepath"
	"testing"

	"cultigen/traits"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := DefaultCatalog()

	if c.GeneCount() == 0 {
		t.Fatal("embedded catalog has no genes")
	}
	if len(c.StrainIDs()) == 0 {
		t.Fatal("embedded catalog has no strains")
	}

	gene := c.Gene("THCAS")
	if gene == nil {
		t.Fatal("THCAS missing from embedded catalog")
	}
	if gene.Category != CategorySynthase {
		t.Errorf("THCAS category: expected synthase, got %s", gene.Category)
	}
	if gene.Dominance != Complete {
		t.Errorf("THCAS dominance: expected complete, got %s", gene.Dominance)
	}

	allele := c.Allele("THCAS-B1")
	if allele == nil {
		t.Fatal("THCAS-B1 missing")
	}
	if allele.GeneID != "THCAS" {
		t.Errorf("THCAS-B1 owner: expected THCAS, got %s", allele.GeneID)
	}
	if !allele.EnvSensitive {
		t.Error("THCAS-B1 should be environment-sensitive")
	}
	if got := allele.EffectOn(traits.THC); got != 0.5 {
		t.Errorf("THCAS-B1 THC effect: expected 0.5, got %v", got)
	}
	if got := allele.EffectOn(traits.Yield); got != 0 {
		t.Errorf("THCAS-B1 yield effect: expected 0 (absent), got %v", got)
	}
}

func TestGenotypeAssembly(t *testing.T) {
	c := DefaultCatalog()

	g, err := c.Genotype("sativa-dream", "plant-1")
	if err != nil {
		t.Fatalf("assembling genotype: %v", err)
	}

	if g.Strain == nil || g.Strain.Morphotype != Sativa {
		t.Fatalf("expected sativa strain, got %+v", g.Strain)
	}
	if g.Inbreeding != 0.1 {
		t.Errorf("inbreeding: expected 0.1, got %v", g.Inbreeding)
	}
	if g.LocusCount() == 0 {
		t.Fatal("genotype has no loci")
	}
	for _, locus := range g.SortedLocusIDs() {
		pair := g.Pairs[locus]
		if !pair.Complete() {
			t.Errorf("locus %s: incomplete pair", locus)
		}
		if pair.First.GeneID != locus {
			t.Errorf("locus %s: allele %s belongs to %s", locus, pair.First.ID, pair.First.GeneID)
		}
	}

	if _, err := c.Genotype("no-such-strain", "x"); err == nil {
		t.Error("expected error for unknown strain")
	}
}

func TestSortedLocusIDsDeterministic(t *testing.T) {
	c := DefaultCatalog()
	g, err := c.Genotype("northern-compact", "plant-2")
	if err != nil {
		t.Fatal(err)
	}

	first := g.SortedLocusIDs()
	for i := 0; i < 10; i++ {
		again := g.SortedLocusIDs()
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("iteration %d: order changed at %d: %s vs %s", i, j, first[j], again[j])
			}
		}
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"bad_dominance": `{"genes":[{"id":"G1","dominance":"dominantish","category":"growth",
			"alleles":[{"id":"A1","effects":{"height":0.2}}]}]}`,
		"effect_out_of_range": `{"genes":[{"id":"G1","dominance":"complete","category":"growth",
			"alleles":[{"id":"A1","effects":{"height":3.0}}]}]}`,
		"missing_alleles": `{"genes":[{"id":"G1","dominance":"complete","category":"growth"}]}`,
		"not_json":        `genes: []`,
	}

	for name, doc := range cases {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadCatalog(path); err == nil {
			t.Errorf("%s: expected validation error, got nil", name)
		}
	}
}

func TestLoadCatalogRejectsDanglingRefs(t *testing.T) {
	dir := t.TempDir()
	doc := `{
		"genes":[{"id":"G1","dominance":"complete","category":"growth",
			"alleles":[{"id":"A1","effects":{"height":0.2}}]}],
		"strains":[{"id":"s1","name":"S1","loci":{"G1":["A1","A-missing"]}}]
	}`
	path := filepath.Join(dir, "dangling.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Error("expected error for dangling allele reference")
	}
}

func TestStrainBaseValues(t *testing.T) {
	cases := []struct {
		name   string
		strain *Strain
		trait  traits.Trait
		want   float64
	}{
		{"nil strain height", nil, traits.Height, DefaultHeight},
		{"nil strain yield", nil, traits.Yield, DefaultYield},
		{"sativa height", &Strain{Morphotype: Sativa}, traits.Height, 2.0},
		{"indica height", &Strain{Morphotype: Indica}, traits.Height, 1.2},
		{"autoflower height", &Strain{Morphotype: Autoflower}, traits.Height, 0.9},
		{"hybrid height", &Strain{}, traits.Height, DefaultHeight},
		{"high-thc thc", &Strain{Chemotype: HighTHC}, traits.THC, 22.0},
		{"high-cbd thc", &Strain{Chemotype: HighCBD}, traits.THC, 8.0},
		{"high-cbd cbd", &Strain{Chemotype: HighCBD}, traits.CBD, 12.0},
		{"high-thc cbd", &Strain{Chemotype: HighTHC}, traits.CBD, 0.5},
		{"high-yield yield", &Strain{HighYield: true}, traits.Yield, 550.0},
		{"autoflower yield", &Strain{Morphotype: Autoflower}, traits.Yield, 300.0},
		{"balanced yield", &Strain{}, traits.Yield, DefaultYield},
	}

	for _, tc := range cases {
		if got := tc.strain.BaseValue(tc.trait); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestAllelePair(t *testing.T) {
	c := DefaultCatalog()
	a := c.Allele("OLS-hi")
	b := c.Allele("OLS-lo")

	if (AllelePair{First: a}).Complete() {
		t.Error("pair with nil second should be incomplete")
	}
	if !(AllelePair{First: a, Second: b}).Complete() {
		t.Error("pair with both alleles should be complete")
	}
	if !(AllelePair{First: a, Second: a}).Homozygous() {
		t.Error("identical alleles should be homozygous")
	}
	if (AllelePair{First: a, Second: b}).Homozygous() {
		t.Error("different alleles should be heterozygous")
	}
}
