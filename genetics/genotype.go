package genetics

import "sort"

// AllelePair is the occupancy of one locus: exactly two allele references,
// identical for homozygous loci. A pair with either allele nil does not
// contribute to any calculation.
type AllelePair struct {
	First  *Allele
	Second *Allele
}

// Complete reports whether both alleles are present.
func (p AllelePair) Complete() bool {
	return p.First != nil && p.Second != nil
}

// Homozygous reports whether both alleles are the same variant.
func (p AllelePair) Homozygous() bool {
	return p.Complete() && p.First.ID == p.Second.ID
}

// Genotype is a full genetic makeup: locus ID to allele pair. The engine
// only reads genotypes; assembly belongs to the breeding subsystem (or to
// catalog strain templates for tooling and tests).
type Genotype struct {
	ID    string
	Pairs map[string]AllelePair

	// Inbreeding is the inbreeding coefficient in [0, 1].
	Inbreeding float64

	// Strain is the strain of origin, used only for baseline value lookup.
	// May be nil, in which case trait defaults apply.
	Strain *Strain
}

// LocusCount returns the number of loci in the genotype, complete or not.
func (g *Genotype) LocusCount() int {
	if g == nil {
		return 0
	}
	return len(g.Pairs)
}

// SortedLocusIDs returns the locus IDs in lexical order. Map iteration order
// is randomized; every per-locus walk in the engine goes through this so
// identical inputs always produce identical outputs.
func (g *Genotype) SortedLocusIDs() []string {
	if g == nil || len(g.Pairs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(g.Pairs))
	for id := range g.Pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
