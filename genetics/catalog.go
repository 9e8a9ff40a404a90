package genetics

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"cultigen/traits"
)

//go:embed catalog.schema.json
var catalogSchemaJSON string

//go:embed catalog.json
var defaultCatalogJSON []byte

// Catalog is the load-once registry of authored gene, allele and strain
// definitions. All lookups return shared immutable values; callers must not
// modify them. A loaded catalog is safe for concurrent read-only use.
type Catalog struct {
	genes       map[string]*Gene
	alleles     map[string]*Allele
	strains     map[string]*Strain
	templates   map[string]map[string][2]string // strain ID -> locus -> allele IDs
	inbreedings map[string]float64              // strain ID -> authored inbreeding coefficient
	strainIDs   []string
}

// Raw document shapes for JSON decoding. The schema is validated first, so
// decode errors here indicate a bug, not bad input.
type catalogDoc struct {
	Genes   []geneDoc   `json:"genes"`
	Strains []strainDoc `json:"strains"`
}

type geneDoc struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Dominance string      `json:"dominance"`
	Category  string      `json:"category"`
	Alleles   []alleleDoc `json:"alleles"`
}

type alleleDoc struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Effects      map[string]float64 `json:"effects"`
	EnvSensitive bool               `json:"env_sensitive"`
	EnvModifiers map[string]float64 `json:"env_modifiers"`
}

type strainDoc struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Morphotype string               `json:"morphotype"`
	Chemotype  string               `json:"chemotype"`
	HighYield  bool                 `json:"high_yield"`
	Inbreeding float64              `json:"inbreeding"`
	Loci       map[string][2]string `json:"loci"`
}

// LoadCatalog loads and validates a catalog document. An empty path loads
// the embedded default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogJSON
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
	}
	return parseCatalog(data)
}

// DefaultCatalog loads the embedded catalog. It panics only if the embedded
// data itself is broken, which is a build defect.
func DefaultCatalog() *Catalog {
	c, err := parseCatalog(defaultCatalogJSON)
	if err != nil {
		panic(fmt.Sprintf("genetics: embedded catalog invalid: %v", err))
	}
	return c
}

func parseCatalog(data []byte) (*Catalog, error) {
	schema, err := jsonschema.CompileString("catalog.schema.json", catalogSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	var doc catalogDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		genes:       make(map[string]*Gene, len(doc.Genes)),
		alleles:     make(map[string]*Allele),
		strains:     make(map[string]*Strain, len(doc.Strains)),
		templates:   make(map[string]map[string][2]string, len(doc.Strains)),
		inbreedings: make(map[string]float64, len(doc.Strains)),
	}

	for _, gd := range doc.Genes {
		if _, dup := c.genes[gd.ID]; dup {
			return nil, fmt.Errorf("duplicate gene %q", gd.ID)
		}
		gene := &Gene{
			ID:        gd.ID,
			Name:      gd.Name,
			Dominance: parseDominance(gd.Dominance),
			Category:  parseCategory(gd.Category),
		}
		c.genes[gene.ID] = gene

		for _, ad := range gd.Alleles {
			if _, dup := c.alleles[ad.ID]; dup {
				return nil, fmt.Errorf("duplicate allele %q", ad.ID)
			}
			allele := &Allele{
				ID:           ad.ID,
				GeneID:       gene.ID,
				Name:         ad.Name,
				Effects:      parseEffects(ad.Effects),
				EnvSensitive: ad.EnvSensitive,
				EnvModifiers: ad.EnvModifiers,
			}
			c.alleles[allele.ID] = allele
		}
	}

	for _, sd := range doc.Strains {
		if _, dup := c.strains[sd.ID]; dup {
			return nil, fmt.Errorf("duplicate strain %q", sd.ID)
		}
		for locus, pair := range sd.Loci {
			if _, ok := c.genes[locus]; !ok {
				return nil, fmt.Errorf("strain %q references unknown locus %q", sd.ID, locus)
			}
			for _, alleleID := range pair {
				a, ok := c.alleles[alleleID]
				if !ok {
					return nil, fmt.Errorf("strain %q references unknown allele %q", sd.ID, alleleID)
				}
				if a.GeneID != locus {
					return nil, fmt.Errorf("strain %q: allele %q belongs to locus %q, not %q",
						sd.ID, alleleID, a.GeneID, locus)
				}
			}
		}
		c.strains[sd.ID] = &Strain{
			ID:         sd.ID,
			Name:       sd.Name,
			Morphotype: parseMorphotype(sd.Morphotype),
			Chemotype:  parseChemotype(sd.Chemotype),
			HighYield:  sd.HighYield,
		}
		c.templates[sd.ID] = sd.Loci
		c.inbreedings[sd.ID] = sd.Inbreeding
		c.strainIDs = append(c.strainIDs, sd.ID)
	}

	return c, nil
}

// Gene returns a gene definition, nil if absent.
func (c *Catalog) Gene(id string) *Gene { return c.genes[id] }

// Allele returns an allele definition, nil if absent.
func (c *Catalog) Allele(id string) *Allele { return c.alleles[id] }

// Strain returns a strain record, nil if absent.
func (c *Catalog) Strain(id string) *Strain { return c.strains[id] }

// StrainIDs returns strain IDs in document order.
func (c *Catalog) StrainIDs() []string { return c.strainIDs }

// GeneCount returns the number of genes in the catalog.
func (c *Catalog) GeneCount() int { return len(c.genes) }

// Genotype assembles a genotype from a strain's authored locus template.
// Tools and tests use this; callers with bred stock build genotypes
// directly.
func (c *Catalog) Genotype(strainID, genotypeID string) (*Genotype, error) {
	strain, ok := c.strains[strainID]
	if !ok {
		return nil, fmt.Errorf("unknown strain %q", strainID)
	}
	template := c.templates[strainID]

	pairs := make(map[string]AllelePair, len(template))
	for locus, alleleIDs := range template {
		pairs[locus] = AllelePair{
			First:  c.alleles[alleleIDs[0]],
			Second: c.alleles[alleleIDs[1]],
		}
	}

	return &Genotype{
		ID:         genotypeID,
		Pairs:      pairs,
		Inbreeding: c.inbreedings[strainID],
		Strain:     strain,
	}, nil
}

func parseDominance(s string) DominancePattern {
	switch s {
	case "incomplete":
		return Incomplete
	case "codominant":
		return Codominant
	case "overdominant":
		return Overdominant
	case "underdominant":
		return Underdominant
	default:
		return Complete
	}
}

func parseCategory(s string) GeneCategory {
	switch s {
	case "precursor":
		return CategoryPrecursor
	case "synthase":
		return CategorySynthase
	case "regulatory":
		return CategoryRegulatory
	case "growth":
		return CategoryGrowth
	case "structural":
		return CategoryStructural
	case "photosynthesis":
		return CategoryPhotosynthesis
	case "metabolic":
		return CategoryMetabolic
	case "flowering":
		return CategoryFlowering
	case "tolerance":
		return CategoryTolerance
	default:
		return CategoryGeneral
	}
}

func parseMorphotype(s string) Morphotype {
	switch s {
	case "indica":
		return Indica
	case "sativa":
		return Sativa
	case "autoflower":
		return Autoflower
	default:
		return Hybrid
	}
}

func parseChemotype(s string) Chemotype {
	switch s {
	case "high_thc":
		return HighTHC
	case "high_cbd":
		return HighCBD
	default:
		return Balanced
	}
}

func parseEffects(m map[string]float64) []TraitEffect {
	order := []struct {
		key string
		t   traits.Trait
	}{
		{"height", traits.Height},
		{"thc", traits.THC},
		{"cbd", traits.CBD},
		{"yield", traits.Yield},
		{"resilience", traits.Resilience},
	}
	effects := make([]TraitEffect, 0, len(m))
	for _, o := range order {
		if mag, ok := m[o.key]; ok {
			effects = append(effects, TraitEffect{Trait: o.t, Magnitude: mag})
		}
	}
	return effects
}
