// Package expression implements the trait-expression engine: it computes a
// plant's observable phenotype (height, THC, CBD, yield), overall fitness
// and stress profile from its genotype and current grow environment.
//
// The engine is a pure function of its inputs. It holds only immutable
// configuration and a read-only catalog reference, so a single engine may be
// shared across goroutines computing different plants concurrently.
package expression

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cultigen/environment"
	"cultigen/genetics"
	"cultigen/traits"
)

// envJitter is the amplitude of the seeded per-allele expression noise for
// environment-sensitive alleles.
const envJitter = 0.02

// Config holds the engine's immutable calculation flags.
type Config struct {
	// Epistasis enables multi-locus interaction and QTL aggregation.
	Epistasis bool
	// Pleiotropy enables cross-trait trade-off adjustment.
	Pleiotropy bool
	// Seed drives the deterministic expression jitter of environment-
	// sensitive alleles. Identical inputs and seed give identical results.
	Seed int64
}

// Engine computes trait expression results. Construct with New; the zero
// value works but resolves every locus through the orphan fallback.
type Engine struct {
	catalog *genetics.Catalog
	cfg     Config
}

// New creates an engine over a loaded catalog. The catalog supplies gene
// definitions (dominance patterns, pathway categories); it is only ever
// read.
func New(catalog *genetics.Catalog, cfg Config) *Engine {
	return &Engine{catalog: catalog, cfg: cfg}
}

// validLocus is a pre-validated locus: complete allele pair, gene resolved
// (nil gene means orphan alleles, handled by the additive fallback).
type validLocus struct {
	ID   string
	Pair genetics.AllelePair
	Gene *genetics.Gene
}

// Compute derives the phenotype for one genotype under one environment
// snapshot. It never panics and never returns nil: internal faults degrade
// to a fallback result carrying trait defaults and fitness 0.5.
func (e *Engine) Compute(g *genetics.Genotype, env environment.Snapshot) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			warnf("expression: computation failed: %v", r)
			res = e.fallbackResult(g, fmt.Sprintf("calculation failed (%v); defaults applied", r))
		}
	}()

	if g == nil {
		warnf("expression: nil genotype; defaults apply")
		g = &genetics.Genotype{ID: "unknown"}
	}
	if env.Initialized() {
		env = env.Clamped()
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	bands := activeBands(env)
	loci := e.validateLoci(g)

	values := make(map[traits.Trait]float64, len(traits.Expressed))
	bases := make(map[traits.Trait]float64, len(traits.Expressed))
	lociPerTrait := make(map[traits.Trait]int, len(traits.Expressed))
	qtlProfiles := make(map[traits.Trait]*QTLProfile)
	epistasisRan := false

	for _, t := range traits.Expressed {
		base := g.Strain.BaseValue(t)
		bases[t] = base

		contribs := e.collectContributions(t, loci, env, bands, rng)
		lociPerTrait[t] = len(contribs)

		genetic := 1.0
		if len(contribs) > 0 {
			var total float64
			for _, c := range contribs {
				total += c.Resolved
			}
			genetic = 1 + (total/float64(len(contribs)))*geneticWeight(t)
		}

		if e.cfg.Epistasis && len(contribs) >= 2 {
			genetic *= epistasisModifier(t, contribs)
			profile := aggregateQTL(t, contribs, env)
			genetic *= profile.Modifier
			qtlProfiles[t] = profile
			epistasisRan = true
		}

		values[t] = base * genetic * environmentalModifier(t, env)
	}

	if e.cfg.Pleiotropy {
		applyPleiotropy(values, bases, lociPerTrait)
	}

	var stress *StressResponse
	if env.Initialized() {
		stress = analyzeStress(env, g, e.resilience(loci))
		for _, t := range traits.Expressed {
			v := values[t] * (1 + stress.traitStressDelta(t))
			if v < 0 {
				v = 0
			}
			values[t] = v
		}
	}

	for _, t := range traits.Expressed {
		values[t] = clampTrait(t, values[t], bases[t])
	}

	return &Result{
		GenotypeID:           g.ID,
		Height:               values[traits.Height],
		THC:                  values[traits.THC],
		CBD:                  values[traits.CBD],
		Yield:                values[traits.Yield],
		Fitness:              computeFitness(values, g, stress),
		Stress:               stress,
		QTL:                  qtlProfiles,
		CalculatedAt:         time.Now(),
		EpistasisApplied:     epistasisRan,
		PleiotropyApplied:    e.cfg.Pleiotropy,
		TraitLoci:            lociPerTrait,
		EnvironmentalSummary: summarize(env, stress),
	}
}

// validateLoci walks the genotype once, dropping incomplete pairs with a
// warning and resolving each locus's gene definition.
func (e *Engine) validateLoci(g *genetics.Genotype) []validLocus {
	ids := g.SortedLocusIDs()
	loci := make([]validLocus, 0, len(ids))
	for _, id := range ids {
		pair := g.Pairs[id]
		if !pair.Complete() {
			warnf("expression: genotype %s locus %s has a missing allele; skipped", g.ID, id)
			continue
		}
		var gene *genetics.Gene
		if e.catalog != nil {
			gene = e.catalog.Gene(id)
		}
		if gene == nil {
			warnf("expression: locus %s not in catalog; additive fallback", id)
		}
		loci = append(loci, validLocus{ID: id, Pair: pair, Gene: gene})
	}
	return loci
}

// collectContributions computes the per-locus contributions for one trait.
// Loci where both alleles express zero effect are skipped.
func (e *Engine) collectContributions(t traits.Trait, loci []validLocus, env environment.Snapshot, bands []string, rng *rand.Rand) []locusContribution {
	contribs := make([]locusContribution, 0, len(loci))
	for _, l := range loci {
		e1 := alleleEffect(l.Pair.First, t, env, bands, rng)
		e2 := alleleEffect(l.Pair.Second, t, env, bands, rng)
		if e1 == 0 && e2 == 0 {
			continue
		}

		var resolved float64
		pattern := genetics.Complete
		category := genetics.CategoryGeneral
		if l.Gene != nil {
			pattern = l.Gene.Dominance
			category = l.Gene.Category
			resolved = resolveLocus(e1, e2, pattern)
		} else {
			resolved = resolveOrphan(e1, e2)
			pattern = genetics.Incomplete
		}

		contribs = append(contribs, locusContribution{
			LocusID:      l.ID,
			Category:     category,
			Pattern:      pattern,
			E1:           e1,
			E2:           e2,
			Resolved:     resolved,
			EnvSensitive: l.Pair.First.EnvSensitive || l.Pair.Second.EnvSensitive,
		})
	}
	return contribs
}

// alleleEffect looks up an allele's effect on a trait and, for environment-
// sensitive alleles under an initialized environment, applies the authored
// condition-band modulation plus a small seeded expression jitter.
func alleleEffect(a *genetics.Allele, t traits.Trait, env environment.Snapshot, bands []string, rng *rand.Rand) float64 {
	eff := a.EffectOn(t)
	if eff == 0 {
		return 0
	}
	if a.EnvSensitive && env.Initialized() {
		eff *= alleleEnvModulation(a, bands)
		eff *= 1 + envJitter*(rng.Float64()*2-1)
	}
	return eff
}

// resilience resolves the genotype's tolerance-gene magnitude: the mean
// dominance-resolved Resilience effect over loci carrying one.
func (e *Engine) resilience(loci []validLocus) float64 {
	var sum float64
	var n int
	for _, l := range loci {
		e1 := l.Pair.First.EffectOn(traits.Resilience)
		e2 := l.Pair.Second.EffectOn(traits.Resilience)
		if e1 == 0 && e2 == 0 {
			continue
		}
		if l.Gene != nil {
			sum += resolveLocus(e1, e2, l.Gene.Dominance)
		} else {
			sum += resolveOrphan(e1, e2)
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), 0, 1)
}

// geneticWeight is the trait-specific scaling of the average locus effect
// into the genetic modifier.
func geneticWeight(t traits.Trait) float64 {
	switch t {
	case traits.Height:
		return 0.5
	case traits.THC, traits.CBD:
		return 0.6
	case traits.Yield:
		return 0.7
	default:
		return 0
	}
}

// clampTrait enforces the documented expression bounds: height and yield
// relative to the strain baseline, cannabinoids in absolute percent.
func clampTrait(t traits.Trait, v, base float64) float64 {
	switch t {
	case traits.Height:
		return clamp(v, 0.3*base, 2.5*base)
	case traits.Yield:
		return clamp(v, 0.2*base, 3.0*base)
	case traits.THC:
		return clamp(v, 0, 35)
	case traits.CBD:
		return clamp(v, 0, 25)
	default:
		return v
	}
}

// summarize renders the free-text environmental summary.
func summarize(env environment.Snapshot, stress *StressResponse) string {
	if !env.Initialized() {
		return "environment uninitialized; neutral modifiers applied"
	}
	head := fmt.Sprintf("%.1f°C, %.0f PPFD, %.0f%% RH, %.0f ppm CO2",
		env.Temperature, env.Light, env.Humidity, env.CO2)
	if stress == nil || len(stress.ActiveStresses) == 0 {
		return head + "; no active stress"
	}
	names := make([]string, len(stress.ActiveStresses))
	for i, f := range stress.ActiveStresses {
		names[i] = f.Type.String()
	}
	return fmt.Sprintf("%s; %d active stress factor(s): %s; overall %.2f (%s)",
		head, len(names), strings.Join(names, ", "), stress.OverallLevel, stress.Category)
}

// fallbackResult is the safe result returned when the calculation itself
// faults: documented trait defaults, fitness 0.5, reason in the summary.
func (e *Engine) fallbackResult(g *genetics.Genotype, summary string) *Result {
	id := "unknown"
	if g != nil {
		id = g.ID
	}
	lociPerTrait := make(map[traits.Trait]int, len(traits.Expressed))
	for _, t := range traits.Expressed {
		lociPerTrait[t] = 0
	}
	return &Result{
		GenotypeID:           id,
		Height:               genetics.DefaultHeight,
		THC:                  genetics.DefaultTHC,
		CBD:                  genetics.DefaultCBD,
		Yield:                genetics.DefaultYield,
		Fitness:              0.5,
		CalculatedAt:         time.Now(),
		TraitLoci:            lociPerTrait,
		EnvironmentalSummary: summary,
	}
}
