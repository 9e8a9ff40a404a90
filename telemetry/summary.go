package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StrainSummary aggregates one strain's sweep results.
type StrainSummary struct {
	StrainID    string  `csv:"strain"`
	Evaluations int     `csv:"evaluations"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	BestFitness     float64 `csv:"best_fitness"`
	BestTemperature float64 `csv:"best_temp_c"`
	BestLight       float64 `csv:"best_light_ppfd"`
	BestHumidity    float64 `csv:"best_humidity_pct"`
	BestCO2         float64 `csv:"best_co2_ppm"`
	BestYield       float64 `csv:"best_yield_g"`
}

// Summarizer accumulates sweep records and reduces them per strain.
type Summarizer struct {
	fitness map[string][]float64
	best    map[string]ExpressionRecord
}

// NewSummarizer creates an empty summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{
		fitness: make(map[string][]float64),
		best:    make(map[string]ExpressionRecord),
	}
}

// Add records one evaluation.
func (s *Summarizer) Add(rec ExpressionRecord) {
	s.fitness[rec.StrainID] = append(s.fitness[rec.StrainID], rec.Fitness)
	if cur, ok := s.best[rec.StrainID]; !ok || rec.Fitness > cur.Fitness {
		s.best[rec.StrainID] = rec
	}
}

// Summaries reduces the accumulated records, sorted by strain ID.
func (s *Summarizer) Summaries() []StrainSummary {
	ids := make([]string, 0, len(s.fitness))
	for id := range s.fitness {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]StrainSummary, 0, len(ids))
	for _, id := range ids {
		fs := append([]float64(nil), s.fitness[id]...)
		sort.Float64s(fs)
		best := s.best[id]
		out = append(out, StrainSummary{
			StrainID:        id,
			Evaluations:     len(fs),
			FitnessMean:     stat.Mean(fs, nil),
			FitnessP10:      stat.Quantile(0.1, stat.Empirical, fs, nil),
			FitnessP50:      stat.Quantile(0.5, stat.Empirical, fs, nil),
			FitnessP90:      stat.Quantile(0.9, stat.Empirical, fs, nil),
			BestFitness:     best.Fitness,
			BestTemperature: best.Temperature,
			BestLight:       best.Light,
			BestHumidity:    best.Humidity,
			BestCO2:         best.CO2,
			BestYield:       best.Yield,
		})
	}
	return out
}
