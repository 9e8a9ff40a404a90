// Package telemetry provides structured result output for the expression
// tools: per-evaluation CSV rows and per-strain sweep summaries.
package telemetry

import (
	"cultigen/environment"
	"cultigen/expression"
)

// ExpressionRecord is one sweep evaluation as a CSV row.
type ExpressionRecord struct {
	StrainID   string `csv:"strain"`
	GenotypeID string `csv:"genotype"`

	Temperature float64 `csv:"temp_c"`
	Light       float64 `csv:"light_ppfd"`
	Humidity    float64 `csv:"humidity_pct"`
	CO2         float64 `csv:"co2_ppm"`

	Height  float64 `csv:"height_m"`
	THC     float64 `csv:"thc_pct"`
	CBD     float64 `csv:"cbd_pct"`
	Yield   float64 `csv:"yield_g"`
	Fitness float64 `csv:"fitness"`

	StressLevel    float64 `csv:"stress_level"`
	StressCategory string  `csv:"stress_category"`
	ActiveStresses int     `csv:"active_stresses"`

	EpistasisApplied bool `csv:"epistasis"`
	Degraded         bool `csv:"degraded"`
}

// NewRecord flattens one expression result into a CSV row.
func NewRecord(strainID string, env environment.Snapshot, res *expression.Result) ExpressionRecord {
	rec := ExpressionRecord{
		StrainID:         strainID,
		GenotypeID:       res.GenotypeID,
		Temperature:      env.Temperature,
		Light:            env.Light,
		Humidity:         env.Humidity,
		CO2:              env.CO2,
		Height:           res.Height,
		THC:              res.THC,
		CBD:              res.CBD,
		Yield:            res.Yield,
		Fitness:          res.Fitness,
		StressCategory:   expression.Optimal.String(),
		EpistasisApplied: res.EpistasisApplied,
		Degraded:         res.Degraded(),
	}
	if res.Stress != nil {
		rec.StressLevel = res.Stress.OverallLevel
		rec.StressCategory = res.Stress.Category.String()
		rec.ActiveStresses = len(res.Stress.ActiveStresses)
	}
	return rec
}
