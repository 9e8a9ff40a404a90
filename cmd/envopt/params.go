package main

import "cultigen/environment"

// ParamSpec describes one optimizable environment dimension.
type ParamSpec struct {
	Name string
	Min  float64
	Max  float64
	Init float64
}

// ParamVector maps between the optimizer's normalized [0,1] space and
// environment snapshots.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector defines the search space: the controllable grow-room
// dimensions with practical bounds.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{Name: "temp_c", Min: 15, Max: 35, Init: 24},
		{Name: "light_ppfd", Min: 100, Max: 1500, Init: 600},
		{Name: "humidity_pct", Min: 20, Max: 80, Init: 55},
		{Name: "co2_ppm", Min: 300, Max: 1600, Init: 800},
	}}
}

// Dim returns the search space dimensionality.
func (p *ParamVector) Dim() int { return len(p.Specs) }

// InitNormalized returns the starting point in normalized space.
func (p *ParamVector) InitNormalized() []float64 {
	x := make([]float64, len(p.Specs))
	for i, s := range p.Specs {
		x[i] = (s.Init - s.Min) / (s.Max - s.Min)
	}
	return x
}

// Denormalize maps a normalized vector to raw values, clamping to bounds.
// CMA-ES proposals can wander outside [0,1]; clamping keeps the evaluation
// physical without rejecting the sample.
func (p *ParamVector) Denormalize(x []float64) []float64 {
	raw := make([]float64, len(p.Specs))
	for i, s := range p.Specs {
		v := s.Min + x[i]*(s.Max-s.Min)
		if v < s.Min {
			v = s.Min
		}
		if v > s.Max {
			v = s.Max
		}
		raw[i] = v
	}
	return raw
}

// Snapshot builds the environment from raw parameter values.
func (p *ParamVector) Snapshot(raw []float64) environment.Snapshot {
	return environment.Snapshot{
		Temperature: raw[0],
		Light:       raw[1],
		Humidity:    raw[2],
		CO2:         raw[3],
	}
}
