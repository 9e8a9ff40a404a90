// Package environment provides the grow-environment snapshot consumed by the
// expression engine.
package environment

// Physical bounds for reading clamps.
const (
	MinTemperature = -20.0
	MaxTemperature = 60.0
	MaxLight       = 2500.0
	MaxHumidity    = 100.0
	MaxCO2         = 5000.0
)

// Snapshot is a plain value record of current grow conditions. The zero value
// is "uninitialized": the engine treats it as neutral (all environmental
// modifiers 1.0, no stress analysis).
type Snapshot struct {
	Temperature float64 // degrees Celsius
	Light       float64 // PPFD, umol/m2/s
	Humidity    float64 // relative humidity percent
	CO2         float64 // ppm
}

// Initialized reports whether any reading has been set. A snapshot with every
// field at its zero sentinel carries no information and is ignored.
func (s Snapshot) Initialized() bool {
	return s.Temperature != 0 || s.Light != 0 || s.Humidity != 0 || s.CO2 != 0
}

// Clamped returns a copy with every reading forced into physical bounds.
// Out-of-range inputs are clamped, never rejected.
func (s Snapshot) Clamped() Snapshot {
	return Snapshot{
		Temperature: clamp(s.Temperature, MinTemperature, MaxTemperature),
		Light:       clamp(s.Light, 0, MaxLight),
		Humidity:    clamp(s.Humidity, 0, MaxHumidity),
		CO2:         clamp(s.CO2, 0, MaxCO2),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
