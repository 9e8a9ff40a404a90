package expression

import (
	"math"

	"cultigen/environment"
	"cultigen/genetics"
	"cultigen/traits"
)

// Per-trait environmental response parameters. Height favors moderate light
// and temperature with a small CO2 bonus above ambient; cannabinoids favor
// cooler, drier conditions; yield wants the most light and warmth and
// responds most strongly to CO2 enrichment.
type envResponse struct {
	optLight    float64
	optTemp     float64
	optHumidity float64
	co2Weight   float64 // weight of the CO2 score inside the blend
	lightWeight float64
	tempWeight  float64
	humWeight   float64
	influence   float64 // how strongly the environment moves the trait
	clampLo     float64
	clampHi     float64
}

var envResponses = map[traits.Trait]envResponse{
	traits.Height: {
		optLight: 600, optTemp: 24, optHumidity: 60,
		lightWeight: 0.45, tempWeight: 0.35, humWeight: 0.20,
		influence: 0.8, clampLo: 0.6, clampHi: 1.4,
	},
	traits.THC: {
		optLight: 700, optTemp: 22, optHumidity: 50,
		lightWeight: 0.40, tempWeight: 0.35, humWeight: 0.25,
		influence: 0.6, clampLo: 0.7, clampHi: 1.3,
	},
	traits.CBD: {
		optLight: 700, optTemp: 22, optHumidity: 55,
		lightWeight: 0.40, tempWeight: 0.35, humWeight: 0.25,
		influence: 0.6, clampLo: 0.7, clampHi: 1.3,
	},
	traits.Yield: {
		optLight: 800, optTemp: 26, optHumidity: 55,
		lightWeight: 0.40, tempWeight: 0.25, humWeight: 0.15, co2Weight: 0.20,
		influence: 1.0, clampLo: 0.5, clampHi: 1.6,
	},
}

// environmentalModifier computes the multiplicative environmental modifier
// for a trait. Uninitialized snapshots are neutral.
func environmentalModifier(t traits.Trait, env environment.Snapshot) float64 {
	if !env.Initialized() {
		return 1.0
	}
	r, ok := envResponses[t]
	if !ok {
		return 1.0
	}

	s := r.lightWeight*lightScore(env.Light, r.optLight) +
		r.tempWeight*tempScore(env.Temperature, r.optTemp) +
		r.humWeight*humidityScore(env.Humidity, r.optHumidity)
	if r.co2Weight > 0 {
		s += r.co2Weight * co2Score(env.CO2)
	}

	// Blend toward neutral by influence strength. s is centered so that a
	// fully optimal environment sits at factor 1.5 and a hostile one at 0.5.
	modifier := 1.0 + r.influence*(s-0.5)

	// Height gets a direct CO2 enrichment bonus above ambient.
	if t == traits.Height && env.CO2 > 400 {
		modifier += math.Min(0.1, (env.CO2-400)/4000)
	}

	// Mild thermal stress concentrates cannabinoids.
	if t == traits.THC || t == traits.CBD {
		dev := math.Abs(env.Temperature - 22)
		if dev >= 2 && dev <= 8 {
			modifier *= 1.05
		}
	}

	return clamp(modifier, r.clampLo, r.clampHi)
}

// lightScore rises linearly to 1.0 at the optimum, then falls off at half
// slope; light past the optimum wastes photons before it burns.
func lightScore(light, opt float64) float64 {
	if light <= 0 {
		return 0
	}
	if light <= opt {
		return light / opt
	}
	return math.Max(0, 1-(light-opt)/(2*opt))
}

func tempScore(temp, opt float64) float64 {
	return math.Max(0, 1-math.Abs(temp-opt)/15)
}

func humidityScore(hum, opt float64) float64 {
	return math.Max(0, 1-math.Abs(hum-opt)/50)
}

// co2Score is 0 at or below 200 ppm and saturates at 1200 ppm.
func co2Score(co2 float64) float64 {
	return clamp01((co2 - 200) / 1000)
}

// envQuality is a general goodness score of the snapshot in [0, 1], used by
// the QTL environmental-interaction factor.
func envQuality(env environment.Snapshot) float64 {
	if !env.Initialized() {
		return 0.5
	}
	return (lightScore(env.Light, 600) +
		tempScore(env.Temperature, 24) +
		humidityScore(env.Humidity, 55) +
		co2Score(env.CO2)) / 4
}

// Condition band thresholds for allele environmental modulation.
const (
	heatBandTemp     = 28.0
	coldBandTemp     = 18.0
	lowLightBand     = 300.0
	highLightBand    = 900.0
	droughtBand      = 35.0
	humidBand        = 70.0
)

// activeBands returns the condition bands the snapshot currently falls into,
// matching the keys of an allele's environmental-modifier table.
func activeBands(env environment.Snapshot) []string {
	var bands []string
	if env.Temperature > heatBandTemp {
		bands = append(bands, "heat")
	}
	if env.Temperature != 0 && env.Temperature < coldBandTemp {
		bands = append(bands, "cold")
	}
	if env.Light != 0 && env.Light < lowLightBand {
		bands = append(bands, "low_light")
	}
	if env.Light > highLightBand {
		bands = append(bands, "high_light")
	}
	if env.Humidity != 0 && env.Humidity < droughtBand {
		bands = append(bands, "drought")
	}
	if env.Humidity > humidBand {
		bands = append(bands, "humid")
	}
	return bands
}

// alleleEnvModulation scales an environment-sensitive allele's effect by its
// authored per-band modifiers for every band the snapshot is in.
func alleleEnvModulation(a *genetics.Allele, bands []string) float64 {
	if len(a.EnvModifiers) == 0 {
		return 1.0
	}
	m := 1.0
	for _, band := range bands {
		if f, ok := a.EnvModifiers[band]; ok {
			m *= f
		}
	}
	return m
}
