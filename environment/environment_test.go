package environment

import "testing"

func TestInitialized(t *testing.T) {
	var zero Snapshot
	if zero.Initialized() {
		t.Error("zero snapshot should be uninitialized")
	}

	cases := []Snapshot{
		{Temperature: 24},
		{Light: 600},
		{Humidity: 55},
		{CO2: 400},
	}
	for _, s := range cases {
		if !s.Initialized() {
			t.Errorf("snapshot %+v should be initialized", s)
		}
	}
}

func TestClamped(t *testing.T) {
	s := Snapshot{
		Temperature: 999,
		Light:       -50,
		Humidity:    150,
		CO2:         -1,
	}
	c := s.Clamped()

	if c.Temperature != MaxTemperature {
		t.Errorf("temperature: expected %v, got %v", MaxTemperature, c.Temperature)
	}
	if c.Light != 0 {
		t.Errorf("light: expected 0, got %v", c.Light)
	}
	if c.Humidity != MaxHumidity {
		t.Errorf("humidity: expected %v, got %v", MaxHumidity, c.Humidity)
	}
	if c.CO2 != 0 {
		t.Errorf("co2: expected 0, got %v", c.CO2)
	}

	// In-range values pass through untouched.
	ok := Snapshot{Temperature: 24, Light: 600, Humidity: 55, CO2: 400}
	if ok.Clamped() != ok {
		t.Errorf("in-range snapshot changed: %+v", ok.Clamped())
	}
}
