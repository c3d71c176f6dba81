package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	data := gen.Generate(config)

	if len(data) != 100 {
		t.Errorf("expected 100 bars, got %d", len(data))
	}

	for i, bar := range data {
		if bar.High < bar.Low {
			t.Errorf("bar %d: high %f below low %f", i, bar.High, bar.Low)
		}

		if bar.Open > bar.High || bar.Open < bar.Low {
			t.Errorf("bar %d: open %f outside [%f, %f]", i, bar.Open, bar.Low, bar.High)
		}

		if bar.Close > bar.High || bar.Close < bar.Low {
			t.Errorf("bar %d: close %f outside [%f, %f]", i, bar.Close, bar.Low, bar.High)
		}

		if bar.Volume < 0 {
			t.Errorf("bar %d: negative volume %f", i, bar.Volume)
		}

		if i > 0 && !data[i-1].Time.Before(bar.Time) {
			t.Errorf("bar %d: timestamps not strictly ascending", i)
		}
	}
}

func TestDataGenerator_Reproducible(t *testing.T) {
	config := DefaultConfig()
	config.Count = 50

	a := NewDataGenerator(7).Generate(config)
	b := NewDataGenerator(7).Generate(config)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bar %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateSeries(t *testing.T) {
	data := GenerateSeries(25)

	if len(data) != 25 {
		t.Fatalf("expected 25 bars, got %d", len(data))
	}

	expectedStart := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	if !data[0].Time.Equal(expectedStart) {
		t.Fatalf("expected first bar at %s, got %s", expectedStart, data[0].Time)
	}
}
