package units

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"MHz to Hz", Megahertz(12.5).Hertz(), 12.5e6},
		{"ms to s", Milliseconds(1500).Seconds(), 1.5},
		{"s to ms", Seconds(0.002).Milliseconds(), 2},
		{"us to s", Microseconds(40).Seconds(), 40e-6},
		{"kHz to MHz", Kilohertz(800).Megahertz(), 0.8},
	}
	for _, tc := range tests {
		if math.Abs(tc.got-tc.want) > 1e-12*math.Abs(tc.want) {
			t.Errorf("%s: got %g, want %g", tc.name, tc.got, tc.want)
		}
	}
}

func TestNyquistInterval(t *testing.T) {
	// dt = 1/(2·12.5 MHz) = 40 ns
	samprate := Megahertz(12.5)
	dt := samprate.Scale(2).Inv()
	if dt.Dim() != DimTime {
		t.Fatalf("1/frequency should have time dimension, got %v", dt.Dim())
	}
	if got, want := dt.Seconds(), 4e-8; math.Abs(got-want) > 1e-20 {
		t.Errorf("Nyquist interval = %g s, want %g s", got, want)
	}
}

func TestGainDimension(t *testing.T) {
	// gain = area / (2 kB) must come out in K/Jy
	area := SquareMeters(5500)
	gain := area.Div(RadioBoltzmann.Scale(2))
	if gain.Dim() != DimGain {
		t.Fatalf("gain dimension = %v, want K/Jy", gain.Dim())
	}
	want := 5500 / (2 * 1.38064852e3)
	if got := gain.BaseValue(); math.Abs(got-want) > 1e-12 {
		t.Errorf("gain = %g, want %g", got, want)
	}
}

func TestRadiometerDenominatorIsDimensionless(t *testing.T) {
	// bandwidth · dt must reduce to a plain number
	bw := Megahertz(800)
	dt := Milliseconds(0.5)
	prod := bw.Mul(dt)
	if prod.Dim() != Dimensionless {
		t.Fatalf("bandwidth·dt dimension = %v, want dimensionless", prod.Dim())
	}
	if got, want := prod.Float(), 800e6*0.5e-3; math.Abs(got-want) > 1e-6 {
		t.Errorf("bandwidth·dt = %g, want %g", got, want)
	}
}

func TestMismatchedDimensionsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("adding seconds to kelvin should panic")
		}
	}()
	_ = Seconds(1).Add(Kelvin(1))
}

func TestRatio(t *testing.T) {
	if got := Milliseconds(2).Ratio(Microseconds(500)); got != 4 {
		t.Errorf("2ms / 500us = %g, want 4", got)
	}
}
