package telescope

import (
	"errors"
	"math"
	"testing"

	"github.com/psrsim/psrsim/internal/units"
)

func TestNewDerivesCircularArea(t *testing.T) {
	tel := New("dish", units.Meters(100))
	want := math.Pi * 50 * 50
	if got := tel.Area().SquareMeters(); math.Abs(got-want) > 1e-9 {
		t.Errorf("derived area = %g m^2, want %g m^2", got, want)
	}
}

func TestNewExplicitAreaWins(t *testing.T) {
	tel := New("dish", units.Meters(100), WithArea(units.SquareMeters(5500)))
	if got := tel.Area().SquareMeters(); got != 5500 {
		t.Errorf("area = %g m^2, want 5500 m^2", got)
	}
}

func TestGain(t *testing.T) {
	tel := New("dish", units.Meters(100), WithArea(units.SquareMeters(5500)))
	// gain = area / (2·kB), kB = 1.38064852e3 Jy·m²/K
	want := 5500 / (2 * 1.38064852e3)
	if got := tel.Gain().BaseValue(); math.Abs(got-want) > 1e-12 {
		t.Errorf("gain = %g K/Jy, want %g K/Jy", got, want)
	}
	if tel.Gain().Dim() != units.DimGain {
		t.Errorf("gain dimension = %v, want K/Jy", tel.Gain().Dim())
	}
}

func TestAddSystemUpserts(t *testing.T) {
	tel := New("dish", units.Meters(20))
	tel.AddSystem("A", Receiver{Name: "r1"}, Backend{Name: "b1"})
	tel.AddSystem("A", Receiver{Name: "r2"}, Backend{Name: "b2"})

	sys, err := tel.System("A")
	if err != nil {
		t.Fatalf("System(A): %v", err)
	}
	if sys.Receiver.Name != "r2" || sys.Backend.Name != "b2" {
		t.Errorf("system A = (%s, %s), want the replacement (r2, b2)", sys.Receiver.Name, sys.Backend.Name)
	}
}

func TestSystemUnknown(t *testing.T) {
	tel := New("dish", units.Meters(20))
	if _, err := tel.System("nope"); !errors.Is(err, ErrUnknownSystem) {
		t.Fatalf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestNyquistInterval(t *testing.T) {
	bak := Backend{Name: "GUPPI", SampRate: units.Megahertz(12.5)}
	if got, want := bak.NyquistInterval().Seconds(), 4e-8; math.Abs(got-want) > 1e-20 {
		t.Errorf("Nyquist interval = %g s, want %g s", got, want)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		tel     *Telescope
		name    string
		systems []string
	}{
		{GBT(), "GBT", []string{"820_GUPPI", "Lband_GUPPI"}},
		{Arecibo(), "Arecibo", []string{"430_PUPPI", "Lband_PUPPI", "Sband_PUPPI"}},
	}
	for _, tc := range tests {
		if tc.tel.Name() != tc.name {
			t.Errorf("preset name = %s, want %s", tc.tel.Name(), tc.name)
		}
		if tc.tel.Tsys().Kelvin() != 35 {
			t.Errorf("%s Tsys = %g K, want 35 K", tc.name, tc.tel.Tsys().Kelvin())
		}
		for _, name := range tc.systems {
			if _, err := tc.tel.System(name); err != nil {
				t.Errorf("%s: missing system %s: %v", tc.name, name, err)
			}
		}
	}
}
