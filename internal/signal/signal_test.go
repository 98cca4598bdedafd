package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/psrsim/psrsim/internal/units"
)

func TestRepresentationTable(t *testing.T) {
	f32, err := RepresentationFor(Float32)
	if err != nil {
		t.Fatalf("RepresentationFor(Float32): %v", err)
	}
	if f32.DrawMax != 200 || f32.DrawNorm != 1 {
		t.Errorf("float32 representation = %+v, want {200 1}", f32)
	}

	i8, err := RepresentationFor(Int8)
	if err != nil {
		t.Fatalf("RepresentationFor(Int8): %v", err)
	}
	if i8.DrawMax != 127 {
		t.Errorf("int8 draw max = %g, want 127", i8.DrawMax)
	}
	// Φ⁻¹(0.999) ≈ 3.0902; the norm maps that quantile onto 127.
	if got, want := i8.DrawNorm, 127/3.090232306167813; math.Abs(got-want) > 1e-9 {
		t.Errorf("int8 draw norm = %v, want %v", got, want)
	}
}

func TestRepresentationForUnknown(t *testing.T) {
	_, err := RepresentationFor(DType(42))
	if !errors.Is(err, ErrUnsupportedRepresentation) {
		t.Fatalf("expected ErrUnsupportedRepresentation, got %v", err)
	}
}

func TestDescriptorRows(t *testing.T) {
	v := Descriptor{Kind: Voltage, Npols: 2, Nf: 64}
	if v.Rows() != 2 {
		t.Errorf("voltage rows = %d, want Npols=2", v.Rows())
	}
	fb := Descriptor{Kind: Intensity, Npols: 2, Nf: 64}
	if fb.Rows() != 64 {
		t.Errorf("intensity rows = %d, want Nf=64", fb.Rows())
	}
}

func TestDescriptorSampleInterval(t *testing.T) {
	d := Descriptor{Kind: Intensity, Nf: 1, Nt: 1000, ObsTime: units.Milliseconds(100)}
	if got, want := d.SampleInterval().Milliseconds(), 0.1; math.Abs(got-want) > 1e-12 {
		t.Errorf("sample interval = %g ms, want %g ms", got, want)
	}
}

func TestDescriptorValidate(t *testing.T) {
	valid := Descriptor{Kind: Intensity, DType: Float32, Nt: 100, Nf: 8, ObsTime: units.Milliseconds(10)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid descriptor rejected: %v", err)
	}

	tests := []struct {
		name string
		desc Descriptor
	}{
		{"zero Nt", Descriptor{Kind: Intensity, Nt: 0, Nf: 8, ObsTime: units.Milliseconds(10)}},
		{"zero rows", Descriptor{Kind: Voltage, Nt: 100, Npols: 0, ObsTime: units.Milliseconds(10)}},
		{"zero duration", Descriptor{Kind: Intensity, Nt: 100, Nf: 8}},
		{"bad dtype", Descriptor{Kind: Intensity, DType: DType(9), Nt: 100, Nf: 8, ObsTime: units.Milliseconds(10)}},
	}
	for _, tc := range tests {
		if err := tc.desc.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestNewAllocatesShape(t *testing.T) {
	s, err := New(Descriptor{Kind: Intensity, DType: Int8, Nt: 50, Nf: 4, ObsTime: units.Milliseconds(5)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Data) != 4 {
		t.Fatalf("rows = %d, want 4", len(s.Data))
	}
	for i, row := range s.Data {
		if len(row) != 50 {
			t.Errorf("row %d length = %d, want 50", i, len(row))
		}
	}
}
