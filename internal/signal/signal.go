// Package signal defines the simulated signal container consumed by the
// observation pipeline: the shape/timing descriptor, the signal kind
// (raw voltage vs detected intensity) and the output representation
// metadata that drives clipping and quantization.
package signal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/psrsim/psrsim/internal/units"
)

// Kind discriminates the two signal families. The row axis of the data
// array means different things for each: polarizations for voltage
// signals, frequency channels for filterbank/intensity signals.
type Kind int

const (
	Voltage Kind = iota
	Intensity
)

func (k Kind) String() string {
	switch k {
	case Voltage:
		return "voltage"
	case Intensity:
		return "intensity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DType tags the numeric representation of the output array.
type DType int

const (
	Float32 DType = iota
	Int8
)

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Int8:
		return "int8"
	default:
		return fmt.Sprintf("DType(%d)", int(d))
	}
}

// ErrUnsupportedRepresentation is returned when a signal declares an
// output representation the quantizer does not recognize.
var ErrUnsupportedRepresentation = errors.New("unsupported output representation")

// Representation holds the per-dtype quantization constants. DrawMax is
// the clip ceiling; DrawNorm maps a unit Gaussian draw onto the dtype's
// dynamic range so that the chosen tail quantile lands on DrawMax.
type Representation struct {
	DrawMax  float64
	DrawNorm float64
}

// gaussLimit is the 0.999 quantile of the unit normal. Amplitudes past
// it saturate the int8 range.
var gaussLimit = distuv.UnitNormal.Quantile(0.999)

var representations = map[DType]Representation{
	Float32: {DrawMax: 200, DrawNorm: 1},
	Int8:    {DrawMax: math.MaxInt8, DrawNorm: math.MaxInt8 / gaussLimit},
}

// RepresentationFor returns the quantization constants for dtype.
func RepresentationFor(dtype DType) (Representation, error) {
	r, ok := representations[dtype]
	if !ok {
		return Representation{}, fmt.Errorf("%w: %s", ErrUnsupportedRepresentation, dtype)
	}
	return r, nil
}

// Descriptor is the read-only view of a simulated signal's shape and
// timing. It is produced by the signal synthesis layer and consumed,
// never mutated, by the observation pipeline.
type Descriptor struct {
	Kind  Kind
	DType DType

	// Nt is the number of time samples per row.
	Nt int

	// Npols is the polarization count; meaningful for voltage signals.
	Npols int

	// Nf is the frequency channel count; meaningful for intensity signals.
	Nf int

	// ObsTime is the total observation duration.
	ObsTime units.Quantity

	// SubintLen, when non-zero, declares a sub-integration length that
	// overrides the backend interval as the noise integration time.
	// Only intensity-mode signals carry one.
	SubintLen units.Quantity
}

// Rows returns the row count of the data array for the signal's kind.
func (d Descriptor) Rows() int {
	if d.Kind == Voltage {
		return d.Npols
	}
	return d.Nf
}

// SampleInterval returns the native sample interval ObsTime/Nt.
func (d Descriptor) SampleInterval() units.Quantity {
	return d.ObsTime.Scale(1 / float64(d.Nt))
}

// Validate checks the descriptor invariants.
func (d Descriptor) Validate() error {
	if d.Nt <= 0 {
		return fmt.Errorf("signal: Nt must be positive, got %d", d.Nt)
	}
	if d.Rows() <= 0 {
		return fmt.Errorf("signal: %s signal needs a positive row count, got %d", d.Kind, d.Rows())
	}
	if d.ObsTime.Seconds() <= 0 {
		return fmt.Errorf("signal: observation time must be positive, got %v", d.ObsTime)
	}
	if _, err := RepresentationFor(d.DType); err != nil {
		return err
	}
	return nil
}

// Signal couples a descriptor with its row-major sample data. Data has
// Rows() rows of Nt samples each.
type Signal struct {
	Desc Descriptor
	Data [][]float64
}

// New allocates a zeroed signal matching desc.
func New(desc Descriptor) (*Signal, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	data := make([][]float64, desc.Rows())
	for i := range data {
		data[i] = make([]float64, desc.Nt)
	}
	return &Signal{Desc: desc, Data: data}, nil
}
