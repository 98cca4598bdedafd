// Package units provides dimension-checked physical quantities for the
// handful of dimensions the simulator cares about: length, time,
// temperature and flux density. Values are stored in SI-flavoured base
// units (metre, second, kelvin, jansky); constructors and accessors do
// the scaling.
package units

import (
	"fmt"
	"math"
)

// Dim holds the exponent of each base dimension. Frequency is T⁻¹,
// collecting area is L², telescope gain works out to K/Jy.
type Dim struct {
	Length      int8
	Time        int8
	Temperature int8
	Flux        int8
}

var (
	// Dimensionless is the zero dimension.
	Dimensionless = Dim{}

	DimLength      = Dim{Length: 1}
	DimArea        = Dim{Length: 2}
	DimTime        = Dim{Time: 1}
	DimFrequency   = Dim{Time: -1}
	DimTemperature = Dim{Temperature: 1}
	DimFlux        = Dim{Flux: 1}

	// DimGain is the dimension of telescope gain, K/Jy.
	DimGain = Dim{Temperature: 1, Flux: -1}

	// DimRadioBoltzmann is the dimension of the Boltzmann constant
	// expressed in radio units, Jy·m²/K.
	DimRadioBoltzmann = Dim{Length: 2, Temperature: -1, Flux: 1}
)

func (d Dim) add(o Dim) Dim {
	return Dim{d.Length + o.Length, d.Time + o.Time, d.Temperature + o.Temperature, d.Flux + o.Flux}
}

func (d Dim) sub(o Dim) Dim {
	return Dim{d.Length - o.Length, d.Time - o.Time, d.Temperature - o.Temperature, d.Flux - o.Flux}
}

// Quantity is a physical value with an attached dimension. The zero
// Quantity is dimensionless zero. Mismatched dimensions in Add or the
// typed accessors panic: like a shape mismatch in a matrix library,
// it is a programming error, not an input error.
type Quantity struct {
	val float64
	dim Dim
}

// New returns a quantity of val in the base unit of dim.
func New(val float64, dim Dim) Quantity { return Quantity{val, dim} }

func Meters(v float64) Quantity       { return Quantity{v, DimLength} }
func SquareMeters(v float64) Quantity { return Quantity{v, DimArea} }
func Seconds(v float64) Quantity      { return Quantity{v, DimTime} }
func Milliseconds(v float64) Quantity { return Quantity{v * 1e-3, DimTime} }
func Microseconds(v float64) Quantity { return Quantity{v * 1e-6, DimTime} }
func Hertz(v float64) Quantity        { return Quantity{v, DimFrequency} }
func Kilohertz(v float64) Quantity    { return Quantity{v * 1e3, DimFrequency} }
func Megahertz(v float64) Quantity    { return Quantity{v * 1e6, DimFrequency} }
func Kelvin(v float64) Quantity       { return Quantity{v, DimTemperature} }
func Janskys(v float64) Quantity      { return Quantity{v, DimFlux} }

// RadioBoltzmann is the Boltzmann constant in radio units, Jy·m²/K.
// Process-wide constant, never recomputed.
var RadioBoltzmann = Quantity{1.38064852e3, DimRadioBoltzmann}

// Dim returns the dimension of q.
func (q Quantity) Dim() Dim { return q.dim }

// BaseValue returns the raw value in base units, whatever the dimension.
func (q Quantity) BaseValue() float64 { return q.val }

func (q Quantity) in(dim Dim, scale float64, unit string) float64 {
	if q.dim != dim {
		panic(fmt.Sprintf("units: quantity %v is not convertible to %s", q, unit))
	}
	return q.val / scale
}

func (q Quantity) Meters() float64       { return q.in(DimLength, 1, "m") }
func (q Quantity) SquareMeters() float64 { return q.in(DimArea, 1, "m^2") }
func (q Quantity) Seconds() float64      { return q.in(DimTime, 1, "s") }
func (q Quantity) Milliseconds() float64 { return q.in(DimTime, 1e-3, "ms") }
func (q Quantity) Hertz() float64        { return q.in(DimFrequency, 1, "Hz") }
func (q Quantity) Megahertz() float64    { return q.in(DimFrequency, 1e6, "MHz") }
func (q Quantity) Kelvin() float64       { return q.in(DimTemperature, 1, "K") }
func (q Quantity) Janskys() float64      { return q.in(DimFlux, 1, "Jy") }

// Float returns the value of a dimensionless quantity.
func (q Quantity) Float() float64 { return q.in(Dimensionless, 1, "dimensionless") }

// IsZero reports whether q has a zero value, regardless of dimension.
func (q Quantity) IsZero() bool { return q.val == 0 }

// Add returns q + o. Panics if the dimensions differ.
func (q Quantity) Add(o Quantity) Quantity {
	if q.dim != o.dim {
		panic(fmt.Sprintf("units: cannot add %v and %v", q, o))
	}
	return Quantity{q.val + o.val, q.dim}
}

// Mul returns q·o with the combined dimension.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{q.val * o.val, q.dim.add(o.dim)}
}

// Div returns q/o with the combined dimension.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{q.val / o.val, q.dim.sub(o.dim)}
}

// Scale returns q scaled by the dimensionless factor f.
func (q Quantity) Scale(f float64) Quantity { return Quantity{q.val * f, q.dim} }

// Inv returns 1/q with the inverted dimension.
func (q Quantity) Inv() Quantity {
	return Quantity{1 / q.val, Dimensionless.sub(q.dim)}
}

// Sqrt returns the square root of a dimensionless quantity.
func (q Quantity) Sqrt() float64 { return math.Sqrt(q.Float()) }

// Ratio returns q/o as a plain float. Panics if the dimensions differ,
// since the ratio would not be dimensionless.
func (q Quantity) Ratio(o Quantity) float64 {
	if q.dim != o.dim {
		panic(fmt.Sprintf("units: ratio of %v to %v is not dimensionless", q, o))
	}
	return q.val / o.val
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.val, q.dim)
}

func (d Dim) String() string {
	if d == Dimensionless {
		return "(dimensionless)"
	}
	s := ""
	for _, b := range []struct {
		sym string
		exp int8
	}{{"m", d.Length}, {"s", d.Time}, {"K", d.Temperature}, {"Jy", d.Flux}} {
		switch {
		case b.exp == 0:
		case b.exp == 1:
			s += b.sym + "·"
		default:
			s += fmt.Sprintf("%s^%d·", b.sym, b.exp)
		}
	}
	if len(s) > 0 {
		s = s[:len(s)-len("·")]
	}
	return s
}
