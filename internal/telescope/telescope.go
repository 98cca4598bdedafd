// Package telescope models the observing side of the simulator: a
// telescope with named receiver/backend systems, and the Observe
// pipeline that reconciles a simulated signal with a backend's sample
// rate, injects radiometer noise and quantizes the result into the
// signal's declared output representation.
package telescope

import (
	"fmt"
	"math"

	"github.com/psrsim/psrsim/internal/units"
)

// Backend is a telescope data-taking backend. Its sample rate fixes the
// Nyquist interval the observation pipeline resamples onto.
type Backend struct {
	Name     string
	SampRate units.Quantity
}

// NyquistInterval returns the backend sample interval 1/(2·samprate).
func (b Backend) NyquistInterval() units.Quantity {
	return b.SampRate.Scale(2).Inv()
}

// Receiver is a telescope receiver band.
type Receiver struct {
	Name      string
	Fcent     units.Quantity
	Bandwidth units.Quantity
}

// System pairs a receiver band with a backend. Systems are registered
// on a telescope under a name and are immutable once added.
type System struct {
	Receiver Receiver
	Backend  Backend
}

// Telescope holds the dish parameters and the registered systems.
// Construction-time fields are immutable; AddSystem is the only
// post-construction mutation and observations never write.
type Telescope struct {
	name     string
	aperture units.Quantity
	area     units.Quantity
	gain     units.Quantity
	tsys     units.Quantity

	systems map[string]System
}

// Option configures a Telescope at construction time.
type Option func(*Telescope)

// WithArea sets the effective collecting area. Without it the area is
// derived from the aperture assuming a circular single dish.
func WithArea(area units.Quantity) Option {
	return func(t *Telescope) { t.area = area }
}

// WithTsys sets the system temperature used by the radiometer noise
// model. A telescope without one can observe, but not with noise.
func WithTsys(tsys units.Quantity) Option {
	return func(t *Telescope) { t.tsys = tsys }
}

// New creates a telescope with the given aperture. Gain is derived as
// area / (2·kB), the factor of two accounting for the two polarizations.
func New(name string, aperture units.Quantity, options ...Option) *Telescope {
	t := Telescope{
		name:     name,
		aperture: aperture,
		systems:  make(map[string]System),
	}

	for _, option := range options {
		option(&t)
	}

	if t.area.IsZero() {
		d := aperture.Meters()
		t.area = units.SquareMeters(math.Pi * (d / 2) * (d / 2))
	}
	t.gain = t.area.Div(units.RadioBoltzmann.Scale(2))

	return &t
}

func (t *Telescope) Name() string             { return t.name }
func (t *Telescope) Aperture() units.Quantity { return t.aperture }
func (t *Telescope) Area() units.Quantity     { return t.area }
func (t *Telescope) Gain() units.Quantity     { return t.gain }
func (t *Telescope) Tsys() units.Quantity     { return t.tsys }

// AddSystem registers a receiver/backend pair under name, replacing any
// system previously registered under the same name.
func (t *Telescope) AddSystem(name string, receiver Receiver, backend Backend) {
	t.systems[name] = System{Receiver: receiver, Backend: backend}
}

// System returns the system registered under name.
func (t *Telescope) System(name string) (System, error) {
	sys, ok := t.systems[name]
	if !ok {
		return System{}, fmt.Errorf("%w: %q on telescope %s", ErrUnknownSystem, name, t.name)
	}
	return sys, nil
}

// SystemNames returns the names of all registered systems.
func (t *Telescope) SystemNames() []string {
	names := make([]string, 0, len(t.systems))
	for name := range t.systems {
		names = append(names, name)
	}
	return names
}

func (t *Telescope) String() string {
	return fmt.Sprintf("Telescope(%s, %gm)", t.name, t.aperture.Meters())
}
