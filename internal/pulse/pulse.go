// Package pulse synthesizes the pulsar signals fed to the observation
// pipeline: a periodic Gaussian pulse profile rendered either as a
// detected filterbank intensity or as raw polarization voltages.
package pulse

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/psrsim/psrsim/internal/signal"
	"github.com/psrsim/psrsim/internal/units"
)

// Generator produces synthetic pulsar signals with a single Gaussian
// pulse component per rotation.
type Generator struct {
	period   units.Quantity
	width    float64 // pulse FWHM as a fraction of the period
	amp      float64 // peak intensity above baseline, in the signal's unit scale
	baseline float64 // off-pulse intensity level

	src rand.Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithWidth sets the pulse width as a fraction of the period.
func WithWidth(w float64) Option { return func(g *Generator) { g.width = w } }

// WithAmplitude sets the peak pulse intensity above the baseline.
func WithAmplitude(a float64) Option { return func(g *Generator) { g.amp = a } }

// WithBaseline sets the off-pulse intensity level.
func WithBaseline(b float64) Option { return func(g *Generator) { g.baseline = b } }

// WithRand sets the random source for the draws; tests pass a seeded one.
func WithRand(src rand.Source) Option { return func(g *Generator) { g.src = src } }

// New creates a generator for a pulsar of the given rotation period.
func New(period units.Quantity, options ...Option) *Generator {
	g := Generator{
		period:   period,
		width:    0.05,
		amp:      10,
		baseline: 1,
	}
	for _, option := range options {
		option(&g)
	}
	return &g
}

// fwhmToSigma converts a full width at half maximum to the Gaussian sigma.
const fwhmToSigma = 2.354820045030949

// envelope returns the mean intensity at rotation phase [0,1), with the
// pulse peak at phase 0.5.
func (g *Generator) envelope(phase float64) float64 {
	sigma := g.width / fwhmToSigma
	d := phase - 0.5
	return g.baseline + g.amp*distuv.UnitNormal.Prob(d/sigma)/distuv.UnitNormal.Prob(0)
}

// phaseAt returns the rotation phase of sample i of nt over obsTime.
func (g *Generator) phaseAt(i, nt int, obsTime units.Quantity) float64 {
	t := obsTime.Seconds() * float64(i) / float64(nt)
	p := g.period.Seconds()
	cycles := t / p
	return cycles - float64(int(cycles))
}

// Intensity fills a filterbank signal: each sample is an exponential
// draw (single-polarization detected power) whose mean follows the
// pulse envelope. All channels share the profile; dispersion is not
// modelled here.
func (g *Generator) Intensity(desc signal.Descriptor) (*signal.Signal, error) {
	if desc.Kind != signal.Intensity {
		return nil, fmt.Errorf("pulse: intensity generation needs an intensity descriptor, got %s", desc.Kind)
	}

	sig, err := signal.New(desc)
	if err != nil {
		return nil, err
	}

	for _, row := range sig.Data {
		for i := range row {
			mean := g.envelope(g.phaseAt(i, desc.Nt, desc.ObsTime))
			row[i] = distuv.Exponential{Rate: 1 / mean, Src: g.src}.Rand()
		}
	}
	return sig, nil
}

// Voltage fills a voltage signal: zero-mean Gaussian draws whose
// variance follows the pulse envelope, scaled by the representation's
// draw normalization so the off-pulse level fills the dtype's range.
func (g *Generator) Voltage(desc signal.Descriptor) (*signal.Signal, error) {
	if desc.Kind != signal.Voltage {
		return nil, fmt.Errorf("pulse: voltage generation needs a voltage descriptor, got %s", desc.Kind)
	}

	rep, err := signal.RepresentationFor(desc.DType)
	if err != nil {
		return nil, err
	}

	sig, err := signal.New(desc)
	if err != nil {
		return nil, err
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: g.src}
	for _, row := range sig.Data {
		for i := range row {
			// amplitude scales as the square root of the pulse power
			env := math.Sqrt(g.envelope(g.phaseAt(i, desc.Nt, desc.ObsTime)) / g.baseline)
			row[i] = norm.Rand() * rep.DrawNorm * env
		}
	}
	return sig, nil
}
