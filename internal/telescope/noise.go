package telescope

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/psrsim/psrsim/internal/units"
)

// radiometerSigma computes the noise standard deviation from the
// radiometer equation, σ = Tsys / (gain · sqrt(bandwidth · dt)). The
// bandwidth·dt product reduces to a plain number through the unit
// system, so dt may arrive in seconds or milliseconds; σ comes out in
// janskys, the scale of the simulated signal.
func (t *Telescope) radiometerSigma(bandwidth, dt units.Quantity) (float64, error) {
	if t.tsys.IsZero() {
		return 0, fmt.Errorf("noise requested: %w", ErrMissingTsys)
	}

	bt := bandwidth.Mul(dt).Float()
	return t.tsys.Div(t.gain).Janskys() / math.Sqrt(bt), nil
}

// addRadiometerNoise adds an independent zero-mean Gaussian draw of the
// given standard deviation to every sample. A nil src uses the global
// random source.
func addRadiometerNoise(rows [][]float64, sigma float64, src rand.Source) {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	for _, row := range rows {
		for i := range row {
			row[i] += dist.Rand()
		}
	}
}
