package telescope

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/psrsim/psrsim/internal/signal"
	"github.com/psrsim/psrsim/internal/units"
)

func TestRadiometerSigma(t *testing.T) {
	tel := GBT()
	bw := units.Megahertz(800)
	dt := units.Milliseconds(0.5)

	got, err := tel.radiometerSigma(bw, dt)
	if err != nil {
		t.Fatalf("radiometerSigma: %v", err)
	}

	gain := 5500 / (2 * 1.38064852e3) // K/Jy
	want := 35 / gain / math.Sqrt(800e6*0.5e-3)
	if math.Abs(got-want) > 1e-12*want {
		t.Errorf("sigma = %g, want %g", got, want)
	}
}

func TestRadiometerSigmaUnitAgnostic(t *testing.T) {
	tel := GBT()
	bw := units.Megahertz(800)

	a, err := tel.radiometerSigma(bw, units.Milliseconds(0.5))
	if err != nil {
		t.Fatalf("radiometerSigma: %v", err)
	}
	b, err := tel.radiometerSigma(bw, units.Seconds(0.0005))
	if err != nil {
		t.Fatalf("radiometerSigma: %v", err)
	}
	if a != b {
		t.Errorf("sigma differs by dt unit: %g (ms) vs %g (s)", a, b)
	}
}

func TestObserveNoiseWithoutTsys(t *testing.T) {
	tel := New("bare", units.Meters(100))
	tel.AddSystem("sys",
		Receiver{Name: "r", Fcent: units.Megahertz(1400), Bandwidth: units.Megahertz(800)},
		Backend{Name: "b", SampRate: units.Megahertz(12.5)})

	desc := signal.Descriptor{
		Kind: signal.Intensity, DType: signal.Float32,
		Nt: 100, Nf: 1, ObsTime: units.Microseconds(4),
	}
	sig := testSignal(t, desc, 0)

	if _, err := tel.Observe(sig, "sys", ModeSearch, true); !errors.Is(err, ErrMissingTsys) {
		t.Fatalf("expected ErrMissingTsys, got %v", err)
	}
}

// noiseVariance observes a zero-valued signal with noise enabled and
// returns the sample variance of the first output row.
func noiseVariance(t *testing.T, subint units.Quantity, seed uint64) float64 {
	t.Helper()

	desc := signal.Descriptor{
		Kind: signal.Intensity, DType: signal.Float32,
		Nt: 20000, Nf: 1, ObsTime: units.Microseconds(800),
		SubintLen: subint,
	}
	sig := testSignal(t, desc, 0)

	out, err := GBT().Observe(sig, "Lband_GUPPI", ModeSearch, true, WithRand(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	return stat.Variance(out[0], nil)
}

func TestNoiseUsesSubintLenOverDtTel(t *testing.T) {
	// The declared sub-integration length, not the backend interval,
	// sets the noise integration time. With a 0.5 ms sub-integration
	// the expected sigma is orders of magnitude below the ~3.1 Jy the
	// 40 ns backend interval would give.
	subint := units.Milliseconds(0.5)
	v := noiseVariance(t, subint, 1)

	tel := GBT()
	sigma, err := tel.radiometerSigma(units.Megahertz(800), subint)
	if err != nil {
		t.Fatalf("radiometerSigma: %v", err)
	}

	if math.Abs(v-sigma*sigma) > 0.05*sigma*sigma {
		t.Errorf("noise variance = %g, want about %g", v, sigma*sigma)
	}
}

func TestNoiseVarianceScalesInverselyWithDt(t *testing.T) {
	vLong := noiseVariance(t, units.Milliseconds(0.5), 2)
	vShort := noiseVariance(t, units.Milliseconds(0.25), 3)

	// Halving the integration time must double the variance, within
	// statistical tolerance for 20000 draws.
	ratio := vShort / vLong
	if math.Abs(ratio-2) > 0.15 {
		t.Errorf("variance ratio = %g, want about 2", ratio)
	}
}

func TestNoiseReproducibleWithSeed(t *testing.T) {
	a := noiseVariance(t, units.Milliseconds(0.5), 42)
	b := noiseVariance(t, units.Milliseconds(0.5), 42)
	if a != b {
		t.Errorf("same seed produced different noise: %g vs %g", a, b)
	}
}
