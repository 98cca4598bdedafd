package app

import (
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	hueStart = 236.0
	hueEnd   = 0.0
)

// Bounds holds the intensity range mapped onto the color gradient.
// Percentile bounds keep a handful of clipped or saturated samples from
// washing out the rest of the image.
type Bounds struct {
	Min float64
	Max float64
}

// computeBounds returns the 5th and 95th percentile of all samples.
func computeBounds(data [][]float64) Bounds {
	var all []float64
	for _, row := range data {
		all = append(all, row...)
	}
	sort.Float64s(all)

	lo := all[len(all)*5/100]
	hi := all[len(all)*95/100]
	if hi <= lo {
		hi = lo + 1
	}
	return Bounds{Min: lo, Max: hi}
}

// themeFunc maps a normalized intensity [0,1] to a color.
type themeFunc func(float64) color.Color

func themeFor(theme ColorTheme) themeFunc {
	switch theme {
	case GrayscaleTheme:
		return func(v float64) color.Color {
			g := uint8(math.Pow(v, 0.7) * 255)
			return color.RGBA{R: g, G: g, B: g, A: 0xff}
		}
	default:
		// classic SDR blue-to-red gradient
		return func(v float64) color.Color {
			hue := hueStart - v*(hueStart-hueEnd)
			hue = math.Min(math.Max(hue, hueEnd), hueStart)
			return colorful.Hsv(hue, 1, 0.90)
		}
	}
}

// colorMap is a pre-computed gradient lookup over a bounds range.
type colorMap struct {
	colors []color.Color
	bounds Bounds
}

func newColorMap(size int, theme ColorTheme, bounds Bounds) *colorMap {
	cm := colorMap{
		colors: make([]color.Color, size),
		bounds: bounds,
	}

	fn := themeFor(theme)
	for i := range cm.colors {
		cm.colors[i] = fn(float64(i) / float64(size-1))
	}
	return &cm
}

func (cm *colorMap) colorAt(v float64) color.Color {
	n := (v - cm.bounds.Min) / (cm.bounds.Max - cm.bounds.Min)
	idx := int(n * float64(len(cm.colors)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cm.colors) {
		idx = len(cm.colors) - 1
	}
	return cm.colors[idx]
}
