// Package dsp holds the pure array transforms used to move a signal
// between sampling grids. Both operators work on a single row; the
// caller applies them per channel or polarization.
package dsp

import "gonum.org/v1/gonum/floats"

// DownSample block-averages groups of factor consecutive samples into
// one output sample. The output length is len(row)/factor; trailing
// samples that do not fill a whole block are dropped.
func DownSample(row []float64, factor int) []float64 {
	n := len(row) / factor
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = floats.Sum(row[i*factor:(i+1)*factor]) / float64(factor)
	}
	return out
}

// Rebin redistributes row onto newNt bins spanning the same total
// duration. Each input sample contributes to an output bin in
// proportion to the overlap of their time intervals, so the mean level
// is preserved: a constant row rebins to the same constant for any
// newNt, larger or smaller than len(row).
func Rebin(row []float64, newNt int) []float64 {
	out := make([]float64, newNt)
	if len(row) == 0 || newNt == 0 {
		return out
	}

	// Input bin i covers [i, i+1) in units of the input sample width;
	// output bin j covers [j·w, (j+1)·w) with w = len(row)/newNt.
	w := float64(len(row)) / float64(newNt)
	for j := 0; j < newNt; j++ {
		lo := float64(j) * w
		hi := lo + w

		first := int(lo)
		last := int(hi)
		if last >= len(row) {
			last = len(row) - 1
		}

		var acc float64
		for i := first; i <= last; i++ {
			overlap := min(hi, float64(i+1)) - max(lo, float64(i))
			if overlap > 0 {
				acc += row[i] * overlap
			}
		}
		out[j] = acc / w
	}
	return out
}
