package lowpass

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-redshift/spectrum"
)

// Apply filters the spectrum's flux with the kernel and returns a new
// spectrum on the same wavelength axis.
//
// The convolution runs in "same" mode with implicit zero padding: the
// output has the input's length, and the first and last Len()/2 samples
// carry edge artifacts. Uncertainties are passed through unfiltered.
func Apply(s spectrum.Spectrum, k Kernel) (spectrum.Spectrum, error) {
	return s.WithFlux(convolveSame(s.Flux(), k.taps))
}

// convolveSame computes the zero-padded linear convolution of a and b and
// returns the centered slice with len(a) samples.
func convolveSame(a, b []float64) []float64 {
	full := make([]float64, len(a)+len(b)-1)
	temp := make([]float64, len(b))

	for i := range a {
		// full[i:i+m] += b * a[i]
		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(full[i:i+len(b)], temp)
	}

	start := (len(b) - 1) / 2

	return full[start : start+len(a)]
}
