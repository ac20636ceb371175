package lowpass

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// Default operating point of the redshift pipeline.
const (
	DefaultCutoff     = 0.05
	DefaultTransition = 0.49
)

// Errors returned by Design.
var (
	ErrInvalidCutoff     = errors.New("lowpass: cutoff fraction must be in (0, 0.5)")
	ErrInvalidTransition = errors.New("lowpass: transition fraction must be in (0, 0.5)")
	ErrDegenerateKernel  = errors.New("lowpass: designed zero-sum kernel")
)

// Kernel is a designed low-pass FIR filter with an odd number of taps and
// unity DC gain.
type Kernel struct {
	taps   []float64
	cutoff float64
}

// Design builds a Blackman-windowed-sinc low-pass kernel.
//
// cutoff and transition are fractions of the sampling rate in (0, 0.5).
// The kernel length is ceil(4/transition), forced to the next odd integer
// so the filter has a unique center tap, and the taps are scaled to sum to
// exactly one.
func Design(cutoff, transition float64) (Kernel, error) {
	if !(cutoff > 0 && cutoff < 0.5) {
		return Kernel{}, ErrInvalidCutoff
	}
	if !(transition > 0 && transition < 0.5) {
		return Kernel{}, ErrInvalidTransition
	}

	n := int(math.Ceil(4 / transition))
	if n%2 == 0 {
		n++
	}

	center := float64(n-1) / 2

	taps := make([]float64, n)
	win := make([]float64, n)
	for i := range taps {
		taps[i] = sinc(2 * cutoff * (float64(i) - center))
		win[i] = 0.42 -
			0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1)) +
			0.08*math.Cos(4*math.Pi*float64(i)/float64(n-1))
	}

	vecmath.MulBlockInPlace(taps, win)

	sum := vecmath.Sum(taps)
	if sum == 0 {
		return Kernel{}, ErrDegenerateKernel
	}

	for i := range taps {
		taps[i] /= sum
	}

	return Kernel{taps: taps, cutoff: cutoff}, nil
}

// Len returns the number of taps (always odd).
func (k Kernel) Len() int {
	return len(k.taps)
}

// Taps returns a copy of the kernel coefficients.
func (k Kernel) Taps() []float64 {
	return append([]float64(nil), k.taps...)
}

// Cutoff returns the design cutoff as a fraction of the sampling rate.
func (k Kernel) Cutoff() float64 {
	return k.cutoff
}

// Response computes the complex frequency response at the given frequency
// expressed as a fraction of the sampling rate.
func (k Kernel) Response(fraction float64) complex128 {
	w := 2 * math.Pi * fraction

	var h complex128
	for i, c := range k.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(i)))
	}

	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency
// fraction.
func (k Kernel) MagnitudeDB(fraction float64) float64 {
	return 20 * math.Log10(cmplx.Abs(k.Response(fraction)))
}

// sinc is the normalized sinc function sin(pi x)/(pi x) with sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
