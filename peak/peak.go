// Package peak locates the cross-correlation maximum and refines it to
// sub-pixel precision, yielding a velocity and redshift estimate.
package peak

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-redshift/internal/polyfit"
	"github.com/cwbudde/algo-redshift/spectrum"
	"github.com/cwbudde/algo-redshift/xcorr"
)

// DefaultHalfWidth is the default refinement window half-width in samples.
const DefaultHalfWidth = 8

// Errors returned by peak estimation.
var (
	ErrEmptyCorrelation = errors.New("peak: empty correlation")
	ErrInvalidHalfWidth = errors.New("peak: half-width must be >= 1")
	ErrPeakAtBoundary   = errors.New("peak: refinement window exceeds correlation bounds")
	ErrDegenerateFit    = errors.New("peak: parabola fit has no valid maximum")
)

// Fit is a refined correlation peak.
type Fit struct {
	// Velocity is the sub-pixel peak location in km/s.
	Velocity float64

	// Redshift is Velocity / c in the non-relativistic approximation.
	Redshift float64

	// Lag and Correlation hold the local window used for the fit,
	// retained for diagnostics.
	Lag         []float64
	Correlation []float64

	// Coeffs holds the fitted quadratic in ascending power order:
	// p(v) = Coeffs[0] + Coeffs[1]*v + Coeffs[2]*v^2.
	Coeffs [3]float64
}

// Coarse returns the index of the global correlation maximum. Ties resolve
// to the first occurrence in ascending-lag order.
func Coarse(r xcorr.Result) (int, error) {
	if len(r.Correlation) == 0 {
		return 0, ErrEmptyCorrelation
	}

	index := 0
	value := r.Correlation[0]
	for i, v := range r.Correlation {
		if v > value {
			index = i
			value = v
		}
	}

	return index, nil
}

// Refine fits a quadratic to the 2*halfWidth+1 samples centered on index
// and returns the sub-pixel peak.
//
// The refined velocity is the midpoint of the quadratic's roots, which for
// p(v) = a*v^2 + b*v + c is -b/(2a); computing it that way sidesteps
// complex roots when the peak rides on a pedestal. The parabola must open
// downward, otherwise the refinement is meaningless and ErrDegenerateFit
// is returned.
func Refine(r xcorr.Result, index, halfWidth int) (Fit, error) {
	if len(r.Correlation) == 0 || len(r.Lag) != len(r.Correlation) {
		return Fit{}, ErrEmptyCorrelation
	}
	if halfWidth < 1 {
		return Fit{}, ErrInvalidHalfWidth
	}

	lo := index - halfWidth
	hi := index + halfWidth
	if lo < 0 || hi >= len(r.Correlation) {
		return Fit{}, fmt.Errorf("%w: window [%d, %d] of %d samples",
			ErrPeakAtBoundary, lo, hi, len(r.Correlation))
	}

	lag := append([]float64(nil), r.Lag[lo:hi+1]...)
	corr := append([]float64(nil), r.Correlation[lo:hi+1]...)

	poly, err := polyfit.Fit(lag, corr, 2)
	if err != nil {
		return Fit{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}

	pc := poly.PowerCoeffs()

	a := pc[2]
	if a >= 0 {
		return Fit{}, fmt.Errorf("%w: parabola opens upward", ErrDegenerateFit)
	}

	velocity := -pc[1] / (2 * a)

	return Fit{
		Velocity:    velocity,
		Redshift:    velocity / spectrum.SpeedOfLight,
		Lag:         lag,
		Correlation: corr,
		Coeffs:      [3]float64{pc[0], pc[1], pc[2]},
	}, nil
}

// Estimate runs Coarse and Refine in one step.
func Estimate(r xcorr.Result, halfWidth int) (Fit, error) {
	index, err := Coarse(r)
	if err != nil {
		return Fit{}, err
	}

	return Refine(r, index, halfWidth)
}
