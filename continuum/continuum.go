// Package continuum fits and removes the smooth background flux level of a
// spectrum, isolating line and feature structure for correlation.
package continuum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-redshift/internal/polyfit"
	"github.com/cwbudde/algo-redshift/spectrum"
)

// GenericDegree is the polynomial order used by FitGeneric, matching the
// conventional default of unconstrained continuum models.
const GenericDegree = 3

// Errors returned by continuum fitting.
var (
	ErrTooFewSamples = errors.New("continuum: fewer samples than degree+1")
	ErrSingularFit   = errors.New("continuum: singular continuum fit")
)

// Curve is a fitted continuum model evaluated over wavelength.
type Curve struct {
	poly polyfit.Poly
}

// Fit computes an unweighted least-squares polynomial continuum of the
// given degree over the spectrum. It requires at least degree+1 samples.
func Fit(s spectrum.Spectrum, degree int) (Curve, error) {
	poly, err := polyfit.Fit(s.Wavelength(), s.Flux(), degree)

	switch {
	case errors.Is(err, polyfit.ErrTooFewSamples):
		return Curve{}, fmt.Errorf("%w: %d samples for degree %d", ErrTooFewSamples, s.Len(), degree)
	case errors.Is(err, polyfit.ErrSingular):
		return Curve{}, fmt.Errorf("%w: degree %d", ErrSingularFit, degree)
	case err != nil:
		return Curve{}, fmt.Errorf("continuum: %w", err)
	}

	return Curve{poly: poly}, nil
}

// FitGeneric computes the default unconstrained continuum fit used for
// observed spectra. Templates should use [Fit] with an explicit low order.
func FitGeneric(s spectrum.Spectrum) (Curve, error) {
	return Fit(s, GenericDegree)
}

// Eval evaluates the continuum level at a wavelength.
func (c Curve) Eval(wavelength float64) float64 {
	return c.poly.Eval(wavelength)
}

// Degree returns the fitted polynomial order.
func (c Curve) Degree() int {
	return c.poly.Degree()
}

// Subtract returns a new spectrum with the continuum removed:
// flux' = flux - continuum(wavelength). Wavelengths and uncertainties are
// unchanged.
func Subtract(s spectrum.Spectrum, c Curve) (spectrum.Spectrum, error) {
	flux := s.Flux()
	wl := s.Wavelength()
	for i := range flux {
		flux[i] -= c.Eval(wl[i])
	}

	return s.WithFlux(flux)
}

// Remove fits and subtracts in one step.
func Remove(s spectrum.Spectrum, degree int) (spectrum.Spectrum, error) {
	c, err := Fit(s, degree)
	if err != nil {
		return spectrum.Spectrum{}, err
	}

	return Subtract(s, c)
}
