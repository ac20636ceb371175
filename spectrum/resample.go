package spectrum

import "sort"

// Resampled evaluates the spectrum on a new strictly ascending wavelength
// axis using linear interpolation between neighboring samples. Points
// outside the spectrum's coverage evaluate to zero flux. Uncertainties are
// not carried onto the new axis.
func (s Spectrum) Resampled(wavelength []float64) (Spectrum, error) {
	flux := make([]float64, len(wavelength))
	for i, w := range wavelength {
		flux[i] = s.FluxAtWavelength(w)
	}

	return New(wavelength, flux)
}

// FluxAtWavelength linearly interpolates the flux at an arbitrary
// wavelength. Returns 0 outside the sampled range.
func (s Spectrum) FluxAtWavelength(w float64) float64 {
	n := len(s.wavelength)
	if n == 0 || w < s.wavelength[0] || w > s.wavelength[n-1] {
		return 0
	}
	if n == 1 {
		return s.flux[0]
	}

	// Index of the first sample at or beyond w.
	j := sort.SearchFloat64s(s.wavelength, w)
	if j == 0 {
		return s.flux[0]
	}
	if s.wavelength[j] == w {
		return s.flux[j]
	}

	w0, w1 := s.wavelength[j-1], s.wavelength[j]
	frac := (w - w0) / (w1 - w0)

	return s.flux[j-1] + frac*(s.flux[j]-s.flux[j-1])
}
