package spectrum

import (
	"errors"
	"math"
)

// SpeedOfLight is the speed of light in km/s.
const SpeedOfLight = 299792.458

// Errors returned by Spectrum construction.
var (
	ErrEmpty               = errors.New("spectrum: no samples")
	ErrLengthMismatch      = errors.New("spectrum: slice length mismatch")
	ErrNotAscending        = errors.New("spectrum: wavelengths must be strictly ascending")
	ErrNonFinite           = errors.New("spectrum: non-finite sample")
	ErrNegativeUncertainty = errors.New("spectrum: negative uncertainty")
)

// Spectrum is an immutable 1-D spectrum: flux density sampled at strictly
// ascending wavelengths, with optional per-sample standard deviations.
type Spectrum struct {
	wavelength  []float64
	flux        []float64
	uncertainty []float64
}

// New constructs a Spectrum from wavelength and flux samples.
// Both slices are copied.
func New(wavelength, flux []float64) (Spectrum, error) {
	return NewWithUncertainty(wavelength, flux, nil)
}

// NewWithUncertainty constructs a Spectrum with per-sample standard
// deviations. uncertainty may be nil for an unweighted spectrum.
// Zero- or negative-weight samples must be filtered out by the caller
// before construction.
func NewWithUncertainty(wavelength, flux, uncertainty []float64) (Spectrum, error) {
	if len(wavelength) == 0 {
		return Spectrum{}, ErrEmpty
	}
	if len(flux) != len(wavelength) {
		return Spectrum{}, ErrLengthMismatch
	}
	if uncertainty != nil && len(uncertainty) != len(wavelength) {
		return Spectrum{}, ErrLengthMismatch
	}

	for i, w := range wavelength {
		if math.IsNaN(w) || math.IsInf(w, 0) || math.IsNaN(flux[i]) || math.IsInf(flux[i], 0) {
			return Spectrum{}, ErrNonFinite
		}
		if i > 0 && w <= wavelength[i-1] {
			return Spectrum{}, ErrNotAscending
		}
	}

	for _, u := range uncertainty {
		if math.IsNaN(u) || math.IsInf(u, 0) {
			return Spectrum{}, ErrNonFinite
		}
		if u < 0 {
			return Spectrum{}, ErrNegativeUncertainty
		}
	}

	s := Spectrum{
		wavelength: append([]float64(nil), wavelength...),
		flux:       append([]float64(nil), flux...),
	}
	if uncertainty != nil {
		s.uncertainty = append([]float64(nil), uncertainty...)
	}

	return s, nil
}

// Len returns the number of samples.
func (s Spectrum) Len() int {
	return len(s.wavelength)
}

// Wavelength returns a copy of the wavelength axis in angstroms.
func (s Spectrum) Wavelength() []float64 {
	return append([]float64(nil), s.wavelength...)
}

// Flux returns a copy of the flux samples.
func (s Spectrum) Flux() []float64 {
	return append([]float64(nil), s.flux...)
}

// Uncertainty returns a copy of the per-sample standard deviations,
// or nil if the spectrum is unweighted.
func (s Spectrum) Uncertainty() []float64 {
	if s.uncertainty == nil {
		return nil
	}
	return append([]float64(nil), s.uncertainty...)
}

// HasUncertainty reports whether the spectrum carries uncertainties.
func (s Spectrum) HasUncertainty() bool {
	return s.uncertainty != nil
}

// WavelengthAt returns the wavelength of sample i.
func (s Spectrum) WavelengthAt(i int) float64 {
	return s.wavelength[i]
}

// FluxAt returns the flux of sample i.
func (s Spectrum) FluxAt(i int) float64 {
	return s.flux[i]
}

// Bounds returns the first and last wavelength.
func (s Spectrum) Bounds() (lo, hi float64) {
	return s.wavelength[0], s.wavelength[len(s.wavelength)-1]
}

// WithFlux returns a new Spectrum sharing this spectrum's wavelength axis
// and uncertainties with the given flux samples.
func (s Spectrum) WithFlux(flux []float64) (Spectrum, error) {
	return NewWithUncertainty(s.wavelength, flux, s.uncertainty)
}

// Redshifted returns the spectrum with every wavelength scaled by (1+z).
// Flux and uncertainties are unchanged. z must satisfy z > -1 so the axis
// stays positive and ascending.
func (s Spectrum) Redshifted(z float64) (Spectrum, error) {
	if z <= -1 || math.IsNaN(z) || math.IsInf(z, 0) {
		return Spectrum{}, ErrNonFinite
	}

	shifted := make([]float64, len(s.wavelength))
	for i, w := range s.wavelength {
		shifted[i] = w * (1 + z)
	}

	return NewWithUncertainty(shifted, s.flux, s.uncertainty)
}

// Overlap returns the wavelength interval covered by both spectra.
// ok is false when the ranges are disjoint.
func (s Spectrum) Overlap(other Spectrum) (lo, hi float64, ok bool) {
	sLo, sHi := s.Bounds()
	oLo, oHi := other.Bounds()

	lo = math.Max(sLo, oLo)
	hi = math.Min(sHi, oHi)

	return lo, hi, lo < hi
}
