package testutil

import (
	"math"
	"math/rand"
)

// LinearGrid returns n evenly spaced wavelengths covering [lo, hi].
func LinearGrid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// PolynomialFlux evaluates a power-basis polynomial (ascending
// coefficients) at each wavelength.
func PolynomialFlux(wavelength []float64, coeffs ...float64) []float64 {
	out := make([]float64, len(wavelength))
	for i, w := range wavelength {
		var v float64
		for k := len(coeffs) - 1; k >= 0; k-- {
			v = v*w + coeffs[k]
		}
		out[i] = v
	}
	return out
}

// WithGaussianLine subtracts a Gaussian absorption line of the given depth
// and width from flux, returning a new slice.
func WithGaussianLine(wavelength, flux []float64, center, depth, sigma float64) []float64 {
	out := append([]float64(nil), flux...)
	for i, w := range wavelength {
		d := (w - center) / sigma
		out[i] -= depth * math.Exp(-0.5*d*d)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GalaxyFlux builds a template-like flux: a smooth quadratic continuum
// with a set of Gaussian absorption lines at the given rest-frame centers.
func GalaxyFlux(wavelength []float64, lineCenters []float64) []float64 {
	flux := PolynomialFlux(wavelength, 12, 4e-4, -2.5e-8)
	for _, c := range lineCenters {
		flux = WithGaussianLine(wavelength, flux, c, 3, 6)
	}
	return flux
}
