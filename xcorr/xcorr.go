package xcorr

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-redshift/spectrum"
)

// Errors returned by Correlate.
var (
	ErrInsufficientOverlap = errors.New("xcorr: spectra share no wavelength overlap")
	ErrTooFewSamples       = errors.New("xcorr: need at least 2 samples per spectrum")
)

// Result is a cross-correlation curve over velocity lag.
type Result struct {
	// Lag holds velocity lags in km/s, ascending, index-aligned with
	// Correlation. Lag zero sits at index (len(Lag)-1)/2.
	Lag []float64

	// Correlation holds the dimensionless correlation values.
	Correlation []float64
}

// Correlate cross-correlates an observation against a template.
//
// Both spectra may be sampled on different non-uniform wavelength grids;
// they are regridded onto a shared uniform log10-wavelength grid spanning
// the union of their coverage, with the observation's median native log
// step. Samples outside a spectrum's own coverage contribute zero flux,
// which is the feature-free level for continuum-subtracted input.
func Correlate(obs, tmpl spectrum.Spectrum) (Result, error) {
	if obs.Len() < 2 || tmpl.Len() < 2 {
		return Result{}, fmt.Errorf("%w: got %d and %d", ErrTooFewSamples, obs.Len(), tmpl.Len())
	}

	if _, _, ok := obs.Overlap(tmpl); !ok {
		obsLo, obsHi := obs.Bounds()
		tmplLo, tmplHi := tmpl.Bounds()

		return Result{}, fmt.Errorf("%w: observation [%g, %g], template [%g, %g]",
			ErrInsufficientOverlap, obsLo, obsHi, tmplLo, tmplHi)
	}

	step := medianLogStep(obs)

	obsLo, obsHi := obs.Bounds()
	tmplLo, tmplHi := tmpl.Bounds()
	logLo := math.Log10(math.Min(obsLo, tmplLo))
	logHi := math.Log10(math.Max(obsHi, tmplHi))

	n := int((logHi-logLo)/step) + 1
	if n < 2 {
		return Result{}, fmt.Errorf("%w: regridded to %d samples", ErrTooFewSamples, n)
	}

	obsFlux := make([]float64, n)
	tmplFlux := make([]float64, n)
	for i := 0; i < n; i++ {
		w := math.Pow(10, logLo+float64(i)*step)
		obsFlux[i] = obs.FluxAtWavelength(w)
		tmplFlux[i] = tmpl.FluxAtWavelength(w)
	}

	corr, err := correlateFFT(obsFlux, tmplFlux)
	if err != nil {
		return Result{}, err
	}

	// Map pixel lag to velocity through the exact wavelength-ratio
	// relation v = c*(10^(l*step) - 1). Near zero lag this reduces to
	// the per-pixel step c*ln(10)*step, but the exact form keeps large
	// shifts unbiased.
	lag := make([]float64, len(corr))
	for i := range lag {
		l := float64(i-(n-1)) * step
		lag[i] = spectrum.SpeedOfLight * (math.Pow(10, l) - 1)
	}

	return Result{Lag: lag, Correlation: corr}, nil
}

// correlateFFT computes the full linear cross-correlation of two
// equal-length series as IFFT(FFT(a) * conj(FFT(b))), zero-padded to the
// next power of two. The result has length 2n-1 with lag zero at index
// n-1.
func correlateFFT(a, b []float64) ([]float64, error) {
	n := len(a)
	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		aPadded[i] = complex(a[i], 0)
		bPadded[i] = complex(b[i], 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	prod := make([]complex128, fftSize)
	for i := range prod {
		bConj := complex(real(bFreq[i]), -imag(bFreq[i]))
		prod[i] = aFreq[i] * bConj
	}

	res := make([]complex128, fftSize)
	if err := plan.Inverse(res, prod); err != nil {
		return nil, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	// Rearrange circular correlation into linear order: negative lags live
	// at the tail of the inverse transform.
	out := make([]float64, 2*n-1)
	for i := 0; i < n; i++ {
		out[n-1+i] = real(res[i])
	}
	for i := 0; i < n-1; i++ {
		out[i] = real(res[fftSize-n+1+i])
	}

	return out, nil
}

// medianLogStep returns the median spacing of the spectrum's wavelength
// axis in log10 space.
func medianLogStep(s spectrum.Spectrum) float64 {
	wl := s.Wavelength()

	steps := make([]float64, len(wl)-1)
	for i := range steps {
		steps[i] = math.Log10(wl[i+1]) - math.Log10(wl[i])
	}

	sort.Float64s(steps)

	mid := len(steps) / 2
	if len(steps)%2 == 0 {
		return (steps[mid-1] + steps[mid]) / 2
	}

	return steps[mid]
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
