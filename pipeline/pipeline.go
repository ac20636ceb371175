// Package pipeline chains the redshift estimation stages: continuum
// removal, band-limiting, cross-correlation, and peak refinement.
//
// Every intermediate product is exposed on [Result] so callers can render
// or inspect each stage, not just the final scalar.
package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-redshift/continuum"
	"github.com/cwbudde/algo-redshift/lowpass"
	"github.com/cwbudde/algo-redshift/peak"
	"github.com/cwbudde/algo-redshift/spectrum"
	"github.com/cwbudde/algo-redshift/xcorr"
)

// DefaultTemplateDegree is the polynomial order of the template continuum
// fit. The observation always uses the generic fit; the asymmetry is
// deliberate, since templates are smooth enough for an explicit low-order
// model.
const DefaultTemplateDegree = 5

type config struct {
	cutoff         float64
	transition     float64
	templateDegree int
	halfWidth      int
}

func defaultConfig() config {
	return config{
		cutoff:         lowpass.DefaultCutoff,
		transition:     lowpass.DefaultTransition,
		templateDegree: DefaultTemplateDegree,
		halfWidth:      peak.DefaultHalfWidth,
	}
}

// Option configures the estimation pipeline.
type Option func(*config)

// WithCutoff sets the low-pass cutoff fraction.
func WithCutoff(fc float64) Option {
	return func(c *config) {
		if fc > 0 {
			c.cutoff = fc
		}
	}
}

// WithTransition sets the low-pass transition-band fraction.
func WithTransition(b float64) Option {
	return func(c *config) {
		if b > 0 {
			c.transition = b
		}
	}
}

// WithTemplateDegree sets the template continuum polynomial order.
func WithTemplateDegree(degree int) Option {
	return func(c *config) {
		if degree >= 0 {
			c.templateDegree = degree
		}
	}
}

// WithHalfWidth sets the peak refinement window half-width in samples.
func WithHalfWidth(halfWidth int) Option {
	return func(c *config) {
		if halfWidth >= 1 {
			c.halfWidth = halfWidth
		}
	}
}

// Result holds the final estimate together with every intermediate stage.
type Result struct {
	// Observation and Template are the continuum-subtracted inputs.
	Observation spectrum.Spectrum
	Template    spectrum.Spectrum

	// Filtered is the band-limited observation fed into the correlator.
	Filtered spectrum.Spectrum

	// Kernel is the designed low-pass filter.
	Kernel lowpass.Kernel

	// Correlation is the velocity-lag correlation curve.
	Correlation xcorr.Result

	// Peak is the refined correlation peak.
	Peak peak.Fit

	// Velocity (km/s) and Redshift restate the peak estimate.
	Velocity float64
	Redshift float64
}

// Estimate runs the full chain on an observed spectrum and a rest-frame
// template. The template is never band-limited; only the observation is.
func Estimate(obs, tmpl spectrum.Spectrum, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	obsCurve, err := continuum.FitGeneric(obs)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: observation continuum: %w", err)
	}

	obsSub, err := continuum.Subtract(obs, obsCurve)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: observation continuum: %w", err)
	}

	tmplSub, err := continuum.Remove(tmpl, cfg.templateDegree)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: template continuum: %w", err)
	}

	kernel, err := lowpass.Design(cfg.cutoff, cfg.transition)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: filter design: %w", err)
	}

	filtered, err := lowpass.Apply(obsSub, kernel)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: filter: %w", err)
	}

	corr, err := xcorr.Correlate(filtered, tmplSub)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: correlate: %w", err)
	}

	fit, err := peak.Estimate(corr, cfg.halfWidth)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: peak: %w", err)
	}

	return Result{
		Observation: obsSub,
		Template:    tmplSub,
		Filtered:    filtered,
		Kernel:      kernel,
		Correlation: corr,
		Peak:        fit,
		Velocity:    fit.Velocity,
		Redshift:    fit.Redshift,
	}, nil
}
