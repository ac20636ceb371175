package pipeline_test

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-redshift/continuum"
	"github.com/cwbudde/algo-redshift/internal/testutil"
	"github.com/cwbudde/algo-redshift/lowpass"
	"github.com/cwbudde/algo-redshift/pipeline"
	"github.com/cwbudde/algo-redshift/spectrum"
	"github.com/cwbudde/algo-redshift/xcorr"
)

var restLines = []float64{3934, 4305, 4861, 5175, 5894, 6563, 8542}

// galaxyTemplate builds a rest-frame template: smooth continuum with
// absorption lines on a 1-angstrom linear grid.
func galaxyTemplate(t *testing.T) spectrum.Spectrum {
	t.Helper()

	wl := testutil.LinearGrid(3000, 9000, 6001)
	flux := testutil.GalaxyFlux(wl, restLines)

	s, err := spectrum.New(wl, flux)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}

func TestKnownShiftRecovery(t *testing.T) {
	const zTrue = 0.758

	tmpl := galaxyTemplate(t)

	obs, err := tmpl.Redshifted(zTrue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Perturb the mock observation so the band-limiting filter has real
	// noise to suppress.
	noisy := obs.Flux()
	for i, v := range testutil.DeterministicNoise(42, 0.05, len(noisy)) {
		noisy[i] += v
	}

	obs, err = obs.WithFlux(noisy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := pipeline.Estimate(obs, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	relErr := math.Abs(res.Redshift-zTrue) / zTrue
	if relErr > 0.01 {
		t.Errorf("recovered z = %v, want %v (relative error %v)", res.Redshift, zTrue, relErr)
	}
}

func TestSelfEstimateNearZero(t *testing.T) {
	tmpl := galaxyTemplate(t)

	res, err := pipeline.Estimate(tmpl, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Observation and template get different continuum treatments, so
	// allow up to roughly one correlation pixel of drift.
	if math.Abs(res.Redshift) > 2e-4 {
		t.Errorf("self estimate z = %v, want ~0", res.Redshift)
	}
}

func TestIntermediatesExposed(t *testing.T) {
	tmpl := galaxyTemplate(t)

	obs, err := tmpl.Redshifted(0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := pipeline.Estimate(obs, tmpl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Observation.Len() != obs.Len() {
		t.Errorf("continuum-subtracted observation has %d samples, want %d", res.Observation.Len(), obs.Len())
	}
	if res.Template.Len() != tmpl.Len() {
		t.Errorf("continuum-subtracted template has %d samples, want %d", res.Template.Len(), tmpl.Len())
	}
	if res.Filtered.Len() != obs.Len() {
		t.Errorf("filtered observation has %d samples, want %d", res.Filtered.Len(), obs.Len())
	}

	// Default operating point: fc=0.05, b=0.49 gives a 9-tap kernel.
	if res.Kernel.Len() != 9 {
		t.Errorf("kernel has %d taps, want 9", res.Kernel.Len())
	}

	if len(res.Correlation.Lag) == 0 || len(res.Correlation.Lag) != len(res.Correlation.Correlation) {
		t.Error("correlation intermediate missing or misaligned")
	}

	if len(res.Peak.Lag) == 0 {
		t.Error("peak diagnostic window missing")
	}

	if res.Redshift != res.Peak.Redshift || res.Velocity != res.Peak.Velocity {
		t.Error("top-level scalars disagree with peak fit")
	}
}

func TestStageErrorsPropagate(t *testing.T) {
	tmpl := galaxyTemplate(t)

	tiny, err := spectrum.New(
		[]float64{4000, 4010, 4020, 4030, 4040},
		[]float64{1, 2, 3, 2, 1},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	disjoint, err := spectrum.New(
		testutil.LinearGrid(20000, 21000, 200),
		testutil.DeterministicNoise(7, 1, 200),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		obs     spectrum.Spectrum
		tmpl    spectrum.Spectrum
		opts    []pipeline.Option
		wantErr error
	}{
		{
			name:    "underdetermined template continuum",
			obs:     tmpl,
			tmpl:    tiny,
			opts:    []pipeline.Option{pipeline.WithTemplateDegree(5)},
			wantErr: continuum.ErrTooFewSamples,
		},
		{
			name:    "invalid cutoff",
			obs:     tmpl,
			tmpl:    tmpl,
			opts:    []pipeline.Option{pipeline.WithCutoff(0.6)},
			wantErr: lowpass.ErrInvalidCutoff,
		},
		{
			name:    "disjoint coverage",
			obs:     disjoint,
			tmpl:    tmpl,
			wantErr: xcorr.ErrInsufficientOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.Estimate(tt.obs, tt.tmpl, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
