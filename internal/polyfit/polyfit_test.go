package polyfit

import (
	"errors"
	"math"
	"testing"
)

func evalPower(coeffs []float64, x float64) float64 {
	var v float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

func TestFitExactPolynomial(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64 // ascending power
	}{
		{"constant", []float64{3.5}},
		{"linear", []float64{1, -2}},
		{"quadratic", []float64{2, -0.5, 0.25}},
		{"quintic", []float64{1, 0.1, -0.01, 1e-3, -1e-4, 1e-5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, 50)
			y := make([]float64, 50)
			for i := range x {
				x[i] = 4000 + 100*float64(i)
				y[i] = evalPower(tt.coeffs, x[i]/1000)
			}

			p, err := Fit(x, y, len(tt.coeffs)-1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i := range x {
				got := p.Eval(x[i])
				if math.Abs(got-y[i]) > 1e-8*math.Max(1, math.Abs(y[i])) {
					t.Fatalf("Eval(%v) = %v, want %v", x[i], got, y[i])
				}
			}
		})
	}
}

func TestPowerCoeffsMatchesEval(t *testing.T) {
	x := []float64{-10, -5, -1, 0, 2, 7, 11, 15}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3 - 2*xi + 0.5*xi*xi
	}

	p, err := Fit(x, y, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pc := p.PowerCoeffs()
	if len(pc) != 3 {
		t.Fatalf("got %d power coefficients, want 3", len(pc))
	}

	want := []float64{3, -2, 0.5}
	for i := range pc {
		if math.Abs(pc[i]-want[i]) > 1e-9 {
			t.Errorf("coeff[%d] = %v, want %v", i, pc[i], want[i])
		}
	}

	for _, xi := range []float64{-8.5, 0.3, 4.2, 13.7} {
		direct := p.Eval(xi)
		expanded := evalPower(pc, xi)
		if math.Abs(direct-expanded) > 1e-9*math.Max(1, math.Abs(direct)) {
			t.Errorf("Eval(%v) = %v but power expansion gives %v", xi, direct, expanded)
		}
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		y       []float64
		degree  int
		wantErr error
	}{
		{
			name:    "too few samples",
			x:       []float64{1, 2},
			y:       []float64{1, 2},
			degree:  2,
			wantErr: ErrTooFewSamples,
		},
		{
			name:    "length mismatch",
			x:       []float64{1, 2, 3},
			y:       []float64{1, 2},
			degree:  1,
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "negative degree",
			x:       []float64{1, 2, 3},
			y:       []float64{1, 2, 3},
			degree:  -1,
			wantErr: ErrInvalidDegree,
		},
		{
			name:    "degenerate abscissa",
			x:       []float64{2, 2, 2},
			y:       []float64{1, 2, 3},
			degree:  1,
			wantErr: ErrSingular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.x, tt.y, tt.degree)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFitLeastSquaresResidual(t *testing.T) {
	// Overdetermined noisy line: the fit must minimize the residual, so
	// perturbing either coefficient should never reduce it.
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0.1, 1.05, 1.9, 3.2, 3.85, 5.1}

	p, err := Fit(x, y, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	residual := func(c0, c1 float64) float64 {
		var sum float64
		for i := range x {
			d := y[i] - (c0 + c1*x[i])
			sum += d * d
		}
		return sum
	}

	pc := p.PowerCoeffs()
	base := residual(pc[0], pc[1])

	for _, d := range []float64{-0.01, 0.01} {
		if residual(pc[0]+d, pc[1]) < base-1e-12 {
			t.Errorf("perturbing intercept by %v reduced the residual", d)
		}
		if residual(pc[0], pc[1]+d) < base-1e-12 {
			t.Errorf("perturbing slope by %v reduced the residual", d)
		}
	}
}
