// Package polyfit provides unweighted least-squares polynomial fitting
// shared by the continuum and peak estimation packages.
//
// Fits run on an affine map of the abscissa onto [-1, 1]; normal equations
// on raw angstrom- or km/s-scale values become numerically singular beyond
// degree two or three, while the mapped system stays well conditioned for
// the low orders used here.
package polyfit

import (
	"errors"
	"math"
)

// Errors returned by Fit.
var (
	ErrTooFewSamples  = errors.New("polyfit: fewer samples than coefficients")
	ErrSingular       = errors.New("polyfit: singular normal equations")
	ErrLengthMismatch = errors.New("polyfit: x and y length mismatch")
	ErrInvalidDegree  = errors.New("polyfit: degree must be >= 0")
)

// Poly is a fitted polynomial. Coefficients are stored on the mapped
// domain; Eval and PowerCoeffs handle the mapping transparently.
type Poly struct {
	coeffs []float64 // ascending power, mapped domain
	xmin   float64
	xmax   float64
}

// Fit computes the least-squares polynomial of the given degree through
// (x, y). It requires len(x) >= degree+1 samples and at least two distinct
// abscissa values for degree >= 1.
func Fit(x, y []float64, degree int) (Poly, error) {
	if degree < 0 {
		return Poly{}, ErrInvalidDegree
	}
	if len(x) != len(y) {
		return Poly{}, ErrLengthMismatch
	}

	n := degree + 1
	if len(x) < n {
		return Poly{}, ErrTooFewSamples
	}

	xmin, xmax := x[0], x[0]
	for _, v := range x {
		xmin = math.Min(xmin, v)
		xmax = math.Max(xmax, v)
	}
	if degree >= 1 && xmax == xmin {
		return Poly{}, ErrSingular
	}

	p := Poly{xmin: xmin, xmax: xmax}

	// Normal equations A c = r built from mapped-domain power sums.
	a := make([][]float64, n)
	for j := range a {
		a[j] = make([]float64, n)
	}
	r := make([]float64, n)

	powers := make([]float64, 2*degree+1)
	for i, xi := range x {
		t := p.mapX(xi)

		tp := 1.0
		for k := range powers {
			powers[k] = tp
			tp *= t
		}

		for j := 0; j < n; j++ {
			r[j] += y[i] * powers[j]
			for k := 0; k < n; k++ {
				a[j][k] += powers[j+k]
			}
		}
	}

	coeffs, err := solve(a, r)
	if err != nil {
		return Poly{}, err
	}

	p.coeffs = coeffs

	return p, nil
}

// Degree returns the fitted polynomial degree.
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Eval evaluates the polynomial at x using Horner's method.
func (p Poly) Eval(x float64) float64 {
	t := p.mapX(x)

	var v float64
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		v = v*t + p.coeffs[i]
	}

	return v
}

// PowerCoeffs expands the fit into power-basis coefficients of the original
// (unmapped) variable, ascending order: c[0] + c[1]*x + c[2]*x^2 + ...
func (p Poly) PowerCoeffs() []float64 {
	if len(p.coeffs) == 0 {
		return nil
	}

	// Compose p(t) with the affine map t = s*x + o via polynomial Horner:
	// result = ((c_n*(sx+o) + c_{n-1})*(sx+o) + ...) + c_0
	s, o := p.mapScale()

	out := []float64{p.coeffs[len(p.coeffs)-1]}
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		next := make([]float64, len(out)+1)
		for k, c := range out {
			next[k] += c * o
			next[k+1] += c * s
		}
		next[0] += p.coeffs[i]
		out = next
	}

	return out
}

func (p Poly) mapScale() (scale, offset float64) {
	if p.xmax == p.xmin {
		return 1, -p.xmin
	}

	scale = 2 / (p.xmax - p.xmin)

	return scale, -(p.xmax + p.xmin) / (p.xmax - p.xmin)
}

func (p Poly) mapX(x float64) float64 {
	s, o := p.mapScale()
	return s*x + o
}

// solve performs Gaussian elimination with partial pivoting on the n x n
// system a*c = r. a and r are clobbered.
func solve(a [][]float64, r []float64) ([]float64, error) {
	n := len(r)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}

		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, ErrSingular
		}

		a[col], a[pivot] = a[pivot], a[col]
		r[col], r[pivot] = r[pivot], r[col]

		inv := 1 / a[col][col]
		for row := col + 1; row < n; row++ {
			f := a[row][col] * inv
			if f == 0 {
				continue
			}

			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			r[row] -= f * r[col]
		}
	}

	c := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		v := r[row]
		for k := row + 1; k < n; k++ {
			v -= a[row][k] * c[k]
		}
		c[row] = v / a[row][row]
	}

	return c, nil
}
