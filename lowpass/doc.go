// Package lowpass designs Blackman-windowed-sinc low-pass FIR kernels and
// applies them to spectra.
//
// The filter band-limits an observed spectrum before cross-correlation so
// that high-frequency noise does not wash out the correlation peak. Kernels
// are parameterized by cutoff and transition-band fractions of the sampling
// rate, both in (0, 0.5), and are normalized to unity DC gain.
package lowpass
