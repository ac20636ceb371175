// Package xcorr computes the Fourier cross-correlation of an observed
// spectrum against a rest-frame template as a function of velocity lag.
//
// Cross-correlation in velocity space requires uniform sampling in
// log-wavelength, so the correlator first regrids both spectra onto a
// common uniform log10-wavelength grid. The grid step fixes the
// pixel-to-velocity conversion: a lag of l pixels corresponds to
// c * (10^(l*dlog10(lambda)) - 1) km/s, which is c * ln(10) *
// dlog10(lambda) per pixel in the small-lag limit.
//
// Positive lag means the observation is shifted redward of the template,
// so a redshifted observation produces a correlation peak at positive
// velocity.
package xcorr
