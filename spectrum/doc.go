// Package spectrum defines the 1-D spectrum value type shared by all
// pipeline stages.
//
// A [Spectrum] holds index-aligned wavelength, flux, and optional
// uncertainty samples. Wavelengths are stored in angstroms and velocities
// are expressed in km/s throughout the module; unit conversion is a caller
// concern. Values are immutable after construction: every transformation
// returns a new Spectrum.
package spectrum
