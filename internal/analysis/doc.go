// Package analysis extracts orbital structure from recorded runs.
//
//   - [DominantPeriod]: period of a separation series via FFT peak picking
//   - [PowerSpectrum]: one-sided magnitude spectrum of a real series
//   - [LyapunovExponent]: divergence rate of two nearby copies of a scene
//   - [TraceToASCII]: projected body paths for the terminal
//
// A positive Lyapunov exponent indicates sensitive dependence on the initial
// positions:
//
//	lambda := analysis.LyapunovExponent(bodies, start, end, g, dt, duration, 1e-6)
//	if lambda > 0 {
//	    // small changes grow exponentially
//	}
package analysis
