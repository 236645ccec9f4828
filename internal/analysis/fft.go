package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooFewSamples = errors.New("analysis: too few samples")
	ErrNoPeriod      = errors.New("analysis: series has no oscillation")
	ErrInvalidDt     = errors.New("analysis: sample interval must be positive")
)

// MinSamples is the shortest series DominantPeriod accepts.
const MinSamples = 8

// PowerSpectrum returns |X[k]| for k in [0, n/2).
func PowerSpectrum(data []float64) []float64 {
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}

	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in samples
// taken every dt. The peak bin is refined by parabolic interpolation.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	n := len(samples)
	if n < MinSamples {
		return 0, ErrTooFewSamples
	}
	if dt <= 0 {
		return 0, ErrInvalidDt
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range samples {
		centred[i] = v - mean
	}

	ps := PowerSpectrum(centred)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] <= 1e-12*float64(n) {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak > 1 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return float64(n) * dt / bin, nil
}
