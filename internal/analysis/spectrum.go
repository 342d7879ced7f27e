package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

const minSamples = 4

// PowerSpectrum returns |X_k| for k in [0, n/2] of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	centered := append([]float64(nil), data...)
	floats.AddConst(-stat.Mean(data, nil), centered)

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(data)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in units of dt, of the strongest
// frequency in samples taken every dt. It fails with dynamo.ErrEmptySeries
// when there are too few samples or the series is constant.
func DominantPeriod(samples []float64, dt float64) (float64, error) {
	if len(samples) < minSamples {
		return 0, dynamo.ErrEmptySeries
	}

	ps := PowerSpectrum(samples)
	peak, peakPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peakPower {
			peak, peakPower = k, ps[k]
		}
	}
	if peak == 0 || peakPower < 1e-12 {
		return 0, dynamo.ErrEmptySeries
	}

	return float64(len(samples)) * dt / float64(peak), nil
}
