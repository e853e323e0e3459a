package metrics

import (
	"math"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
)

// BandEnergyDB returns the average linear power of the spectral bins inside
// [lowHz, highHz], converted back to dB. If no bin falls inside the band
// (for example a band entirely above Nyquist), it returns the dsp.FloorDB
// sentinel instead of failing.
func BandEnergyDB(est dsp.SpectralEstimate, lowHz, highHz float64) float64 {
	sum := 0.0
	n := 0
	for i, f := range est.Freq {
		if f >= lowHz && f <= highHz {
			sum += math.Pow(10.0, est.Power[i]/10.0)
			n++
		}
	}
	if n == 0 {
		return dsp.FloorDB
	}
	return 10.0 * math.Log10(sum/float64(n)+dsp.EpsPower)
}
