package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality for frame analysis
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the Fast Fourier Transform using mjibson/go-dsp.
// Takes []float64 input and returns []complex128 output.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// MagnitudeSpectrum computes the magnitude of the positive-frequency half
// of the spectrum (DC through Nyquist inclusive).
func (f *FFT) MagnitudeSpectrum(x []float64) []float64 {
	spectrum := f.Compute(x)
	if len(spectrum) == 0 {
		return []float64{}
	}

	bins := len(spectrum)/2 + 1
	magnitude := make([]float64, bins)
	for i := 0; i < bins; i++ {
		magnitude[i] = cmplx.Abs(spectrum[i])
	}

	return magnitude
}

// BinFrequency converts a bin index to its center frequency in Hz
func BinFrequency(bin int, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0.0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}
