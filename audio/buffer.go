package audio

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Buffer holds a fully captured mono recording as float64 PCM.
// The analysis pipeline operates on complete buffers, never streams.
type Buffer struct {
	Samples    []float64 `json:"-"`
	SampleRate float64   `json:"sample_rate"`
}

// NewBuffer creates a buffer from raw samples
func NewBuffer(samples []float64, sampleRate float64) *Buffer {
	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Duration returns the buffer length in wall-clock time
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(b.Samples)) / b.SampleRate
	return time.Duration(seconds * float64(time.Second))
}

// Len returns the number of samples
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// RMS calculates root mean square amplitude of a sample slice
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, s := range samples {
		sumSquares += s * s
	}

	return math.Sqrt(sumSquares / float64(len(samples)))
}

// Peak returns the maximum absolute sample value
func Peak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Sum totals a slice using gonum
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// Median returns the middle value of a slice without mutating the input
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	floats.Argsort(sorted, make([]int, len(sorted)))

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
