package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBufferDuration(t *testing.T) {
	assert := assert.New(t)

	buf := NewBuffer(make([]float64, 44100), 44100)
	assert.Equal(time.Second, buf.Duration())
	assert.Equal(44100, buf.Len())

	empty := NewBuffer(nil, 0)
	assert.Equal(time.Duration(0), empty.Duration())
}

func TestRMS(t *testing.T) {
	assert := assert.New(t)

	assert.Zero(RMS(nil))
	assert.InDelta(1.0, RMS([]float64{1, -1, 1, -1}), 1e-12)

	// RMS of a full-scale sine is 1/sqrt(2)
	sine := make([]float64, 44100)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * 100 * float64(i) / 44100)
	}
	assert.InDelta(1.0/math.Sqrt2, RMS(sine), 1e-3)
}

func TestPeak(t *testing.T) {
	assert := assert.New(t)

	assert.Zero(Peak(nil))
	assert.InDelta(0.8, Peak([]float64{0.1, -0.8, 0.3}), 1e-12)
}

func TestMeanAndSum(t *testing.T) {
	assert := assert.New(t)

	data := []float64{1, 2, 3, 4}
	assert.InDelta(2.5, Mean(data), 1e-12)
	assert.InDelta(10.0, Sum(data), 1e-12)
	assert.Zero(Mean(nil))
	assert.Zero(Sum(nil))
}

func TestRemoveDCOffset(t *testing.T) {
	assert := assert.New(t)

	// A sine riding on a constant offset should come back centered
	biased := make([]float64, 44100)
	for i := range biased {
		biased[i] = 0.3 + 0.5*math.Sin(2*math.Pi*220*float64(i)/44100)
	}

	filtered := RemoveDC(biased)
	assert.Len(filtered, len(biased))
	assert.InDelta(0.0, Mean(filtered[4410:]), 0.01, "offset removed after settling")
	assert.Empty(RemoveDC(nil))
}

func TestMedianDoesNotMutate(t *testing.T) {
	assert := assert.New(t)

	data := []float64{5, 1, 3}
	assert.InDelta(3.0, Median(data), 1e-12)
	assert.Equal([]float64{5, 1, 3}, data)
	assert.Zero(Median(nil))
}
