package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakisara01/C6demo/algorithms/theory"
)

// measureOf builds a measure of one-beat notes from pitch classes
func measureOf(index int, pitchClasses ...int) Measure {
	m := Measure{Index: index, StartTime: float64(index) * 2.0}
	for i, pc := range pitchClasses {
		m.Notes = append(m.Notes, NoteEvent{
			PitchClass:    pc,
			Name:          theory.PitchClassName(pc),
			Frequency:     theory.MIDIToFrequency(60 + pc),
			StartBeat:     float64(i),
			DurationBeats: 1.0,
			Confidence:    0.9,
		})
	}
	return m
}

func TestEstimateMajorKey(t *testing.T) {
	assert := assert.New(t)

	// C,G,E,C / F,A,C,A / G,B,D,B / C,G,E,C
	measures := []Measure{
		measureOf(0, 0, 7, 4, 0),
		measureOf(1, 5, 9, 0, 9),
		measureOf(2, 7, 11, 2, 11),
		measureOf(3, 0, 7, 4, 0),
	}

	key := NewKeyEstimator().Estimate(measures)
	assert.NotNil(key)
	assert.Equal(0, key.Tonic)
	assert.Equal(theory.ModeMajor, key.Mode)
	assert.Equal("C major", key.Name())
	assert.Greater(key.Confidence, 0.0)
	assert.LessOrEqual(key.Confidence, 1.0)
}

func TestEstimateMinorKeyOverRelativeMajor(t *testing.T) {
	assert := assert.New(t)

	// A,C,E,C / D,F,A,F / E,G#,B,G# / A,C,E,C
	measures := []Measure{
		measureOf(0, 9, 0, 4, 0),
		measureOf(1, 2, 5, 9, 5),
		measureOf(2, 4, 8, 11, 8),
		measureOf(3, 9, 0, 4, 0),
	}

	key := NewKeyEstimator().Estimate(measures)
	assert.NotNil(key)
	assert.Equal(9, key.Tonic)
	assert.Equal(theory.ModeMinor, key.Mode)
	assert.Equal("A minor", key.Name())
	assert.Greater(key.Confidence, 0.0)
}

func TestEstimateNoPitchedContent(t *testing.T) {
	assert := assert.New(t)

	estimator := NewKeyEstimator()
	assert.Nil(estimator.Estimate(nil))
	assert.Nil(estimator.Estimate([]Measure{{Index: 0}, {Index: 1}}))
}

func TestEstimateTransposedKey(t *testing.T) {
	assert := assert.New(t)

	// The C major scenario transposed up 7 semitones lands in G major
	measures := []Measure{
		measureOf(0, 7, 2, 11, 7),
		measureOf(1, 0, 4, 7, 4),
		measureOf(2, 2, 6, 9, 6),
		measureOf(3, 7, 2, 11, 7),
	}

	key := NewKeyEstimator().Estimate(measures)
	assert.NotNil(key)
	assert.Equal(7, key.Tonic)
	assert.Equal(theory.ModeMajor, key.Mode)
}
