package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakisara01/C6demo/algorithms/theory"
)

// melody synthesizes a sequence of equal-length tones
func melody(freqs []float64, noteSeconds float64) []float64 {
	var samples []float64
	for _, freq := range freqs {
		samples = append(samples, sine(freq, 0.5, noteSeconds)...)
	}
	return samples
}

var (
	c4      = theory.MIDIToFrequency(60)
	d4      = theory.MIDIToFrequency(62)
	e4      = theory.MIDIToFrequency(64)
	f4      = theory.MIDIToFrequency(65)
	g4      = theory.MIDIToFrequency(67)
	a3      = theory.MIDIToFrequency(57)
	a4      = theory.MIDIToFrequency(69)
	b3      = theory.MIDIToFrequency(59)
	b4      = theory.MIDIToFrequency(71)
	gs4     = theory.MIDIToFrequency(68)
	fourBy4 = TimeSignature{Upper: 4, Lower: 4}
)

func TestAnalyzeMajorScenario(t *testing.T) {
	assert := assert.New(t)

	// Four measures at 120 bpm: C,G,E,C / F,A,C,A / G,B,D,B / C,G,E,C
	samples := melody([]float64{
		c4, g4, e4, c4,
		f4, a4, c4, a4,
		g4, b4, d4, b4,
		c4, g4, e4, c4,
	}, 0.5)

	result, err := Analyze(samples, testSampleRate, 120, fourBy4)
	assert.NoError(err)
	assert.NotNil(result.Key)
	assert.Equal("C major", result.Key.Name())
	assert.Greater(result.Key.Confidence, 0.0)

	assert.Len(result.Measures, 4)
	assert.Equal([]string{"I", "IV", "V", "I"}, degreeLabels(result.Measures))

	for i := range result.Measures {
		assert.Equal(i, result.Measures[i].Index)
		assert.NotEmpty(result.Measures[i].Notes)
	}
	assert.Equal("C", result.Measures[0].Notes[0].Name)
}

func TestAnalyzeMinorScenarioWithBorrowedDominant(t *testing.T) {
	assert := assert.New(t)

	// A,C,E,C / D,F,A,F / E,G#,B,G# / A,C,E,C
	samples := melody([]float64{
		a3, c4, e4, c4,
		d4, f4, a4, f4,
		e4, gs4, b3, gs4,
		a3, c4, e4, c4,
	}, 0.5)

	result, err := Analyze(samples, testSampleRate, 120, fourBy4)
	assert.NoError(err)
	assert.NotNil(result.Key)
	assert.Equal("A minor", result.Key.Name())

	assert.Len(result.Measures, 4)
	assert.Equal([]string{"i", "iv", "V", "i"}, degreeLabels(result.Measures))
	assert.Equal("E", result.Measures[2].AutomaticChord.Symbol)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	samples := melody([]float64{c4, e4, g4, c4}, 0.5)

	first, err := Analyze(samples, testSampleRate, 120, fourBy4)
	assert.NoError(err)
	second, err := Analyze(samples, testSampleRate, 120, fourBy4)
	assert.NoError(err)

	assert.Equal(first, second)
}

func TestAnalyzeSilentTailMeasure(t *testing.T) {
	assert := assert.New(t)

	// One pitched measure followed by one silent measure
	samples := melody([]float64{c4, e4, g4, c4}, 0.5)
	samples = append(samples, make([]float64, 2*int(testSampleRate))...)

	result, err := Analyze(samples, testSampleRate, 120, fourBy4)
	assert.NoError(err)
	assert.NotNil(result.Key)
	assert.GreaterOrEqual(len(result.Measures), 2)

	tail := result.Measures[len(result.Measures)-1]
	assert.Empty(tail.Notes)
	assert.Nil(tail.AutomaticChord)
	assert.Nil(tail.EffectiveChord())
}

func TestAnalyzeSilenceYieldsEmptySuccess(t *testing.T) {
	assert := assert.New(t)

	result, err := Analyze(make([]float64, 4*44100), testSampleRate, 120, fourBy4)
	assert.NoError(err, "no detected pitch is a valid outcome, not an error")
	assert.Nil(result.Key)
	for i := range result.Measures {
		assert.Empty(result.Measures[i].Notes)
		assert.Nil(result.Measures[i].AutomaticChord)
	}
}

func TestAnalyzeShortBuffer(t *testing.T) {
	assert := assert.New(t)

	_, err := Analyze(make([]float64, 100), testSampleRate, 120, fourBy4)
	assert.ErrorIs(err, ErrInsufficientData)
}

func TestAnalyzeInvalidTempo(t *testing.T) {
	assert := assert.New(t)

	samples := melody([]float64{c4}, 0.5)

	_, err := Analyze(samples, testSampleRate, 0, fourBy4)
	assert.Error(err)

	_, err = Analyze(samples, testSampleRate, 120, TimeSignature{Upper: 0, Lower: 4})
	assert.Error(err)
}

func TestTrackPitchEntryPoint(t *testing.T) {
	assert := assert.New(t)

	frames, err := TrackPitch(sine(440.0, 0.5, 1.0), testSampleRate)
	assert.NoError(err)
	assert.NotEmpty(frames)

	_, err = TrackPitch(make([]float64, 10), testSampleRate)
	assert.ErrorIs(err, ErrInsufficientData)

	_, err = TrackPitch(sine(440.0, 0.5, 1.0), -1)
	assert.ErrorIs(err, ErrEngineUnavailable)
}

func TestSelectedChordOverridesAutomatic(t *testing.T) {
	assert := assert.New(t)

	measure := measureOf(0, 0, 4, 7, 0)
	measure.AutomaticChord = &ChordPrediction{Symbol: "C", DegreeLabel: "I", Confidence: 0.7}
	assert.Equal("C", measure.EffectiveChord().Symbol)

	measure.SelectedChord = &ChordPrediction{Symbol: "Am", DegreeLabel: "vi", Confidence: 1.0}
	assert.Equal("Am", measure.EffectiveChord().Symbol)
}
