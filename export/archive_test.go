package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakisara01/C6demo/algorithms/theory"
	"github.com/nakisara01/C6demo/transcribe"
)

func sampleResult() *transcribe.Result {
	return &transcribe.Result{
		Key: &transcribe.KeyEstimate{Tonic: 0, Mode: theory.ModeMajor, Confidence: 0.8},
		Measures: []transcribe.Measure{
			{
				Index: 0,
				Notes: []transcribe.NoteEvent{
					{PitchClass: 0, Name: "C", Frequency: 261.63, StartBeat: 0, DurationBeats: 1, Confidence: 0.9},
					{PitchClass: 7, Name: "G", Frequency: 392.0, StartBeat: 1, DurationBeats: 1, Confidence: 0.9},
				},
				AutomaticChord: &transcribe.ChordPrediction{Symbol: "C", DegreeLabel: "I", Confidence: 0.7},
			},
		},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	signature := transcribe.TimeSignature{Upper: 4, Lower: 4}
	session := NewSession("take1.wav", 120, signature, sampleResult())
	assert.NotEmpty(session.ID)

	path, err := Archive(session, dir)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, session.ID+".json.zst"), path)
	assert.True(IsArchived(session.ID, dir))

	loaded, err := Load(path)
	assert.NoError(err)
	assert.Equal(session.ID, loaded.ID)
	assert.Equal("take1.wav", loaded.Source)
	assert.InDelta(120.0, loaded.BPM, 1e-12)
	assert.Equal(signature, loaded.Signature)
	assert.NotNil(loaded.Result)
	assert.Equal("C major", loaded.Result.Key.Name())
	assert.Len(loaded.Result.Measures, 1)
	assert.Equal("C", loaded.Result.Measures[0].AutomaticChord.Symbol)
}

func TestArchiveRequiresSessionID(t *testing.T) {
	assert := assert.New(t)

	session := Session{}
	_, err := Archive(session, t.TempDir())
	assert.Error(err)
}

func TestLoadMissingArchive(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.json.zst"))
	assert.Error(err)
	assert.False(IsArchived("nope", t.TempDir()))
}
