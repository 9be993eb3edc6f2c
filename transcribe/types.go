package transcribe

import (
	"github.com/nakisara01/C6demo/algorithms/theory"
)

// PitchFrame is one hop of fundamental-frequency analysis. A frame with
// Voiced=false carries no frequency; Frequency is only meaningful when
// Voiced is true.
type PitchFrame struct {
	Time       float64 `json:"time"`      // Frame start in seconds
	Duration   float64 `json:"duration"`  // Hop interval in seconds
	Frequency  float64 `json:"frequency"` // Estimated fundamental in Hz (voiced only)
	Voiced     bool    `json:"voiced"`    // Whether a discernible pitch was found
	Confidence float64 `json:"confidence"`
	Amplitude  float64 `json:"amplitude"` // RMS of the unwindowed frame
}

// NoteEvent is a segmented note inside a measure. Created once during
// segmentation and never mutated afterwards.
type NoteEvent struct {
	PitchClass    int     `json:"pitch_class"` // 0=C .. 11=B
	Name          string  `json:"name"`        // Pitch class name
	Frequency     float64 `json:"frequency"`   // Averaged over the note's frames
	StartBeat     float64 `json:"start_beat"`  // Relative to measure start
	DurationBeats float64 `json:"duration_beats"`
	Confidence    float64 `json:"confidence"` // Averaged over the note's frames
}

// ChordPrediction is one ranked chord suggestion for a measure.
// Value type; two predictions are the same suggestion when symbol and
// degree label both match.
type ChordPrediction struct {
	Symbol      string  `json:"symbol"`       // Display symbol (e.g. "Am", "G7")
	DegreeLabel string  `json:"degree_label"` // Roman-numeral label (e.g. "vi", "V7")
	Confidence  float64 `json:"confidence"`
}

// Measure is one bar of the transcription. SelectedChord is an external
// override supplied by a presentation layer; the engine only ever writes
// AutomaticChord.
type Measure struct {
	Index            int               `json:"index"`      // 0-based, strictly increasing
	StartTime        float64           `json:"start_time"` // Seconds
	Notes            []NoteEvent       `json:"notes"`      // Ordered by start beat
	ChordSuggestions []ChordPrediction `json:"chord_suggestions,omitempty"`
	AutomaticChord   *ChordPrediction  `json:"automatic_chord,omitempty"`
	SelectedChord    *ChordPrediction  `json:"selected_chord,omitempty"`
}

// EffectiveChord returns the selected chord when present, otherwise the
// engine's automatic pick. Nil means the measure has no chord.
func (m *Measure) EffectiveChord() *ChordPrediction {
	if m.SelectedChord != nil {
		return m.SelectedChord
	}
	return m.AutomaticChord
}

// KeyEstimate is the single global key for an analysis run
type KeyEstimate struct {
	Tonic      int         `json:"tonic"` // Pitch class of the tonic
	Mode       theory.Mode `json:"mode"`
	Confidence float64     `json:"confidence"`
}

// Name returns a human-readable key name (e.g. "A minor")
func (k KeyEstimate) Name() string {
	return theory.KeyName(k.Tonic, k.Mode)
}

// TimeSignature is a declared meter (e.g. 4/4, 6/8)
type TimeSignature struct {
	Upper int `json:"upper"` // Beats per measure
	Lower int `json:"lower"` // Beat unit
}

// Result is the full output of one analysis run. A nil Key with an empty
// measure list is a valid result for a recording with no pitched content.
type Result struct {
	Measures []Measure    `json:"measures"`
	Key      *KeyEstimate `json:"key,omitempty"`
}

// clamp01 clamps confidence and weight values to [0,1] before they are
// stored or compared
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
