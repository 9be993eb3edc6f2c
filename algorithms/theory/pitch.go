package theory

import "math"

// pitchClassNames are the 12 enharmonic-normalized pitch class names
// (sharps only, matching equal-tempered chromatic order from C)
var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ReferenceFrequency is the tuning standard A4 in Hz
const ReferenceFrequency = 440.0

// FrequencyToMIDI converts a frequency to a fractional MIDI note number
// (A4 = 440 Hz = MIDI 69)
func FrequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0.0
	}
	return 69.0 + 12.0*math.Log2(frequency/ReferenceFrequency)
}

// MIDIToFrequency converts a MIDI note number to its frequency in Hz
func MIDIToFrequency(note int) float64 {
	return ReferenceFrequency * math.Pow(2.0, float64(note-69)/12.0)
}

// NearestMIDINote rounds a frequency to the nearest equal-tempered MIDI note
func NearestMIDINote(frequency float64) int {
	return int(math.Round(FrequencyToMIDI(frequency)))
}

// PitchClassOf maps a frequency to its pitch class (0=C .. 11=B) by
// nearest-semitone rounding. Octave doubling/halving maps to the same class.
func PitchClassOf(frequency float64) int {
	note := NearestMIDINote(frequency)
	pc := note % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// PitchClassName returns the name for a pitch class index
func PitchClassName(pitchClass int) string {
	pc := pitchClass % 12
	if pc < 0 {
		pc += 12
	}
	return pitchClassNames[pc]
}
