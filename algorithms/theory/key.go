package theory

// Mode represents major or minor mode
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	switch m {
	case ModeMajor:
		return "major"
	case ModeMinor:
		return "minor"
	default:
		return "unknown"
	}
}

// Mode-specific scale interval patterns in semitones from the tonic
var (
	majorScaleIntervals = []int{0, 2, 4, 5, 7, 9, 11}
	minorScaleIntervals = []int{0, 2, 3, 5, 7, 8, 10}
)

// ScaleIntervals returns the diatonic interval pattern for a mode
func ScaleIntervals(mode Mode) []int {
	if mode == ModeMinor {
		return minorScaleIntervals
	}
	return majorScaleIntervals
}

// DiatonicScale returns the 7 pitch classes of a key, tonic first
func DiatonicScale(tonic int, mode Mode) []int {
	intervals := ScaleIntervals(mode)
	scale := make([]int, len(intervals))
	for i, interval := range intervals {
		scale[i] = (tonic + interval) % 12
	}
	return scale
}

// InScale reports whether a pitch class belongs to the given scale
func InScale(pitchClass int, scale []int) bool {
	for _, pc := range scale {
		if pc == pitchClass {
			return true
		}
	}
	return false
}

// KeyName returns a human-readable key name (e.g. "C major")
func KeyName(tonic int, mode Mode) string {
	return PitchClassName(tonic) + " " + mode.String()
}
