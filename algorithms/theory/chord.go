package theory

// Quality represents the quality/type of a chord
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityMajorSeventh
	QualityDominantSeventh
	QualityMinorSeventh
	QualityHalfDiminishedSeventh
)

// qualityIntervals maps each quality to its chord-tone offsets from the root
var qualityIntervals = map[Quality][]int{
	QualityMajor:                 {0, 4, 7},
	QualityMinor:                 {0, 3, 7},
	QualityDiminished:            {0, 3, 6},
	QualityMajorSeventh:          {0, 4, 7, 11},
	QualityDominantSeventh:       {0, 4, 7, 10},
	QualityMinorSeventh:          {0, 3, 7, 10},
	QualityHalfDiminishedSeventh: {0, 3, 6, 10},
}

// qualitySuffixes render a quality in a chord symbol
var qualitySuffixes = map[Quality]string{
	QualityMajor:                 "",
	QualityMinor:                 "m",
	QualityDiminished:            "°",
	QualityMajorSeventh:          "maj7",
	QualityDominantSeventh:       "7",
	QualityMinorSeventh:          "m7",
	QualityHalfDiminishedSeventh: "ø7",
}

func (q Quality) String() string {
	switch q {
	case QualityMajor:
		return "major"
	case QualityMinor:
		return "minor"
	case QualityDiminished:
		return "diminished"
	case QualityMajorSeventh:
		return "major seventh"
	case QualityDominantSeventh:
		return "dominant seventh"
	case QualityMinorSeventh:
		return "minor seventh"
	case QualityHalfDiminishedSeventh:
		return "half-diminished seventh"
	default:
		return "unknown"
	}
}

// HasSeventh reports whether the quality contains a seventh tone
func (q Quality) HasSeventh() bool {
	return len(qualityIntervals[q]) == 4
}

// Template is a chord candidate derived deterministically from a key:
// a root pitch class, a quality, and the scale degree it was built on.
type Template struct {
	Root    int     `json:"root"`    // Root pitch class (0=C .. 11=B)
	Quality Quality `json:"quality"` // Chord quality
	Degree  int     `json:"degree"`  // Scale degree index (0..6)
	Label   string  `json:"label"`   // Roman-numeral degree label
	Tones   []int   `json:"tones"`   // Chord tones mod 12, root first
}

// NewTemplate builds a template, computing chord tones from the fixed
// interval table modulo 12.
func NewTemplate(root int, quality Quality, degree int, label string) Template {
	intervals := qualityIntervals[quality]
	tones := make([]int, len(intervals))
	for i, interval := range intervals {
		tones[i] = (root + interval) % 12
	}

	return Template{
		Root:    root,
		Quality: quality,
		Degree:  degree,
		Label:   label,
		Tones:   tones,
	}
}

// Symbol returns the display symbol (e.g. "C", "Am", "G7", "Bø7")
func (t Template) Symbol() string {
	return PitchClassName(t.Root) + qualitySuffixes[t.Quality]
}

// Third returns the pitch class of the chord third
func (t Template) Third() int {
	return t.Tones[1]
}

// Seventh returns the pitch class of the seventh tone, if the quality has one
func (t Template) Seventh() (int, bool) {
	if !t.Quality.HasSeventh() {
		return 0, false
	}
	return t.Tones[3], true
}

// HasTone reports whether a pitch class is one of the chord tones
func (t Template) HasTone(pitchClass int) bool {
	for _, tone := range t.Tones {
		if tone == pitchClass {
			return true
		}
	}
	return false
}

// SharedTones counts pitch classes present in both templates
func (t Template) SharedTones(other Template) int {
	shared := 0
	for _, tone := range t.Tones {
		if other.HasTone(tone) {
			shared++
		}
	}
	return shared
}

// Fixed degree-to-quality tables for diatonic chord generation
var (
	majorTriadQualities   = [7]Quality{QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished}
	majorSeventhQualities = [7]Quality{QualityMajorSeventh, QualityMinorSeventh, QualityMinorSeventh, QualityMajorSeventh, QualityDominantSeventh, QualityMinorSeventh, QualityHalfDiminishedSeventh}
	minorTriadQualities   = [7]Quality{QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor}
	minorSeventhQualities = [7]Quality{QualityMinorSeventh, QualityHalfDiminishedSeventh, QualityMajorSeventh, QualityMinorSeventh, QualityMinorSeventh, QualityMajorSeventh, QualityDominantSeventh}

	majorTriadLabels   = [7]string{"I", "ii", "iii", "IV", "V", "vi", "vii°"}
	majorSeventhLabels = [7]string{"Imaj7", "ii7", "iii7", "IVmaj7", "V7", "vi7", "viiø7"}
	minorTriadLabels   = [7]string{"i", "ii°", "III", "iv", "v", "VI", "VII"}
	minorSeventhLabels = [7]string{"i7", "iiø7", "IIImaj7", "iv7", "v7", "VImaj7", "VII7"}
)

// dominantDegree is the scale degree of the dominant chord
const dominantDegree = 4

// DiatonicTemplates generates triad and seventh templates for every scale
// degree of a key, discarding any whose tones leave the diatonic scale.
// A minor key additionally gets the borrowed major dominant (V and V7),
// which is kept even though its raised leading tone lies outside the
// natural minor scale. Triads are listed before sevenths so that ranking
// ties resolve toward the simpler chord.
func DiatonicTemplates(tonic int, mode Mode) []Template {
	scale := DiatonicScale(tonic, mode)

	triadQualities := majorTriadQualities
	seventhQualities := majorSeventhQualities
	triadLabels := majorTriadLabels
	seventhLabels := majorSeventhLabels
	if mode == ModeMinor {
		triadQualities = minorTriadQualities
		seventhQualities = minorSeventhQualities
		triadLabels = minorTriadLabels
		seventhLabels = minorSeventhLabels
	}

	templates := make([]Template, 0, 16)

	for degree := 0; degree < 7; degree++ {
		root := scale[degree]

		triad := NewTemplate(root, triadQualities[degree], degree, triadLabels[degree])
		if tonesInScale(triad, scale) {
			templates = append(templates, triad)
		}
	}

	if mode == ModeMinor {
		root := scale[dominantDegree]
		templates = append(templates, NewTemplate(root, QualityMajor, dominantDegree, "V"))
	}

	for degree := 0; degree < 7; degree++ {
		root := scale[degree]

		seventh := NewTemplate(root, seventhQualities[degree], degree, seventhLabels[degree])
		if tonesInScale(seventh, scale) {
			templates = append(templates, seventh)
		}
	}

	if mode == ModeMinor {
		root := scale[dominantDegree]
		templates = append(templates, NewTemplate(root, QualityDominantSeventh, dominantDegree, "V7"))
	}

	return templates
}

func tonesInScale(t Template, scale []int) bool {
	for _, tone := range t.Tones {
		if !InScale(tone, scale) {
			return false
		}
	}
	return true
}
