package transcribe

import (
	"github.com/nakisara01/C6demo/algorithms/theory"
)

// Empirical tonal profiles (EDMA). Index 0 is the tonic; correlation
// rotates the profile under each candidate tonic.
var (
	majorKeyProfile = [12]float64{17.7661, 0.145624, 14.9265, 0.160186, 19.8049, 11.3587, 0.291248, 22.062, 0.145624, 8.15494, 0.232998, 4.95122}
	minorKeyProfile = [12]float64{18.2648, 0.737619, 14.0499, 16.8599, 0.702494, 14.4362, 0.702494, 18.6161, 4.56621, 1.93186, 7.37619, 1.75623}
)

// relativeTieThreshold is the relative score margin under which the
// major/minor decision falls back to raw tonic weight. Relative keys
// (e.g. C major / A minor) share a histogram shape, so close correlation
// scores are not trustworthy on their own.
const relativeTieThreshold = 0.12

// KeyEstimator picks a single global (tonic, mode) from the duration
// histogram of all note events.
//
// Reference: Krumhansl, C. (1990). "Cognitive Foundations of Musical Pitch"
// (profile-correlation method; profile values follow the EDMA variant).
type KeyEstimator struct{}

// NewKeyEstimator creates a key estimator
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{}
}

// Estimate returns the best (tonic, mode) for the given measures, or nil
// when no pitched content exists. Computed once per analysis run.
func (ke *KeyEstimator) Estimate(measures []Measure) *KeyEstimate {
	hist := pitchClassHistogram(measures)

	total := 0.0
	for _, w := range hist {
		total += w
	}
	if total < 1e-12 {
		return nil
	}

	bestMajorTonic, bestMajorScore := ke.bestTonic(hist, majorKeyProfile)
	bestMinorTonic, bestMinorScore := ke.bestTonic(hist, minorKeyProfile)

	tonic, mode := bestMajorTonic, theory.ModeMajor
	altTonic := bestMinorTonic
	bestScore, altScore := bestMajorScore, bestMinorScore
	if bestMinorScore > bestMajorScore {
		tonic, mode = bestMinorTonic, theory.ModeMinor
		altTonic = bestMajorTonic
		bestScore, altScore = bestMinorScore, bestMajorScore
	}

	margin := 0.0
	if bestScore > 0 {
		margin = (bestScore - altScore) / bestScore
	}

	// Close scores: trust literal occurrences of the tonic pitch over the
	// correlation ranking.
	if margin < relativeTieThreshold && hist[altTonic] > hist[tonic] {
		tonic = altTonic
		if mode == theory.ModeMajor {
			mode = theory.ModeMinor
		} else {
			mode = theory.ModeMajor
		}
	}

	return &KeyEstimate{
		Tonic:      tonic,
		Mode:       mode,
		Confidence: clamp01(0.2 + 0.8*margin),
	}
}

// bestTonic scores all 12 tonics against one mode profile and returns the
// winner. Score is the dot product of the histogram with the rotated
// profile.
func (ke *KeyEstimator) bestTonic(hist [12]float64, profile [12]float64) (int, float64) {
	bestTonic := 0
	bestScore := -1.0

	for tonic := 0; tonic < 12; tonic++ {
		score := 0.0
		for i := 0; i < 12; i++ {
			score += hist[i] * profile[(i-tonic+12)%12]
		}
		if score > bestScore {
			bestScore = score
			bestTonic = tonic
		}
	}

	return bestTonic, bestScore
}

// pitchClassHistogram accumulates a duration-weighted 12-bin histogram
// across every note event in every measure
func pitchClassHistogram(measures []Measure) [12]float64 {
	var hist [12]float64
	for _, measure := range measures {
		for _, note := range measure.Notes {
			hist[note.PitchClass%12] += note.DurationBeats
		}
	}
	return hist
}
