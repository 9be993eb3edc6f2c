package transcribe

import (
	"sort"

	"github.com/nakisara01/C6demo/algorithms/theory"
)

// Scoring weights and thresholds for chord inference
const (
	coverageWeight  = 0.6
	rootWeight      = 0.2
	thirdWeight     = 0.15
	seventhWeight   = 0.1
	scalePenalty    = 0.4
	candidateFloor  = 0.15 // Minimum base confidence to become a candidate
	selectionFloor  = 0.25 // Minimum contextual score to pick a fresh chord
	repeatBonus     = 0.06
	sharedToneBonus = 0.05
	chromaticWeight = 0.1
	wideLeapPenalty = 0.05 // Root interval of at least 7 semitones
	leapExtraMargin = 0.04 // Interval >= 5 semitones with no shared tone
	reuseScale      = 0.6
	reuseFloor      = 0.3
	maxSuggestions  = 5
)

// transitionBonuses rewards common progressions, indexed by scale degree
// of the previous and candidate chords (0=tonic .. 6=leading tone). The
// same table serves both modes: a dominant-to-tonic move is degree 4 to
// degree 0 whether spelled V->I or V->i. Unlisted pairs contribute zero.
var transitionBonuses = [7][7]float64{
	0: {3: 0.12, 4: 0.12, 5: 0.08},
	1: {4: 0.15},
	2: {5: 0.08},
	3: {0: 0.14, 4: 0.12},
	4: {0: 0.18, 5: 0.08},
	5: {1: 0.08, 3: 0.10},
	6: {0: 0.12},
}

// ChordEngine produces per-measure chord suggestions and an automatic pick
// for an estimated key. Selection is sequential: each measure is scored in
// the context of the previously chosen chord, threaded through the fold as
// an explicit accumulator so each step stays a pure function.
type ChordEngine struct {
	key       KeyEstimate
	scale     []int
	templates []theory.Template
}

// NewChordEngine creates an engine for the given key. Both triad and
// seventh variants are generated per degree; a triad is simply the seventh
// variant with no seventh evidence, so one engine covers both.
func NewChordEngine(key KeyEstimate) *ChordEngine {
	return &ChordEngine{
		key:       key,
		scale:     theory.DiatonicScale(key.Tonic, key.Mode),
		templates: theory.DiatonicTemplates(key.Tonic, key.Mode),
	}
}

// Templates returns the surviving chord templates for the engine's key
func (ce *ChordEngine) Templates() []theory.Template {
	return ce.templates
}

// Annotate fills ChordSuggestions and AutomaticChord on every measure,
// folding the previously chosen template across the sequence. The measure
// loop is inherently sequential and must not be parallelized.
func (ce *ChordEngine) Annotate(measures []Measure) []Measure {
	var prev *theory.Template

	for i := range measures {
		hist := measureHistogram(&measures[i])
		pick, suggestions, next := ce.Step(hist, prev)

		measures[i].ChordSuggestions = suggestions
		measures[i].AutomaticChord = pick
		prev = next
	}

	return measures
}

// scoredTemplate pairs a template with its contextual score
type scoredTemplate struct {
	template theory.Template
	score    float64
}

// Step scores one measure against the previous chosen template and returns
// the automatic pick (nil when nothing qualifies), the ranked suggestion
// list, and the template to carry into the next step. When no chord is
// emitted the previous template persists unchanged so a later measure can
// still reuse it.
func (ce *ChordEngine) Step(hist [12]float64, prev *theory.Template) (*ChordPrediction, []ChordPrediction, *theory.Template) {
	total := 0.0
	for _, w := range hist {
		total += w
	}

	var candidates []scoredTemplate
	if total > 1e-12 {
		candidates = ce.scoreCandidates(hist, total, prev)
	}

	// Contextual rank; stable so the triad keeps priority over its equal
	// scoring seventh variant.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	suggestions := rankSuggestions(candidates)

	if len(candidates) > 0 && candidates[0].score >= selectionFloor {
		best := candidates[0]
		pick := &ChordPrediction{
			Symbol:      best.template.Symbol(),
			DegreeLabel: best.template.Label,
			Confidence:  clamp01(best.score),
		}
		next := best.template
		return pick, suggestions, &next
	}

	// Hysteresis: repeat the previous chord when the measure still mostly
	// sounds like it, instead of flickering to nothing.
	if prev != nil && total > 1e-12 {
		prevTones := 0.0
		for _, tone := range prev.Tones {
			prevTones += hist[tone]
		}
		reuseConfidence := reuseScale * prevTones / total
		if reuseConfidence >= reuseFloor {
			pick := &ChordPrediction{
				Symbol:      prev.Symbol(),
				DegreeLabel: prev.Label,
				Confidence:  clamp01(reuseConfidence),
			}
			suggestions = ensurePresent(suggestions, *pick)
			return pick, suggestions, prev
		}
	}

	return nil, suggestions, prev
}

// scoreCandidates computes base and contextual scores for every template
// that clears the candidate floor
func (ce *ChordEngine) scoreCandidates(hist [12]float64, total float64, prev *theory.Template) []scoredTemplate {
	candidates := make([]scoredTemplate, 0, len(ce.templates))

	for _, template := range ce.templates {
		base := ce.baseConfidence(template, hist, total)
		if base < candidateFloor {
			continue
		}

		candidates = append(candidates, scoredTemplate{
			template: template,
			score:    ce.contextualScore(template, base, hist, total, prev),
		})
	}

	return candidates
}

// baseConfidence scores a template against the measure's duration-weighted
// pitch-class histogram
func (ce *ChordEngine) baseConfidence(template theory.Template, hist [12]float64, total float64) float64 {
	coverage := 0.0
	for _, tone := range template.Tones {
		coverage += hist[tone]
	}
	coverage /= total

	root := hist[template.Root] / total
	third := hist[template.Third()] / total

	seventh := 0.0
	if tone, ok := template.Seventh(); ok {
		seventh = hist[tone] / total
	}

	penalty := 0.0
	for pc, w := range hist {
		if !theory.InScale(pc, ce.scale) {
			penalty += w
		}
	}
	penalty /= total

	base := coverageWeight*coverage +
		rootWeight*root +
		thirdWeight*third +
		seventhWeight*seventh -
		scalePenalty*penalty

	if base < 0 {
		return 0
	}
	return base
}

// contextualScore adjusts a base confidence with progression context
func (ce *ChordEngine) contextualScore(template theory.Template, base float64, hist [12]float64, total float64, prev *theory.Template) float64 {
	score := base

	if prev != nil {
		score += transitionBonuses[prev.Degree][template.Degree]

		if prev.Degree == template.Degree {
			score += repeatBonus
		}

		// Shared tones only count when they actually sound in the measure;
		// otherwise a seventh variant would outrank its own triad purely by
		// carrying an extra silent tone.
		sounding := 0
		for _, tone := range template.Tones {
			if prev.HasTone(tone) && hist[tone] > 0 {
				sounding++
			}
		}
		score += sharedToneBonus * float64(sounding) / float64(len(template.Tones))

		interval := prev.Root - template.Root
		if interval < 0 {
			interval = -interval
		}
		if interval >= 7 {
			score -= wideLeapPenalty
		}
		if interval >= 5 && prev.SharedTones(template) == 0 {
			score -= leapExtraMargin
		}
	}

	// Chromatic penalty: energy that belongs to neither the scale nor the
	// candidate's own tones
	chromatic := 0.0
	for pc, w := range hist {
		if !theory.InScale(pc, ce.scale) && !template.HasTone(pc) {
			chromatic += w
		}
	}
	score -= chromaticWeight * chromatic / total

	return clamp01(score)
}

// rankSuggestions converts the top scored templates to a deduplicated
// suggestion list
func rankSuggestions(candidates []scoredTemplate) []ChordPrediction {
	suggestions := make([]ChordPrediction, 0, maxSuggestions)

	for _, candidate := range candidates {
		prediction := ChordPrediction{
			Symbol:      candidate.template.Symbol(),
			DegreeLabel: candidate.template.Label,
			Confidence:  clamp01(candidate.score),
		}
		if containsPrediction(suggestions, prediction) {
			continue
		}
		suggestions = append(suggestions, prediction)
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	return suggestions
}

func containsPrediction(list []ChordPrediction, p ChordPrediction) bool {
	for _, existing := range list {
		if existing.Symbol == p.Symbol && existing.DegreeLabel == p.DegreeLabel {
			return true
		}
	}
	return false
}

// ensurePresent guarantees the final pick appears in the suggestion list
func ensurePresent(list []ChordPrediction, p ChordPrediction) []ChordPrediction {
	if containsPrediction(list, p) {
		return list
	}
	return append(list, p)
}

// measureHistogram builds the duration-weighted local histogram for one
// measure
func measureHistogram(measure *Measure) [12]float64 {
	var hist [12]float64
	for _, note := range measure.Notes {
		hist[note.PitchClass%12] += note.DurationBeats
	}
	return hist
}
