package transcribe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakisara01/C6demo/algorithms/theory"
)

func cMajorKey() KeyEstimate {
	return KeyEstimate{Tonic: 0, Mode: theory.ModeMajor, Confidence: 0.8}
}

func aMinorKey() KeyEstimate {
	return KeyEstimate{Tonic: 9, Mode: theory.ModeMinor, Confidence: 0.8}
}

func degreeLabels(measures []Measure) []string {
	labels := make([]string, len(measures))
	for i := range measures {
		if measures[i].AutomaticChord != nil {
			labels[i] = measures[i].AutomaticChord.DegreeLabel
		}
	}
	return labels
}

func TestAnnotateMajorProgression(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	measures := engine.Annotate([]Measure{
		measureOf(0, 0, 7, 4, 0),
		measureOf(1, 5, 9, 0, 9),
		measureOf(2, 7, 11, 2, 11),
		measureOf(3, 0, 7, 4, 0),
	})

	assert.Equal([]string{"I", "IV", "V", "I"}, degreeLabels(measures))
	assert.Equal("C", measures[0].AutomaticChord.Symbol)
	assert.Equal("F", measures[1].AutomaticChord.Symbol)
	assert.Equal("G", measures[2].AutomaticChord.Symbol)

	for i := range measures {
		assert.NotEmpty(measures[i].ChordSuggestions)
		for _, suggestion := range measures[i].ChordSuggestions {
			assert.GreaterOrEqual(suggestion.Confidence, 0.0)
			assert.LessOrEqual(suggestion.Confidence, 1.0)
		}
	}
}

func TestAnnotateMinorProgressionWithBorrowedDominant(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(aMinorKey())
	measures := engine.Annotate([]Measure{
		measureOf(0, 9, 0, 4, 0),
		measureOf(1, 2, 5, 9, 5),
		measureOf(2, 4, 8, 11, 8),
		measureOf(3, 9, 0, 4, 0),
	})

	assert.Equal([]string{"i", "iv", "V", "i"}, degreeLabels(measures))
	assert.Equal("Am", measures[0].AutomaticChord.Symbol)
	assert.Equal("Dm", measures[1].AutomaticChord.Symbol)
	assert.Equal("E", measures[2].AutomaticChord.Symbol, "G# demands the borrowed major dominant")
}

func TestStepFirstMeasureBaseline(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	hist := [12]float64{0: 2, 4: 1, 7: 1}

	pick, suggestions, next := engine.Step(hist, nil)
	assert.NotNil(pick)
	assert.Equal("I", pick.DegreeLabel)
	assert.NotNil(next)
	assert.Equal("I", next.Label)
	assert.NotEmpty(suggestions)
	assert.Equal(pick.DegreeLabel, suggestions[0].DegreeLabel)
	assert.LessOrEqual(len(suggestions), 5)
}

func TestStepEmptyHistogramKeepsPreviousTemplate(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	prev := findTemplate(t, engine, "I")

	pick, suggestions, next := engine.Step([12]float64{}, prev)
	assert.Nil(pick, "no chord without pitched content")
	assert.Empty(suggestions)
	assert.Equal(prev, next, "previous template persists for later reuse")
}

func TestStepChordReuseHysteresis(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	prev := findTemplate(t, engine, "I")

	// Half the weight on I's tones, half chromatic: no fresh candidate
	// clears the selection threshold but the measure still sounds like C.
	hist := [12]float64{4: 1, 7: 1, 1: 2}

	pick, suggestions, next := engine.Step(hist, prev)
	assert.NotNil(pick)
	assert.Equal("I", pick.DegreeLabel)
	assert.Equal("C", pick.Symbol)
	assert.InDelta(0.3, pick.Confidence, 1e-9)
	assert.Equal(prev, next)
	assert.True(containsPrediction(suggestions, *pick), "the reused pick joins the suggestion list")
}

func TestStepNoReuseBelowFloor(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	prev := findTemplate(t, engine, "I")

	// Almost everything chromatic: neither a fresh pick nor reuse qualifies
	hist := [12]float64{4: 1, 1: 5, 6: 4}

	pick, _, next := engine.Step(hist, prev)
	assert.Nil(pick)
	assert.Equal(prev, next)
}

func TestSuggestionsDeduplicated(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	hist := [12]float64{0: 1, 2: 1, 4: 1, 5: 1, 7: 1, 9: 1, 11: 1}

	_, suggestions, _ := engine.Step(hist, nil)
	assert.LessOrEqual(len(suggestions), 5)

	seen := make(map[string]bool)
	for _, suggestion := range suggestions {
		key := suggestion.Symbol + "|" + suggestion.DegreeLabel
		assert.False(seen[key], "duplicate suggestion %s", key)
		seen[key] = true
	}
}

func TestDistantRootScoresLowerThanSharedTones(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	candidate := *findTemplate(t, engine, "vii°")
	hist := [12]float64{11: 1, 2: 1, 5: 1}
	total := 3.0

	// I shares no tone with vii° and sits 11 semitones away; V shares two
	// tones at a 4-semitone distance.
	far := engine.contextualScore(candidate, 0.5, hist, total, findTemplate(t, engine, "I"))
	near := engine.contextualScore(candidate, 0.5, hist, total, findTemplate(t, engine, "V"))

	assert.Less(far, near)
}

func TestTriadOutranksSeventhWithoutSeventhEvidence(t *testing.T) {
	assert := assert.New(t)

	engine := NewChordEngine(cMajorKey())
	prev := findTemplate(t, engine, "I")

	// F,A,C with no E: IV and IVmaj7 cover equally, the triad must lead
	hist := [12]float64{5: 1, 9: 2, 0: 1}

	pick, suggestions, _ := engine.Step(hist, prev)
	assert.NotNil(pick)
	assert.Equal("IV", pick.DegreeLabel)
	assert.Equal("IV", suggestions[0].DegreeLabel)
}

func TestScoresStayInUnitRange(t *testing.T) {
	assert := assert.New(t)

	for _, key := range []KeyEstimate{cMajorKey(), aMinorKey()} {
		engine := NewChordEngine(key)
		var prev *theory.Template

		hists := [][12]float64{
			{0: 10, 4: 10, 7: 10},
			{1: 3, 6: 2, 8: 1},
			{},
			{0: 0.1, 2: 4, 7: 2, 11: 1},
		}

		for _, hist := range hists {
			pick, suggestions, next := engine.Step(hist, prev)
			if pick != nil {
				assert.GreaterOrEqual(pick.Confidence, 0.0)
				assert.LessOrEqual(pick.Confidence, 1.0)
			}
			for _, suggestion := range suggestions {
				assert.GreaterOrEqual(suggestion.Confidence, 0.0)
				assert.LessOrEqual(suggestion.Confidence, 1.0)
			}
			prev = next
		}
	}
}

func findTemplate(t *testing.T, engine *ChordEngine, label string) *theory.Template {
	t.Helper()
	templates := engine.Templates()
	for i := range templates {
		if templates[i].Label == label {
			return &templates[i]
		}
	}
	t.Fatalf("no template labeled %s", label)
	return nil
}
