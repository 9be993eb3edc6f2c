package transcribe

import (
	"fmt"
	"math"

	"github.com/nakisara01/C6demo/algorithms/theory"
)

// minNoteBeats is the shortest note the segmenter will keep; anything
// shorter is treated as a spurious detection.
const minNoteBeats = 0.05

// NoteSegmenter converts a pitch-frame sequence into measures of note
// events under a declared tempo and time signature.
type NoteSegmenter struct {
	bpm             float64
	signature       TimeSignature
	secondsPerBeat  float64
	measureDuration float64
}

// NewNoteSegmenter creates a segmenter for the given tempo and meter
func NewNoteSegmenter(bpm float64, signature TimeSignature) (*NoteSegmenter, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %v", bpm)
	}
	if signature.Upper <= 0 || signature.Lower <= 0 {
		return nil, fmt.Errorf("invalid time signature %d/%d", signature.Upper, signature.Lower)
	}

	secondsPerBeat := (60.0 / bpm) * (4.0 / float64(signature.Lower))

	return &NoteSegmenter{
		bpm:             bpm,
		signature:       signature,
		secondsPerBeat:  secondsPerBeat,
		measureDuration: float64(signature.Upper) * secondsPerBeat,
	}, nil
}

// SecondsPerBeat returns the beat duration implied by the tempo and meter
func (ns *NoteSegmenter) SecondsPerBeat() float64 {
	return ns.secondsPerBeat
}

// MeasureDuration returns the measure duration in seconds
func (ns *NoteSegmenter) MeasureDuration() float64 {
	return ns.measureDuration
}

// runningNote accumulates consecutive frames that map to the same pitch
// class, for later averaging.
type runningNote struct {
	pitchClass int
	startTime  float64
	endTime    float64
	freqSum    float64
	confSum    float64
	frameCount int
}

// Segment walks the frames in time order, merging consecutive same-pitch
// frames into note events and partitioning them into measures. Only
// measure indices that contain at least one frame produce a Measure; index
// gaps are intentional (silent measures are absent, not zero-filled).
func (ns *NoteSegmenter) Segment(frames []PitchFrame) []Measure {
	var measures []Measure

	currentIndex := -1
	var current *Measure
	var running *runningNote

	flushNote := func() {
		if running == nil || current == nil {
			running = nil
			return
		}
		if note, ok := ns.finalizeNote(running, current.StartTime); ok {
			current.Notes = append(current.Notes, note)
		}
		running = nil
	}

	flushMeasure := func() {
		flushNote()
		if current != nil {
			measures = append(measures, *current)
			current = nil
		}
	}

	for _, frame := range frames {
		index := int(math.Floor(frame.Time / ns.measureDuration))
		if index < 0 {
			index = 0
		}

		if index != currentIndex {
			flushMeasure()
			currentIndex = index
			current = &Measure{
				Index:     index,
				StartTime: float64(index) * ns.measureDuration,
			}
		}

		if !frame.Voiced {
			flushNote()
			continue
		}

		pc := theory.PitchClassOf(frame.Frequency)

		if running != nil && running.pitchClass != pc {
			flushNote()
		}

		if running == nil {
			running = &runningNote{
				pitchClass: pc,
				startTime:  frame.Time,
			}
		}

		running.endTime = frame.Time + frame.Duration
		running.freqSum += frame.Frequency
		running.confSum += frame.Confidence
		running.frameCount++
	}

	flushMeasure()

	return measures
}

func (ns *NoteSegmenter) finalizeNote(run *runningNote, measureStart float64) (NoteEvent, bool) {
	durationBeats := (run.endTime - run.startTime) / ns.secondsPerBeat
	if durationBeats < minNoteBeats {
		return NoteEvent{}, false
	}

	count := float64(run.frameCount)

	return NoteEvent{
		PitchClass:    run.pitchClass,
		Name:          theory.PitchClassName(run.pitchClass),
		Frequency:     run.freqSum / count,
		StartBeat:     (run.startTime - measureStart) / ns.secondsPerBeat,
		DurationBeats: durationBeats,
		Confidence:    clamp01(run.confSum / count),
	}, true
}
