package transcribe

import (
	"fmt"

	"github.com/nakisara01/C6demo/logging"
)

// Analyzer runs the full transcription pipeline: pitch tracking, note
// segmentation, key estimation, and chord annotation.
type Analyzer struct {
	tracker   *PitchTracker
	estimator *KeyEstimator
}

// NewAnalyzer creates an analyzer with default tracker parameters for the
// given sample rate
func NewAnalyzer(sampleRate float64) (*Analyzer, error) {
	tracker, err := NewPitchTrackerWithParams(DefaultPitchTrackerParams(sampleRate))
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		tracker:   tracker,
		estimator: NewKeyEstimator(),
	}, nil
}

// NewAnalyzerWithParams creates an analyzer with explicit tracker
// parameters
func NewAnalyzerWithParams(params PitchTrackerParams) (*Analyzer, error) {
	tracker, err := NewPitchTrackerWithParams(params)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		tracker:   tracker,
		estimator: NewKeyEstimator(),
	}, nil
}

// Analyze transcribes a mono buffer at a known tempo and meter. Silent or
// entirely unvoiced input is not an error: the result carries whatever
// measures were observed and a nil key.
func (a *Analyzer) Analyze(samples []float64, bpm float64, signature TimeSignature) (*Result, error) {
	segmenter, err := NewNoteSegmenter(bpm, signature)
	if err != nil {
		return nil, err
	}

	frames, err := a.tracker.Track(samples)
	if err != nil {
		return nil, fmt.Errorf("pitch tracking failed: %w", err)
	}

	measures := segmenter.Segment(frames)

	logging.Debug("segmented note events", logging.Fields{
		"frames":   len(frames),
		"measures": len(measures),
	})

	key := a.estimator.Estimate(measures)
	if key != nil {
		logging.Info("estimated key", logging.Fields{
			"key":        key.Name(),
			"confidence": key.Confidence,
		})
		engine := NewChordEngine(*key)
		measures = engine.Annotate(measures)
	} else {
		logging.Info("no pitched content, skipping key and chord analysis")
	}

	return &Result{Measures: measures, Key: key}, nil
}

// TrackPitch runs only the pitch tracking stage over a mono buffer
func TrackPitch(samples []float64, sampleRate float64) ([]PitchFrame, error) {
	tracker, err := NewPitchTrackerWithParams(DefaultPitchTrackerParams(sampleRate))
	if err != nil {
		return nil, err
	}
	return tracker.Track(samples)
}

// Analyze runs the full pipeline with default parameters for the given
// sample rate
func Analyze(samples []float64, sampleRate float64, bpm float64, signature TimeSignature) (*Result, error) {
	analyzer, err := NewAnalyzer(sampleRate)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(samples, bpm, signature)
}
