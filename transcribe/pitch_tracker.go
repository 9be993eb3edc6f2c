package transcribe

import (
	"fmt"
	"math"

	"github.com/nakisara01/C6demo/algorithms/spectral"
	"github.com/nakisara01/C6demo/algorithms/windowing"
	"github.com/nakisara01/C6demo/audio"
)

// PitchTrackerParams contains parameters for fundamental-frequency tracking
type PitchTrackerParams struct {
	SampleRate float64 `json:"sample_rate"`
	FrameSize  int     `json:"frame_size"` // Must be a power of two
	HopSize    int     `json:"hop_size"`

	// Frequency range constraints
	MinFreq float64 `json:"min_freq"` // Low end of the tracking band (Hz)
	MaxFreq float64 `json:"max_freq"` // High end of the tracking band (Hz)

	// Voicing thresholds
	AmplitudeThreshold  float64 `json:"amplitude_threshold"`  // RMS below this is silence
	ConfidenceThreshold float64 `json:"confidence_threshold"` // Spectral confidence gate

	// Smoothing
	SmoothingRadius int     `json:"smoothing_radius"` // Neighbor frames per side
	RawBlend        float64 `json:"raw_blend"`        // Raw weight in the median blend
	LowConfidence   float64 `json:"low_confidence"`   // Jump rejection engages below this
	MaxJumpSemis    float64 `json:"max_jump_semis"`   // Octave/outlier jump limit
}

// DefaultPitchTrackerParams returns the fixed analysis parameters used by
// the pipeline: a 4096-sample frame at a 512-sample hop over a 70-1000 Hz
// tracking band.
func DefaultPitchTrackerParams(sampleRate float64) PitchTrackerParams {
	return PitchTrackerParams{
		SampleRate:          sampleRate,
		FrameSize:           4096,
		HopSize:             512,
		MinFreq:             70.0,
		MaxFreq:             1000.0,
		AmplitudeThreshold:  0.01,
		ConfidenceThreshold: 0.1,
		SmoothingRadius:     4,
		RawBlend:            0.35,
		LowConfidence:       0.25,
		MaxJumpSemis:        10.0,
	}
}

// PitchTracker slides a Hann-windowed spectral transform across a sample
// buffer and estimates a fundamental frequency, amplitude, and confidence
// per hop, followed by a median-based smoothing pass.
//
// References:
//   - Noll, A.M. (1967). "Cepstrum pitch determination"
//   - de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental frequency
//     estimator for speech and music" (smoothing/voicing heuristics)
type PitchTracker struct {
	params PitchTrackerParams
	fft    *spectral.FFT
	window *windowing.Hann
}

// NewPitchTracker creates a pitch tracker with default parameters
func NewPitchTracker(sampleRate float64) *PitchTracker {
	pt, _ := NewPitchTrackerWithParams(DefaultPitchTrackerParams(sampleRate))
	return pt
}

// NewPitchTrackerWithParams creates a pitch tracker with custom parameters.
// Returns ErrEngineUnavailable when the parameters cannot support a radix-2
// spectral transform.
func NewPitchTrackerWithParams(params PitchTrackerParams) (*PitchTracker, error) {
	if err := validateTrackerParams(params); err != nil {
		return nil, err
	}

	return &PitchTracker{
		params: params,
		fft:    spectral.NewFFT(),
		window: windowing.NewHann(params.FrameSize),
	}, nil
}

func validateTrackerParams(params PitchTrackerParams) error {
	if params.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrEngineUnavailable, params.SampleRate)
	}
	if params.FrameSize <= 0 || params.FrameSize&(params.FrameSize-1) != 0 {
		return fmt.Errorf("%w: frame size %d is not a power of two", ErrEngineUnavailable, params.FrameSize)
	}
	if params.HopSize <= 0 || params.HopSize > params.FrameSize {
		return fmt.Errorf("%w: hop size %d", ErrEngineUnavailable, params.HopSize)
	}
	if params.MinFreq <= 0 || params.MaxFreq <= params.MinFreq || params.MaxFreq > params.SampleRate/2 {
		return fmt.Errorf("%w: tracking band %v-%v Hz", ErrEngineUnavailable, params.MinFreq, params.MaxFreq)
	}
	return nil
}

// Params returns the tracker's parameters
func (pt *PitchTracker) Params() PitchTrackerParams {
	return pt.params
}

// Track produces pitch frames covering the buffer end-to-end at a fixed
// hop, already smoothed. Fails with ErrInsufficientData when the buffer is
// shorter than one analysis frame.
func (pt *PitchTracker) Track(samples []float64) ([]PitchFrame, error) {
	if len(samples) < pt.params.FrameSize {
		return nil, fmt.Errorf("%w: %d samples, need at least %d",
			ErrInsufficientData, len(samples), pt.params.FrameSize)
	}

	numFrames := (len(samples)-pt.params.FrameSize)/pt.params.HopSize + 1
	frames := make([]PitchFrame, 0, numFrames)

	frameBuffer := make([]float64, pt.params.FrameSize)
	hopSeconds := float64(pt.params.HopSize) / pt.params.SampleRate

	for i := 0; i < numFrames; i++ {
		start := i * pt.params.HopSize
		raw := samples[start : start+pt.params.FrameSize]

		// RMS is measured before windowing
		amplitude := audio.RMS(raw)

		copy(frameBuffer, raw)
		if err := pt.window.ApplyInPlace(frameBuffer); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
		}

		frequency, confidence := pt.estimateFrame(frameBuffer)

		frame := PitchFrame{
			Time:       float64(start) / pt.params.SampleRate,
			Duration:   hopSeconds,
			Confidence: clamp01(confidence),
			Amplitude:  amplitude,
		}

		if frequency > 0 &&
			amplitude >= pt.params.AmplitudeThreshold &&
			confidence >= pt.params.ConfidenceThreshold {
			frame.Frequency = frequency
			frame.Voiced = true
		}

		frames = append(frames, frame)
	}

	return pt.smooth(frames), nil
}

// estimateFrame picks the strongest magnitude bin inside the tracking band.
// Confidence is the peak's share of the band's total magnitude; a frame
// with no band energy gets zero confidence rather than a division error.
func (pt *PitchTracker) estimateFrame(windowed []float64) (float64, float64) {
	magnitude := pt.fft.MagnitudeSpectrum(windowed)

	minBin := int(pt.params.MinFreq * float64(pt.params.FrameSize) / pt.params.SampleRate)
	maxBin := int(pt.params.MaxFreq * float64(pt.params.FrameSize) / pt.params.SampleRate)
	if minBin < 1 {
		minBin = 1 // skip DC
	}
	if maxBin >= len(magnitude) {
		maxBin = len(magnitude) - 1
	}

	peakBin := -1
	peakMag := 0.0
	bandSum := 0.0

	for bin := minBin; bin <= maxBin; bin++ {
		bandSum += magnitude[bin]
		if magnitude[bin] > peakMag {
			peakMag = magnitude[bin]
			peakBin = bin
		}
	}

	if peakBin < 0 || bandSum < 1e-12 {
		return 0.0, 0.0
	}

	frequency := spectral.BinFrequency(peakBin, pt.params.FrameSize, pt.params.SampleRate)
	confidence := peakMag / bandSum

	return frequency, confidence
}

// smooth blends each voiced frame's estimate with the median of its
// confident neighbors, and rejects large low-confidence jumps against the
// previous output frequency (sparse confident neighbors can otherwise drag
// a frame a whole octave).
func (pt *PitchTracker) smooth(frames []PitchFrame) []PitchFrame {
	out := make([]PitchFrame, len(frames))
	copy(out, frames)

	prevOutput := 0.0
	havePrev := false

	for i := range frames {
		if !frames[i].Voiced {
			continue
		}

		blended := frames[i].Frequency

		neighbors := pt.confidentNeighbors(frames, i)
		if len(neighbors) >= 3 {
			median := audio.Median(neighbors)
			blended = pt.params.RawBlend*frames[i].Frequency + (1.0-pt.params.RawBlend)*median
		}

		if havePrev && frames[i].Confidence < pt.params.LowConfidence {
			jump := math.Abs(12.0 * math.Log2(blended/prevOutput))
			if jump > pt.params.MaxJumpSemis {
				out[i].Frequency = 0
				out[i].Voiced = false
				continue
			}
		}

		out[i].Frequency = blended
		prevOutput = blended
		havePrev = true
	}

	return out
}

func (pt *PitchTracker) confidentNeighbors(frames []PitchFrame, center int) []float64 {
	lo := max(center-pt.params.SmoothingRadius, 0)
	hi := min(center+pt.params.SmoothingRadius, len(frames)-1)

	neighbors := make([]float64, 0, hi-lo)
	for j := lo; j <= hi; j++ {
		if j == center {
			continue
		}
		if frames[j].Voiced && frames[j].Confidence >= pt.params.ConfidenceThreshold {
			neighbors = append(neighbors, frames[j].Frequency)
		}
	}

	return neighbors
}
