package export

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nakisara01/C6demo/algorithms/theory"
	"github.com/nakisara01/C6demo/transcribe"
)

// MIDIParams controls SMF rendering of a transcription result
type MIDIParams struct {
	BPM          float64 `json:"bpm"`
	Velocity     uint8   `json:"velocity"`
	Channel      uint8   `json:"channel"`
	ChordMarkers bool    `json:"chord_markers"`
}

// DefaultMIDIParams returns standard rendering parameters for the given
// tempo
func DefaultMIDIParams(bpm float64) MIDIParams {
	return MIDIParams{
		BPM:          bpm,
		Velocity:     96,
		Channel:      0,
		ChordMarkers: true,
	}
}

type timedMessage struct {
	tick uint32
	msg  smf.Message
	// noteOff orders an off before a simultaneous on at the same tick
	noteOff bool
}

// ToSMF renders a transcription result as a single-track standard MIDI
// file. Note timing is reconstructed from measure indices and beat offsets;
// the effective chord of each measure becomes a marker event at the measure
// boundary.
func ToSMF(result *transcribe.Result, signature transcribe.TimeSignature, params MIDIParams) (*smf.SMF, error) {
	if result == nil {
		return nil, fmt.Errorf("nil result")
	}
	if params.BPM <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %.2f", params.BPM)
	}
	if signature.Upper <= 0 || signature.Lower <= 0 {
		return nil, fmt.Errorf("invalid time signature %d/%d", signature.Upper, signature.Lower)
	}

	s := smf.New()
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unexpected SMF time format %v", s.TimeFormat)
	}

	// A beat is one denominator unit; MetricTicks resolution is per quarter
	ticksPerBeat := float64(ticks.Resolution()) * 4.0 / float64(signature.Lower)
	beatsPerMeasure := float64(signature.Upper)

	var events []timedMessage

	for i := range result.Measures {
		measure := &result.Measures[i]
		measureBeat := float64(measure.Index) * beatsPerMeasure

		if params.ChordMarkers {
			if chord := measure.EffectiveChord(); chord != nil {
				events = append(events, timedMessage{
					tick: beatTick(measureBeat, ticksPerBeat),
					msg:  smf.MetaMarker(chord.Symbol),
				})
			}
		}

		for _, note := range measure.Notes {
			key := theory.NearestMIDINote(note.Frequency)
			if key < 0 || key > 127 {
				continue
			}
			start := measureBeat + note.StartBeat
			end := start + note.DurationBeats

			events = append(events, timedMessage{
				tick: beatTick(start, ticksPerBeat),
				msg:  smf.Message(midi.NoteOn(params.Channel, uint8(key), params.Velocity)),
			})
			events = append(events, timedMessage{
				tick:    beatTick(end, ticksPerBeat),
				msg:     smf.Message(midi.NoteOff(params.Channel, uint8(key))),
				noteOff: true,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].noteOff && !events[j].noteOff
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(params.BPM))
	track.Add(0, smf.MetaMeter(uint8(signature.Upper), uint8(signature.Lower)))
	if result.Key != nil {
		track.Add(0, smf.MetaText(fmt.Sprintf("key: %s", result.Key.Name())))
	}

	lastTick := uint32(0)
	for _, event := range events {
		track.Add(event.tick-lastTick, event.msg)
		lastTick = event.tick
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("assemble MIDI track: %w", err)
	}

	return s, nil
}

// WriteMIDIFile renders a result and writes it to path
func WriteMIDIFile(path string, result *transcribe.Result, signature transcribe.TimeSignature, params MIDIParams) error {
	s, err := ToSMF(result, signature, params)
	if err != nil {
		return err
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("write MIDI file %s: %w", path, err)
	}
	return nil
}

func beatTick(beat float64, ticksPerBeat float64) uint32 {
	if beat < 0 {
		return 0
	}
	return uint32(beat*ticksPerBeat + 0.5)
}
