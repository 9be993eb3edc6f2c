package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nakisara01/C6demo/audio"
	"github.com/nakisara01/C6demo/config"
	"github.com/nakisara01/C6demo/export"
	"github.com/nakisara01/C6demo/transcribe"
)

var (
	flagBPM     float64
	flagMeter   string
	flagMIDI    string
	flagArchive bool
)

func init() {
	transcribeCmd.Flags().Float64Var(&flagBPM, "bpm", 0, "tempo in beats per minute (required)")
	transcribeCmd.Flags().StringVar(&flagMeter, "meter", "4/4", "time signature, e.g. 3/4")
	transcribeCmd.Flags().StringVar(&flagMIDI, "midi", "", "write the transcription to a MIDI file")
	transcribeCmd.Flags().BoolVar(&flagArchive, "archive", false, "archive the result under the output directory")
	transcribeCmd.MarkFlagRequired("bpm")

	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file.wav>",
	Short: "Transcribe a mono WAV recording",
	Long: `Transcribes a mono WAV file at the given tempo and meter, prints the
estimated key and per-measure notes and chords, and optionally exports
MIDI or a compressed session archive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signature, err := parseMeter(flagMeter)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		buf, err := audio.LoadWAV(args[0])
		if err != nil {
			return err
		}

		analyzer, err := transcribe.NewAnalyzerWithParams(cfg.TrackerParams(buf.SampleRate))
		if err != nil {
			return err
		}

		result, err := analyzer.Analyze(buf.Samples, flagBPM, signature)
		if err != nil {
			return err
		}

		printResult(cmd, result)

		if flagMIDI != "" {
			params := export.DefaultMIDIParams(flagBPM)
			params.Velocity = uint8(cfg.Export.MIDIVelocity)
			if err := export.WriteMIDIFile(flagMIDI, result, signature, params); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", flagMIDI)
		}

		if flagArchive {
			session := export.NewSession(args[0], flagBPM, signature, result)
			path, err := export.Archive(session, cfg.OutputDir)
			if err != nil {
				return err
			}
			cmd.Printf("archived %s\n", path)
		}

		return nil
	},
}

func parseMeter(meter string) (transcribe.TimeSignature, error) {
	parts := strings.SplitN(meter, "/", 2)
	if len(parts) != 2 {
		return transcribe.TimeSignature{}, fmt.Errorf("invalid meter %q, expected e.g. 4/4", meter)
	}
	upper, err := strconv.Atoi(parts[0])
	if err != nil {
		return transcribe.TimeSignature{}, fmt.Errorf("invalid meter %q: %w", meter, err)
	}
	lower, err := strconv.Atoi(parts[1])
	if err != nil {
		return transcribe.TimeSignature{}, fmt.Errorf("invalid meter %q: %w", meter, err)
	}
	return transcribe.TimeSignature{Upper: upper, Lower: lower}, nil
}

func printResult(cmd *cobra.Command, result *transcribe.Result) {
	out := cmd.OutOrStdout()

	if result.Key != nil {
		fmt.Fprintf(out, "key: %s (%.2f)\n", result.Key.Name(), result.Key.Confidence)
	} else {
		fmt.Fprintln(out, "key: none (no pitched content)")
	}

	for i := range result.Measures {
		measure := &result.Measures[i]
		fmt.Fprintf(out, "measure %d", measure.Index+1)
		if chord := measure.EffectiveChord(); chord != nil {
			fmt.Fprintf(out, "  [%s %s %.2f]", chord.Symbol, chord.DegreeLabel, chord.Confidence)
		}
		fmt.Fprintln(out)
		for _, note := range measure.Notes {
			fmt.Fprintf(out, "  %-4s beat %.2f dur %.2f conf %.2f\n",
				note.Name, note.StartBeat+1, note.DurationBeats, note.Confidence)
		}
	}
}
