package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nakisara01/C6demo/transcribe"
)

// Config holds all c6demo configuration.
type Config struct {
	OutputDir string `toml:"output_dir"`

	Tracker TrackerConfig `toml:"tracker"`
	Export  ExportConfig  `toml:"export"`
}

type TrackerConfig struct {
	FrameSize           int     `toml:"frame_size"`
	HopSize             int     `toml:"hop_size"`
	MinFreq             float64 `toml:"min_freq"`
	MaxFreq             float64 `toml:"max_freq"`
	AmplitudeThreshold  float64 `toml:"amplitude_threshold"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	SmoothingRadius     int     `toml:"smoothing_radius"`
}

type ExportConfig struct {
	MIDIVelocity int  `toml:"midi_velocity"`
	Compress     bool `toml:"compress"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	defaults := transcribe.DefaultPitchTrackerParams(44100)

	return Config{
		OutputDir: "~/c6demo",
		Tracker: TrackerConfig{
			FrameSize:           defaults.FrameSize,
			HopSize:             defaults.HopSize,
			MinFreq:             defaults.MinFreq,
			MaxFreq:             defaults.MaxFreq,
			AmplitudeThreshold:  defaults.AmplitudeThreshold,
			ConfidenceThreshold: defaults.ConfidenceThreshold,
			SmoothingRadius:     defaults.SmoothingRadius,
		},
		Export: ExportConfig{
			MIDIVelocity: 96,
			Compress:     true,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.OutputDir = expandHome(cfg.OutputDir)

	return cfg, nil
}

// TrackerParams maps the config onto tracker parameters for the given
// sample rate. Smoothing blend and jump limits keep their defaults.
func (c Config) TrackerParams(sampleRate float64) transcribe.PitchTrackerParams {
	params := transcribe.DefaultPitchTrackerParams(sampleRate)
	params.FrameSize = c.Tracker.FrameSize
	params.HopSize = c.Tracker.HopSize
	params.MinFreq = c.Tracker.MinFreq
	params.MaxFreq = c.Tracker.MaxFreq
	params.AmplitudeThreshold = c.Tracker.AmplitudeThreshold
	params.ConfidenceThreshold = c.Tracker.ConfidenceThreshold
	params.SmoothingRadius = c.Tracker.SmoothingRadius
	return params
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "c6demo", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "c6demo", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
