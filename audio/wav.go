package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// LoadWAV decodes a PCM WAV file into a mono Buffer. Multi-channel input is
// downmixed by averaging channels; integer samples are normalized to [-1, 1].
func LoadWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid wav file", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	channels := pcm.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("wav reports %d channels", channels)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(pcm.Data) / channels
	samples := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(pcm.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return NewBuffer(RemoveDC(samples), float64(pcm.Format.SampleRate)), nil
}
