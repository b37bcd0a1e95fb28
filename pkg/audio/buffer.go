// Package audio defines the decoded sample matrix exchanged between the
// decoder and the analysis engine.
package audio

// Buffer is a decoded, channel-major sample matrix. Samples[c][i] is frame i
// of channel c, nominally in [-1, 1]. All channels have equal length.
type Buffer struct {
	SampleRate int
	Samples    [][]float64
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.Samples)
}

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if len(b.Samples) == 0 {
		return 0
	}
	return len(b.Samples[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Mono downmixes the buffer to a single channel by averaging across the
// channel axis per frame. A single-channel buffer is returned as-is (not
// copied).
func (b *Buffer) Mono() []float64 {
	if len(b.Samples) == 0 {
		return nil
	}
	if len(b.Samples) == 1 {
		return b.Samples[0]
	}
	frames := b.Frames()
	mono := make([]float64, frames)
	scale := 1.0 / float64(len(b.Samples))
	for _, ch := range b.Samples {
		for i := 0; i < frames; i++ {
			mono[i] += ch[i] * scale
		}
	}
	return mono
}

// FromInterleaved builds a Buffer from interleaved samples, the layout PCM
// decoders emit. Trailing samples of an incomplete final frame are dropped.
func FromInterleaved(samples []float64, channels, sampleRate int) *Buffer {
	if channels <= 0 {
		channels = 1
	}
	frames := len(samples) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			out[c][i] = samples[i*channels+c]
		}
	}
	return &Buffer{SampleRate: sampleRate, Samples: out}
}
