package decode

import "time"

// AudioMetadata represents metadata extracted from an audio file
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	SampleRate int     `json:"sample_rate"` // Sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	Bitrate    int     `json:"bitrate"`     // Bitrate in bits per second
	Format     string  `json:"format"`      // Container format (wav, flac, etc.)
	Codec      string  `json:"codec"`       // Audio codec
	Size       int64   `json:"size"`        // File size in bytes
}

// Options defines limits for audio decoding
type Options struct {
	MaxDuration time.Duration `json:"max_duration"` // Maximum duration to decode
	TempDir     string        `json:"temp_dir"`     // Directory for temporary PCM files
}

// DefaultOptions returns sensible defaults for decoding project media
func DefaultOptions() Options {
	return Options{
		MaxDuration: 2 * time.Hour,
		TempDir:     "",
	}
}
