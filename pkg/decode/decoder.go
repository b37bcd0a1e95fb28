package decode

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/soundmix/mixcheck-api/pkg/audio"
)

// Decoder shells out to ffmpeg/ffprobe to turn project media into PCM
// buffers. The native channel count and sample rate are preserved so stereo
// and loudness measurements see the file as recorded.
type Decoder struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
	options     Options
}

// New creates a new Decoder instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration, options Options) *Decoder {
	return &Decoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
		options:     options,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (d *Decoder) ValidateBinaries() error {
	if _, err := exec.LookPath(d.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, d.ffmpegPath)
	}
	if _, err := exec.LookPath(d.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, d.ffprobePath)
	}
	return nil
}

// Decode converts an audio file to a PCM buffer. A missing file reports
// ErrFileNotFound; anything ffmpeg cannot read reports ErrDecodeFailed.
func (d *Decoder) Decode(ctx context.Context, path string) (*audio.Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	metadata, err := d.GetMetadata(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}

	if d.options.MaxDuration > 0 && time.Duration(metadata.Duration*float64(time.Second)) > d.options.MaxDuration {
		return nil, fmt.Errorf("%w: duration %.1fs exceeds limit %.1fs",
			ErrAudioTooLong, metadata.Duration, d.options.MaxDuration.Seconds())
	}

	raw, err := d.extractPCM(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}

	channels := metadata.Channels
	if channels < 1 {
		channels = 1
	}

	samples := pcmToFloat64(raw)
	return audio.FromInterleaved(samples, channels, metadata.SampleRate), nil
}

// extractPCM runs ffmpeg to convert the file to raw 32-bit float PCM at its
// native channel layout and sample rate.
func (d *Decoder) extractPCM(ctx context.Context, path string) ([]byte, error) {
	rawFile, err := os.CreateTemp(d.options.TempDir, "mixcheck_pcm_*.raw")
	if err != nil {
		return nil, NewProcessingError("temp_file_creation", path, err, "")
	}
	rawPath := rawFile.Name()
	rawFile.Close()
	defer os.Remove(rawPath)

	args := []string{
		"-i", path,
		"-f", "f32le", // 32-bit float little-endian
		"-y", // Overwrite output
		rawPath,
	}

	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("pcm_conversion", path, err, stderr.String())
	}

	return os.ReadFile(rawPath)
}

// pcmToFloat64 converts raw little-endian float32 PCM bytes to float64
// samples. Trailing partial samples are dropped.
func pcmToFloat64(raw []byte) []float64 {
	samples := make([]float64, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i : i+4])
		samples = append(samples, float64(math.Float32frombits(bits)))
	}
	return samples
}
