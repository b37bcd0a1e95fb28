package analysis

import (
	"errors"
	"math"

	"github.com/soundmix/mixcheck-api/pkg/audio"
)

// LoudnessMeter measures integrated loudness in LUFS over a full decoded
// buffer. Implementations are best-effort: the engine falls back to a fixed
// constant when a meter returns an error.
type LoudnessMeter interface {
	IntegratedLoudness(buf *audio.Buffer) (float64, error)
}

// FixedMeter always reports the same loudness. It is the degraded variant
// used when precise metering is unavailable.
type FixedMeter struct {
	LUFS float64
}

// IntegratedLoudness implements LoudnessMeter.
func (m FixedMeter) IntegratedLoudness(*audio.Buffer) (float64, error) {
	return m.LUFS, nil
}

var (
	errShortSignal   = errors.New("signal shorter than one gating block")
	errNoSampleRate  = errors.New("sample rate must be positive")
	errEmptySignal   = errors.New("empty signal")
	errTooManyTracks = errors.New("more than five channels not supported")
)

// BS1770Meter implements ITU-R BS.1770-4 gated integrated loudness:
// K-weighting per channel, 400 ms blocks with 75% overlap, a -70 LUFS
// absolute gate and a relative gate 10 LU under the absolute-gated mean.
type BS1770Meter struct{}

// NewBS1770Meter creates the standard gated meter.
func NewBS1770Meter() *BS1770Meter {
	return &BS1770Meter{}
}

// channelWeights per BS.1770: L/R/C at unity, surrounds at +1.5 dB.
var channelWeights = [5]float64{1.0, 1.0, 1.0, 1.41, 1.41}

// IntegratedLoudness implements LoudnessMeter.
func (m *BS1770Meter) IntegratedLoudness(buf *audio.Buffer) (float64, error) {
	if buf.SampleRate <= 0 {
		return 0, errNoSampleRate
	}
	channels := buf.Channels()
	if channels == 0 || buf.Frames() == 0 {
		return 0, errEmptySignal
	}
	if channels > len(channelWeights) {
		return 0, errTooManyTracks
	}

	blockSize := int(0.4 * float64(buf.SampleRate)) // 400 ms
	hop := blockSize / 4                            // 75% overlap
	if buf.Frames() < blockSize {
		return 0, errShortSignal
	}

	// K-weight each channel, then measure mean square power per block.
	weighted := make([][]float64, channels)
	for c, ch := range buf.Samples {
		weighted[c] = kWeight(ch, buf.SampleRate)
	}

	numBlocks := (buf.Frames()-blockSize)/hop + 1
	blockPower := make([][]float64, numBlocks) // per block, per channel
	for j := 0; j < numBlocks; j++ {
		start := j * hop
		powers := make([]float64, channels)
		for c := range weighted {
			var sum float64
			for _, s := range weighted[c][start : start+blockSize] {
				sum += s * s
			}
			powers[c] = sum / float64(blockSize)
		}
		blockPower[j] = powers
	}

	blockLoudness := func(powers []float64) float64 {
		var sum float64
		for c, p := range powers {
			sum += channelWeights[c] * p
		}
		if sum <= 0 {
			return math.Inf(-1)
		}
		return -0.691 + 10*math.Log10(sum)
	}

	// Absolute gate at -70 LUFS.
	const absoluteGate = -70.0
	gatedMean := func(gate float64) (float64, bool) {
		sums := make([]float64, channels)
		var n int
		for _, powers := range blockPower {
			if blockLoudness(powers) > gate {
				for c, p := range powers {
					sums[c] += p
				}
				n++
			}
		}
		if n == 0 {
			return 0, false
		}
		var total float64
		for c := range sums {
			total += channelWeights[c] * sums[c] / float64(n)
		}
		return total, true
	}

	absPower, ok := gatedMean(absoluteGate)
	if !ok || absPower <= 0 {
		return math.Inf(-1), nil
	}

	// Relative gate 10 LU below the absolute-gated loudness.
	relativeGate := -0.691 + 10*math.Log10(absPower) - 10
	relPower, ok := gatedMean(relativeGate)
	if !ok || relPower <= 0 {
		return math.Inf(-1), nil
	}

	return -0.691 + 10*math.Log10(relPower), nil
}

// kWeight applies the two-stage K-weighting filter (head-response high shelf
// followed by a high pass) to a channel, returning a new slice.
func kWeight(samples []float64, sampleRate int) []float64 {
	shelf := newHighShelf(float64(sampleRate))
	highpass := newHighPass(float64(sampleRate))
	out := make([]float64, len(samples))
	copy(out, samples)
	shelf.process(out)
	highpass.process(out)
	return out
}

// biquad is a direct form II transposed second-order IIR section with
// coefficients normalized by a0.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

func (f *biquad) process(samples []float64) {
	for i, x := range samples {
		y := f.b0*x + f.z1
		f.z1 = f.b1*x - f.a1*y + f.z2
		f.z2 = f.b2*x - f.a2*y
		samples[i] = y
	}
}

// newHighShelf builds the BS.1770 stage-1 shelving filter (+4 dB head
// response) for an arbitrary sample rate. The parametric form reproduces
// the coefficient table the standard publishes for 48 kHz.
func newHighShelf(fs float64) *biquad {
	const (
		gainDB = 3.999843853973347
		fc     = 1681.974450955533
		q      = 0.7071752369554196
	)
	k := math.Tan(math.Pi * fc / fs)
	vh := math.Pow(10, gainDB/20)
	vb := math.Pow(vh, 0.4996667741545416)
	a0 := 1 + k/q + k*k

	return &biquad{
		b0: (vh + vb*k/q + k*k) / a0,
		b1: 2 * (k*k - vh) / a0,
		b2: (vh - vb*k/q + k*k) / a0,
		a1: 2 * (k*k - 1) / a0,
		a2: (1 - k/q + k*k) / a0,
	}
}

// newHighPass builds the BS.1770 stage-2 high-pass filter for an arbitrary
// sample rate. The numerator stays at [1, -2, 1] to match the published
// table; the slight pass-band gain above unity is part of the standard.
func newHighPass(fs float64) *biquad {
	const (
		fc = 38.13547087602444
		q  = 0.5003270373238773
	)
	k := math.Tan(math.Pi * fc / fs)
	a0 := 1 + k/q + k*k

	return &biquad{
		b0: 1,
		b1: -2,
		b2: 1,
		a1: 2 * (k*k - 1) / a0,
		a2: (1 - k/q + k*k) / a0,
	}
}
