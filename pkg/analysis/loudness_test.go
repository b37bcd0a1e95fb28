package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmix/mixcheck-api/pkg/audio"
)

func TestBS1770FullScaleSineStereo(t *testing.T) {
	// The reference signal of BS.1770: a 997 Hz full-scale sine in both
	// channels of a stereo pair reads 0.0 LUFS. The -0.691 offset exists
	// to cancel the K-weighting gain at 997 Hz, so any drift here means
	// the filters are off.
	ch := sine(997, 1.0, 2.0)
	meter := NewBS1770Meter()

	lufs, err := meter.IntegratedLoudness(stereoBuffer(ch, ch))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, lufs, 0.1)
}

func TestBS1770FullScaleSineMono(t *testing.T) {
	// One channel carries half the power of the stereo pair: 3.01 LU
	// quieter.
	meter := NewBS1770Meter()

	lufs, err := meter.IntegratedLoudness(monoBuffer(sine(997, 1.0, 2.0)))
	require.NoError(t, err)
	assert.InDelta(t, -3.01, lufs, 0.1)
}

func TestBS1770KWeightingCoefficients48k(t *testing.T) {
	// The parametric derivations must reproduce the 48 kHz coefficient
	// table from the standard.
	shelf := newHighShelf(48000)
	assert.InDelta(t, 1.53512485958697, shelf.b0, 1e-10)
	assert.InDelta(t, -2.69169618940638, shelf.b1, 1e-10)
	assert.InDelta(t, 1.19839281085285, shelf.b2, 1e-10)
	assert.InDelta(t, -1.69065929318241, shelf.a1, 1e-10)
	assert.InDelta(t, 0.73248077421585, shelf.a2, 1e-10)

	highpass := newHighPass(48000)
	assert.InDelta(t, 1.0, highpass.b0, 1e-12)
	assert.InDelta(t, -2.0, highpass.b1, 1e-12)
	assert.InDelta(t, 1.0, highpass.b2, 1e-12)
	assert.InDelta(t, -1.99004745483398, highpass.a1, 1e-10)
	assert.InDelta(t, 0.99007225036621, highpass.a2, 1e-10)
}

func TestBS1770AmplitudeScaling(t *testing.T) {
	// Halving the amplitude drops loudness by 6.02 LU.
	meter := NewBS1770Meter()

	loud, err := meter.IntegratedLoudness(monoBuffer(sine(997, 1.0, 2.0)))
	require.NoError(t, err)
	quiet, err := meter.IntegratedLoudness(monoBuffer(sine(997, 0.5, 2.0)))
	require.NoError(t, err)

	assert.InDelta(t, 6.02, loud-quiet, 0.1)
}

func TestBS1770HighPassAttenuatesSubBass(t *testing.T) {
	// The stage-2 filter rolls off below ~38 Hz, so a 20 Hz tone reads
	// well under a 997 Hz tone of the same amplitude.
	meter := NewBS1770Meter()

	ref, err := meter.IntegratedLoudness(monoBuffer(sine(997, 0.5, 2.0)))
	require.NoError(t, err)
	sub, err := meter.IntegratedLoudness(monoBuffer(sine(20, 0.5, 2.0)))
	require.NoError(t, err)

	assert.Less(t, sub, ref-3.0)
}

func TestBS1770GatingIgnoresSilence(t *testing.T) {
	// Appending silence must not drag the integrated value down: silent
	// blocks fall under the absolute gate.
	tone := sine(997, 0.5, 2.0)
	padded := append(append([]float64{}, tone...), make([]float64, 4*testSampleRate)...)
	meter := NewBS1770Meter()

	ref, err := meter.IntegratedLoudness(monoBuffer(tone))
	require.NoError(t, err)
	gated, err := meter.IntegratedLoudness(monoBuffer(padded))
	require.NoError(t, err)

	assert.InDelta(t, ref, gated, 0.3)
}

func TestBS1770SilenceIsNegativeInfinity(t *testing.T) {
	meter := NewBS1770Meter()

	lufs, err := meter.IntegratedLoudness(monoBuffer(make([]float64, testSampleRate)))
	require.NoError(t, err)
	assert.True(t, math.IsInf(lufs, -1))
}

func TestBS1770ErrorCases(t *testing.T) {
	meter := NewBS1770Meter()

	_, err := meter.IntegratedLoudness(monoBuffer(sine(997, 0.5, 0.1)))
	assert.ErrorIs(t, err, errShortSignal)

	_, err = meter.IntegratedLoudness(&audio.Buffer{SampleRate: 0, Samples: [][]float64{{0.1}}})
	assert.ErrorIs(t, err, errNoSampleRate)

	_, err = meter.IntegratedLoudness(&audio.Buffer{SampleRate: testSampleRate, Samples: [][]float64{}})
	assert.ErrorIs(t, err, errEmptySignal)

	six := make([][]float64, 6)
	for i := range six {
		six[i] = make([]float64, testSampleRate)
	}
	_, err = meter.IntegratedLoudness(&audio.Buffer{SampleRate: testSampleRate, Samples: six})
	assert.ErrorIs(t, err, errTooManyTracks)
}

func TestFixedMeter(t *testing.T) {
	meter := FixedMeter{LUFS: -23}

	lufs, err := meter.IntegratedLoudness(nil)
	require.NoError(t, err)
	assert.Equal(t, -23.0, lufs)
}
