// Package analysis computes objective mix-quality metrics from decoded audio
// and synthesizes human-readable warnings from them.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/soundmix/mixcheck-api/pkg/audio"
)

// clippingThreshold marks samples at or extremely close to full scale.
const clippingThreshold = 0.9999

// fallbackLUFS is reported when loudness metering is unavailable or fails.
// Metering is best-effort and must never fail an analysis.
const fallbackLUFS = -23.0

// magnitudeFloor keeps spectral magnitudes away from log-of-zero.
const magnitudeFloor = 1e-10

// Frequency band edges in Hz.
const (
	lowBandMin  = 20
	lowBandMax  = 200
	midBandMax  = 2000
	highBandMax = 20000
)

// Engine computes the four metric groups. It is stateless across calls:
// identical input always produces identical metrics.
type Engine struct {
	meter      LoudnessMeter
	thresholds Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithLoudnessMeter replaces the default gated BS.1770 meter. Passing nil
// selects the fixed-constant fallback for every file.
func WithLoudnessMeter(m LoudnessMeter) Option {
	return func(e *Engine) { e.meter = m }
}

// WithThresholds overrides the warning thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// NewEngine creates an analysis engine with the standard meter and warning
// thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		meter:      NewBS1770Meter(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze computes all metrics and warnings for a decoded buffer. The caller
// owns FilePath attribution.
func (e *Engine) Analyze(buf *audio.Buffer) *Result {
	if buf == nil || buf.Channels() == 0 || buf.Frames() == 0 {
		// Zeroed metrics would read as a dark, over-compressed mix; an
		// empty decode is an error, not a quiet file.
		return ErrorResult("", "no audio samples to analyze")
	}

	mono := buf.Mono()

	result := &Result{
		SampleRate:      buf.SampleRate,
		DurationSeconds: buf.Duration(),
		Channels:        buf.Channels(),
	}
	result.Level = e.analyzeLevel(mono)
	result.Frequency = e.analyzeFrequency(mono, buf.SampleRate)
	result.Stereo = e.analyzeStereo(buf)
	result.Dynamics = e.analyzeDynamics(buf, mono)
	result.Warnings = e.Warnings(result.Level, result.Frequency, result.Stereo, result.Dynamics)
	return result
}

// analyzeLevel measures peak, RMS and clipping on the mono downmix.
func (e *Engine) analyzeLevel(mono []float64) LevelAnalysis {
	peak := peakAbs(mono)
	rms := rootMeanSquare(mono)

	clipped := 0
	for _, s := range mono {
		if math.Abs(s) >= clippingThreshold {
			clipped++
		}
	}

	return LevelAnalysis{
		PeakDB:              DB(linearToDB(peak)),
		RMSDB:               DB(linearToDB(rms)),
		ClippingDetected:    clipped > 0,
		ClippedSamplesCount: clipped,
	}
}

// analyzeFrequency computes the magnitude spectrum of the mono downmix and
// derives centroid, rolloff and band energies from it.
func (e *Engine) analyzeFrequency(mono []float64, sampleRate int) FrequencyAnalysis {
	if len(mono) == 0 || sampleRate <= 0 {
		return FrequencyAnalysis{
			LowFreqEnergyDB:  DB(math.Inf(-1)),
			MidFreqEnergyDB:  DB(math.Inf(-1)),
			HighFreqEnergyDB: DB(math.Inf(-1)),
		}
	}

	fft := fourier.NewFFT(len(mono))
	coeffs := fft.Coefficients(nil, mono)

	magnitude := make([]float64, len(coeffs))
	freqs := make([]float64, len(coeffs))
	var total float64
	for i, c := range coeffs {
		m := cmplx.Abs(c)
		if m < magnitudeFloor {
			m = magnitudeFloor
		}
		magnitude[i] = m
		freqs[i] = fft.Freq(i) * float64(sampleRate)
		total += m
	}

	// Magnitude-weighted mean frequency.
	var weighted float64
	for i, m := range magnitude {
		weighted += freqs[i] * m
	}
	centroid := weighted / total

	// Lowest bin where the cumulative magnitude reaches 85% of the total.
	rolloff := float64(sampleRate) / 2
	target := 0.85 * total
	var cumulative float64
	for i, m := range magnitude {
		cumulative += m
		if cumulative >= target {
			rolloff = freqs[i]
			break
		}
	}

	return FrequencyAnalysis{
		SpectralCentroidHz: centroid,
		SpectralRolloffHz:  rolloff,
		LowFreqEnergyDB:    DB(bandEnergyDB(freqs, magnitude, lowBandMin, lowBandMax)),
		MidFreqEnergyDB:    DB(bandEnergyDB(freqs, magnitude, lowBandMax, midBandMax)),
		HighFreqEnergyDB:   DB(bandEnergyDB(freqs, magnitude, midBandMax, highBandMax)),
	}
}

// analyzeStereo correlates the first two channels. Anything other than
// exactly two channels gets the fixed mono defaults.
func (e *Engine) analyzeStereo(buf *audio.Buffer) StereoAnalysis {
	if buf.Channels() != 2 {
		return StereoAnalysis{
			IsStereo:       false,
			StereoWidth:    0.0,
			PhaseCoherence: 1.0,
			MonoCompatible: true,
		}
	}

	left, right := buf.Samples[0], buf.Samples[1]

	coherence := 1.0
	if len(left) > 0 && len(right) > 0 {
		coherence = stat.Correlation(left, right, nil)
		if math.IsNaN(coherence) {
			// Zero-variance channels (e.g. digital silence) have no
			// defined correlation; treat as fully correlated.
			coherence = 1.0
		}
	}

	return StereoAnalysis{
		IsStereo:       true,
		StereoWidth:    1.0 - math.Abs(coherence),
		PhaseCoherence: coherence,
		MonoCompatible: coherence > 0.5,
	}
}

// analyzeDynamics meters integrated loudness on the full channel matrix and
// computes true peak and crest factor on the mono downmix.
func (e *Engine) analyzeDynamics(buf *audio.Buffer, mono []float64) DynamicsAnalysis {
	lufs := fallbackLUFS
	if e.meter != nil {
		if measured, err := e.meter.IntegratedLoudness(buf); err == nil {
			lufs = measured
		}
	}

	peak := peakAbs(mono)
	rms := rootMeanSquare(mono)

	crest := 0.0
	if rms > 0 {
		crest = linearToDB(peak / rms)
	}

	return DynamicsAnalysis{
		LUFSIntegrated: DB(lufs),
		TruePeakDB:     DB(linearToDB(peak)),
		CrestFactorDB:  DB(crest),
	}
}

// bandEnergyDB is the mean squared magnitude of bins inside [lo, hi] Hz,
// converted to dB. Empty or silent bands are negative infinity.
func bandEnergyDB(freqs, magnitude []float64, lo, hi float64) float64 {
	var sum float64
	var n int
	for i, f := range freqs {
		if f >= lo && f <= hi {
			sum += magnitude[i] * magnitude[i]
			n++
		}
	}
	if n == 0 {
		return math.Inf(-1)
	}
	return linearToDB(sum / float64(n))
}

func peakAbs(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// linearToDB converts a linear amplitude to decibels; zero and negative
// values are negative infinity.
func linearToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
