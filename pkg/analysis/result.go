package analysis

import (
	"encoding/json"
	"math"
)

// DB is a decibel-scaled value. Digital silence is negative infinity, which
// encoding/json cannot represent, so infinite and NaN values marshal as null.
type DB float64

// MarshalJSON implements json.Marshaler.
func (d DB) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// LevelAnalysis holds peak/RMS levels and clipping detection, computed on the
// mono downmix.
type LevelAnalysis struct {
	PeakDB              DB   `json:"peak_db"`
	RMSDB               DB   `json:"rms_db"`
	ClippingDetected    bool `json:"clipping_detected"`
	ClippedSamplesCount int  `json:"clipped_samples_count"`
}

// FrequencyAnalysis holds spectral measures of the mono downmix.
type FrequencyAnalysis struct {
	SpectralCentroidHz float64 `json:"spectral_centroid_hz"`
	SpectralRolloffHz  float64 `json:"spectral_rolloff_hz"`
	LowFreqEnergyDB    DB      `json:"low_freq_energy_db"`
	MidFreqEnergyDB    DB      `json:"mid_freq_energy_db"`
	HighFreqEnergyDB   DB      `json:"high_freq_energy_db"`
}

// StereoAnalysis holds width and phase measures. The numeric fields are only
// meaningful when IsStereo is true; mono input gets fixed defaults.
type StereoAnalysis struct {
	IsStereo       bool    `json:"is_stereo"`
	StereoWidth    float64 `json:"stereo_width"`
	PhaseCoherence float64 `json:"phase_coherence"`
	MonoCompatible bool    `json:"mono_compatible"`
}

// DynamicsAnalysis holds loudness and dynamic-range measures.
type DynamicsAnalysis struct {
	LUFSIntegrated DB `json:"lufs_integrated"`
	TruePeakDB     DB `json:"true_peak_db"`
	CrestFactorDB  DB `json:"crest_factor_db"`
}

// Result is the complete per-file analysis record. It is always returned,
// never raised: on any failure Error is set, the metric fields stay zeroed,
// and Warnings is empty.
type Result struct {
	FilePath        string            `json:"file_path"`
	SampleRate      int               `json:"sample_rate"`
	DurationSeconds float64           `json:"duration_seconds"`
	Channels        int               `json:"channels"`
	Level           LevelAnalysis     `json:"level"`
	Frequency       FrequencyAnalysis `json:"frequency"`
	Stereo          StereoAnalysis    `json:"stereo"`
	Dynamics        DynamicsAnalysis  `json:"dynamics"`
	Warnings        []string          `json:"warnings"`
	Error           string            `json:"error,omitempty"`
}

// ErrorResult builds a failure record for path with every metric at its zero
// value.
func ErrorResult(path, message string) *Result {
	return &Result{
		FilePath: path,
		Warnings: []string{},
		Error:    message,
	}
}
