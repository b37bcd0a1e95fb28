package analysis

import "fmt"

// Thresholds are the trigger points for mix warnings. The defaults are the
// published contract values; they can be overridden through configuration.
type Thresholds struct {
	HotPeakDB      float64 // peak above this is dangerously hot
	MuddyLowDB     float64 // low-band energy above this reads as mud
	DarkCentroidHz float64 // centroid below this reads as dark
	NarrowWidth    float64 // stereo width below this is effectively mono
	StreamingLUFS  float64 // integrated loudness above this clashes with streaming normalization
	LowCrestDB     float64 // crest factor below this suggests over-compression
}

// DefaultThresholds returns the contract warning thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HotPeakDB:      -0.3,
		MuddyLowDB:     -6.0,
		DarkCentroidHz: 500,
		NarrowWidth:    0.1,
		StreamingLUFS:  -8.0,
		LowCrestDB:     6.0,
	}
}

// Warnings evaluates the warning rules in their fixed order. The order is
// part of the output contract: identical metrics always produce an identical
// warning list.
func (e *Engine) Warnings(level LevelAnalysis, frequency FrequencyAnalysis, stereo StereoAnalysis, dynamics DynamicsAnalysis) []string {
	t := e.thresholds
	warnings := []string{}

	if float64(level.PeakDB) > t.HotPeakDB {
		warnings = append(warnings, fmt.Sprintf("Peak level very hot: %.1f dBFS (risk of clipping)", float64(level.PeakDB)))
	}
	if level.ClippedSamplesCount > 0 {
		warnings = append(warnings, fmt.Sprintf("Clipping detected: %d clipped samples", level.ClippedSamplesCount))
	}

	if float64(frequency.LowFreqEnergyDB) > t.MuddyLowDB {
		warnings = append(warnings, fmt.Sprintf("Excessive low frequency energy: %.1f dB (muddy mix)", float64(frequency.LowFreqEnergyDB)))
	}
	if frequency.SpectralCentroidHz < t.DarkCentroidHz {
		warnings = append(warnings, fmt.Sprintf("Spectral centroid very low: %.0f Hz (dark mix)", frequency.SpectralCentroidHz))
	}

	if stereo.IsStereo && !stereo.MonoCompatible {
		warnings = append(warnings, fmt.Sprintf("Phase issues detected (coherence: %.2f) - may cancel in mono", stereo.PhaseCoherence))
	}
	if stereo.IsStereo && stereo.StereoWidth < t.NarrowWidth {
		warnings = append(warnings, fmt.Sprintf("Narrow stereo image (width: %.2f) - mostly mono", stereo.StereoWidth))
	}

	if float64(dynamics.LUFSIntegrated) > t.StreamingLUFS {
		warnings = append(warnings, fmt.Sprintf("Very loud for streaming: %.1f LUFS (target: -14 LUFS for Spotify)", float64(dynamics.LUFSIntegrated)))
	}
	if float64(dynamics.CrestFactorDB) < t.LowCrestDB {
		warnings = append(warnings, fmt.Sprintf("Low crest factor: %.1f dB (possibly over-compressed)", float64(dynamics.CrestFactorDB)))
	}

	return warnings
}
