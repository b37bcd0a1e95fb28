package models

import (
	"testing"

	"github.com/soundmix/mixcheck-api/pkg/analysis"
)

func TestMixReport_SetAndGetResult(t *testing.T) {
	report := &MixReport{FilePath: "/mnt/media/kick.wav", FileMtime: 1700000000, FileSize: 88244}

	result := &analysis.Result{
		FilePath:        "/mnt/media/kick.wav",
		SampleRate:      44100,
		DurationSeconds: 2.0,
		Channels:        2,
		Warnings:        []string{"Low crest factor: 3.0 dB (possibly over-compressed)"},
	}
	result.Level.PeakDB = -1.2

	if err := report.SetResult(result); err != nil {
		t.Fatalf("MixReport.SetResult() error = %v", err)
	}
	if len(report.ResultData) == 0 {
		t.Fatal("MixReport.ResultData not populated")
	}

	decoded, err := report.Result()
	if err != nil {
		t.Fatalf("MixReport.Result() error = %v", err)
	}
	if decoded.FilePath != result.FilePath {
		t.Errorf("decoded FilePath = %v, want %v", decoded.FilePath, result.FilePath)
	}
	if decoded.SampleRate != 44100 {
		t.Errorf("decoded SampleRate = %v, want 44100", decoded.SampleRate)
	}
	if float64(decoded.Level.PeakDB) != -1.2 {
		t.Errorf("decoded PeakDB = %v, want -1.2", decoded.Level.PeakDB)
	}
	if len(decoded.Warnings) != 1 {
		t.Errorf("decoded Warnings = %v, want one entry", decoded.Warnings)
	}
}

func TestMixReport_ResultWithInvalidData(t *testing.T) {
	report := &MixReport{
		ResultData: []byte("invalid json data"),
	}

	_, err := report.Result()
	if err == nil {
		t.Error("MixReport.Result() expected error with invalid JSON data, got nil")
	}
}
