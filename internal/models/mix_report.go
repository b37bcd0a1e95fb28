package models

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/soundmix/mixcheck-api/pkg/analysis"
)

// MixReport caches the analysis result for one media file. A report is valid
// only while the file's mtime and size match; stale rows are recomputed.
type MixReport struct {
	gorm.Model
	FilePath   string `json:"file_path" gorm:"not null;uniqueIndex:idx_report_key"`
	FileMtime  int64  `json:"file_mtime" gorm:"not null;uniqueIndex:idx_report_key"`
	FileSize   int64  `json:"file_size" gorm:"not null;uniqueIndex:idx_report_key"`
	ResultData []byte `json:"-" gorm:"type:blob;not null"` // JSON-encoded analysis.Result
}

// Result returns the decoded analysis result
func (r *MixReport) Result() (*analysis.Result, error) {
	var result analysis.Result
	if err := json.Unmarshal(r.ResultData, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetResult encodes and sets the analysis result
func (r *MixReport) SetResult(result *analysis.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	r.ResultData = data
	return nil
}
