package mixreports

import (
	"context"

	"github.com/soundmix/mixcheck-api/internal/models"
)

// ReportKey identifies one version of a media file. A report is reusable
// only while the file on disk still has the same mtime and size.
type ReportKey struct {
	FilePath  string
	FileMtime int64
	FileSize  int64
}

// ReportService defines the interface for cached mix report operations
type ReportService interface {
	// GetReport retrieves a cached report for a file version
	GetReport(ctx context.Context, key ReportKey) (*models.MixReport, error)

	// SaveReport stores a report, replacing stale versions of the same file
	SaveReport(ctx context.Context, report *models.MixReport) error

	// DeleteReports removes all cached reports for a file path
	DeleteReports(ctx context.Context, filePath string) error

	// ReportExists checks if a report exists for a file version
	ReportExists(ctx context.Context, key ReportKey) (bool, error)
}

// ReportRepository defines the interface for mix report data access
type ReportRepository interface {
	// GetByKey retrieves a report by file version
	GetByKey(ctx context.Context, key ReportKey) (*models.MixReport, error)

	// Create saves a new report
	Create(ctx context.Context, report *models.MixReport) error

	// Update modifies an existing report
	Update(ctx context.Context, report *models.MixReport) error

	// DeleteByPath removes all reports for a file path
	DeleteByPath(ctx context.Context, filePath string) error

	// DeleteStale removes reports for a path that do not match the key
	DeleteStale(ctx context.Context, key ReportKey) error

	// Exists checks if a report exists for a file version
	Exists(ctx context.Context, key ReportKey) (bool, error)
}
