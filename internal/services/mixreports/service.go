package mixreports

import (
	"context"
	"log"
	"strings"

	"github.com/soundmix/mixcheck-api/internal/models"
)

// service implements ReportService
type service struct {
	repo ReportRepository
}

// NewService creates a new mix report service
func NewService(repo ReportRepository) ReportService {
	return &service{
		repo: repo,
	}
}

// GetReport retrieves a cached report for a file version
func (s *service) GetReport(ctx context.Context, key ReportKey) (*models.MixReport, error) {
	if key.FilePath == "" {
		return nil, ErrInvalidPath
	}

	report, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		log.Printf("[DEBUG] Cache miss for %s (mtime=%d size=%d): %v", key.FilePath, key.FileMtime, key.FileSize, err)
		return nil, err
	}

	log.Printf("[DEBUG] Cache hit for %s (mtime=%d size=%d)", key.FilePath, key.FileMtime, key.FileSize)
	return report, nil
}

// SaveReport stores a report, replacing stale versions of the same file
func (s *service) SaveReport(ctx context.Context, report *models.MixReport) error {
	if report.FilePath == "" {
		return ErrInvalidPath
	}

	if len(report.ResultData) == 0 {
		return ErrInvalidResultData
	}

	key := ReportKey{FilePath: report.FilePath, FileMtime: report.FileMtime, FileSize: report.FileSize}

	// Older versions of the file are no longer useful
	if err := s.repo.DeleteStale(ctx, key); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, key)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("[DEBUG] Updating cached report for %s", report.FilePath)
		existing, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		existing.ResultData = report.ResultData
		return s.repo.Update(ctx, existing)
	}

	log.Printf("[DEBUG] Caching new report for %s", report.FilePath)
	err = s.repo.Create(ctx, report)
	if err != nil {
		// Check if it's a UNIQUE constraint violation (race condition)
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Printf("[DEBUG] Report for %s already cached by another worker", report.FilePath)
			return nil
		}
		return err
	}
	return nil
}

// DeleteReports removes all cached reports for a file path
func (s *service) DeleteReports(ctx context.Context, filePath string) error {
	if filePath == "" {
		return ErrInvalidPath
	}

	log.Printf("[DEBUG] Deleting cached reports for %s", filePath)
	return s.repo.DeleteByPath(ctx, filePath)
}

// ReportExists checks if a report exists for a file version
func (s *service) ReportExists(ctx context.Context, key ReportKey) (bool, error) {
	if key.FilePath == "" {
		return false, ErrInvalidPath
	}

	return s.repo.Exists(ctx, key)
}
