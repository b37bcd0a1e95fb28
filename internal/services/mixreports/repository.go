package mixreports

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/soundmix/mixcheck-api/internal/models"
)

// repository implements ReportRepository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new mix report repository
func NewRepository(db *gorm.DB) ReportRepository {
	return &repository{db: db}
}

// GetByKey retrieves a report by file version
func (r *repository) GetByKey(ctx context.Context, key ReportKey) (*models.MixReport, error) {
	var report models.MixReport
	err := r.db.WithContext(ctx).
		Where("file_path = ? AND file_mtime = ? AND file_size = ?", key.FilePath, key.FileMtime, key.FileSize).
		First(&report).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// Create saves a new report
func (r *repository) Create(ctx context.Context, report *models.MixReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// Update modifies an existing report
func (r *repository) Update(ctx context.Context, report *models.MixReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// DeleteByPath removes all reports for a file path
func (r *repository) DeleteByPath(ctx context.Context, filePath string) error {
	result := r.db.WithContext(ctx).
		Where("file_path = ?", filePath).
		Delete(&models.MixReport{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}

	return nil
}

// DeleteStale removes reports for a path that do not match the key
func (r *repository) DeleteStale(ctx context.Context, key ReportKey) error {
	return r.db.WithContext(ctx).
		Where("file_path = ? AND (file_mtime != ? OR file_size != ?)", key.FilePath, key.FileMtime, key.FileSize).
		Delete(&models.MixReport{}).Error
}

// Exists checks if a report exists for a file version
func (r *repository) Exists(ctx context.Context, key ReportKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MixReport{}).
		Where("file_path = ? AND file_mtime = ? AND file_size = ?", key.FilePath, key.FileMtime, key.FileSize).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
