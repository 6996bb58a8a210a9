package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
	"github.com/mohammadpnp/rental-import/internal/infrastructure/db/models"
)

var terminalStatuses = []string{
	string(domain.StatusCompleted),
	string(domain.StatusCompletedWithErrors),
	string(domain.StatusError),
}

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Enqueue(ctx context.Context, job domain.NewJob) (string, error) {
	row := models.ImportJob{
		FileName:   job.FileName,
		SourcePath: job.SourcePath,
		ImportType: string(job.Kind),
		Status:     string(domain.StatusPending),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create import job: %w", err)
	}

	return row.ID, nil
}

func (r *ImportJobRepository) Get(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}

	return rowToDomain(row)
}

func (r *ImportJobRepository) List(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	var rows []models.ImportJob

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}

	jobs := make([]domain.ImportJob, 0, len(rows))
	for _, row := range rows {
		job, err := rowToDomain(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// ClaimNext atomically moves the oldest pending job to processing.
// FOR UPDATE SKIP LOCKED keeps concurrent workers from double-claiming.
func (r *ImportJobRepository) ClaimNext(ctx context.Context) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).Raw(`
UPDATE import_jobs
SET status = ?, started_at = NOW(), updated_at = NOW()
WHERE id = (
  SELECT id FROM import_jobs
  WHERE status = ?
  ORDER BY created_at
  FOR UPDATE SKIP LOCKED
  LIMIT 1
)
RETURNING *
`, string(domain.StatusProcessing), string(domain.StatusPending)).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("claim import job: %w", err)
	}

	if row.ID == "" {
		return nil, nil
	}
	return rowToDomain(row)
}

// Complete finalizes a job. The non-terminal predicate makes terminal
// rows immutable: finalizing twice returns ErrJobTerminal.
func (r *ImportJobRepository) Complete(ctx context.Context, jobID string, status domain.Status, processed int64, errs *domain.ErrorList) error {
	if !status.Terminal() {
		return fmt.Errorf("complete import job: %q is not a terminal status", status)
	}

	var payload datatypes.JSON
	if !errs.Empty() {
		raw, err := json.Marshal(errs)
		if err != nil {
			return fmt.Errorf("marshal import errors: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	now := time.Now()
	return r.finalize(ctx, jobID, map[string]any{
		"status":            string(status),
		"records_processed": processed,
		"errors":            payload,
		"finished_at":       &now,
	})
}

func (r *ImportJobRepository) Fail(ctx context.Context, jobID, reason string) error {
	now := time.Now()
	return r.finalize(ctx, jobID, map[string]any{
		"status":        string(domain.StatusError),
		"error_message": reason,
		"finished_at":   &now,
	})
}

func (r *ImportJobRepository) finalize(ctx context.Context, jobID string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ? AND status NOT IN ?", jobID, terminalStatuses).
		Updates(updates)
	if tx.Error != nil {
		return fmt.Errorf("finalize import job: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ImportJob{}).Where("id = ?", jobID).Count(&count).Error; err != nil {
			return fmt.Errorf("finalize import job: %w", err)
		}
		if count == 0 {
			return domain.ErrJobNotFound
		}
		return domain.ErrJobTerminal
	}
	return nil
}

func (r *ImportJobRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count import jobs: %w", err)
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func rowToDomain(row models.ImportJob) (*domain.ImportJob, error) {
	var errList *domain.ErrorList
	if len(row.Errors) > 0 {
		errList = &domain.ErrorList{}
		if err := json.Unmarshal(row.Errors, errList); err != nil {
			return nil, fmt.Errorf("unmarshal import errors: %w", err)
		}
	}

	var message string
	if row.ErrorMessage != nil {
		message = *row.ErrorMessage
	}

	return &domain.ImportJob{
		ID:               row.ID,
		FileName:         row.FileName,
		SourcePath:       row.SourcePath,
		Kind:             domain.Kind(row.ImportType),
		Status:           domain.Status(row.Status),
		RecordsProcessed: row.RecordsProcessed,
		Errors:           errList,
		ErrorMessage:     message,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}
