package importing

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

var jobIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

type GetImportJobInput struct {
	ID string
}

type GetImportJobOutput struct {
	ID               string            `json:"id"`
	FileName         string            `json:"file_name"`
	ImportType       string            `json:"import_type"`
	Status           string            `json:"status"`
	RecordsProcessed int64             `json:"records_processed"`
	Errors           *domain.ErrorList `json:"errors"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error)
}

type jobReader interface {
	Get(ctx context.Context, jobID string) (*domain.ImportJob, error)
}

type getImportJob struct {
	jobs jobReader
}

func NewGetImportJob(jobs jobReader) GetImportJob {
	return &getImportJob{jobs: jobs}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (GetImportJobOutput, error) {
	if !jobIDPattern.MatchString(in.ID) {
		return GetImportJobOutput{}, ErrInvalidJobID
	}

	job, err := uc.jobs.Get(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return GetImportJobOutput{}, ErrJobNotFound
		}
		return GetImportJobOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	return jobToOutput(*job), nil
}

func jobToOutput(job domain.ImportJob) GetImportJobOutput {
	return GetImportJobOutput{
		ID:               job.ID,
		FileName:         job.FileName,
		ImportType:       string(job.Kind),
		Status:           string(job.Status),
		RecordsProcessed: job.RecordsProcessed,
		Errors:           job.Errors,
		ErrorMessage:     job.ErrorMessage,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}
