package importing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

type StartImportInput struct {
	FileName string
	Kind     string
	Data     []byte
}

type StartImportOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type importJobEnqueuer interface {
	Enqueue(ctx context.Context, job domain.NewJob) (string, error)
}

type stagingStore interface {
	Upload(ctx context.Context, path string, data []byte) error
}

type startImport struct {
	jobs  importJobEnqueuer
	store stagingStore
}

func NewStartImport(jobs importJobEnqueuer, store stagingStore) StartImport {
	return &startImport{jobs: jobs, store: store}
}

// Execute rejects anything that is not a .csv before touching the
// store, stages the raw bytes, and records a pending job for the
// worker to pick up.
func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" || strings.ToLower(filepath.Ext(fileName)) != ".csv" || len(in.Data) == 0 {
		return StartImportOutput{}, ErrInvalidImportFile
	}

	kind, err := domain.KindFrom(strings.ToLower(strings.TrimSpace(in.Kind)))
	if err != nil {
		return StartImportOutput{}, ErrInvalidImportKind
	}

	sourcePath := fmt.Sprintf("imports/%s/%s.csv", kind, uuid.NewString())
	if err := uc.store.Upload(ctx, sourcePath, in.Data); err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrStageImportFile, err)
	}

	jobID, err := uc.jobs.Enqueue(ctx, domain.NewJob{
		FileName:   fileName,
		SourcePath: sourcePath,
		Kind:       kind,
	})
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartImportOutput{
		JobID:  jobID,
		Status: string(domain.StatusPending),
	}, nil
}
