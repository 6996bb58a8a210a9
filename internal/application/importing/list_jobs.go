package importing

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

const defaultListLimit = 50

type ListImportJobsInput struct {
	Limit int
}

type ListImportJobsOutput struct {
	Jobs []GetImportJobOutput `json:"jobs"`
}

type ListImportJobs interface {
	Execute(ctx context.Context, in ListImportJobsInput) (ListImportJobsOutput, error)
}

type jobLister interface {
	List(ctx context.Context, limit int) ([]domain.ImportJob, error)
}

type listImportJobs struct {
	jobs jobLister
}

func NewListImportJobs(jobs jobLister) ListImportJobs {
	return &listImportJobs{jobs: jobs}
}

func (uc *listImportJobs) Execute(ctx context.Context, in ListImportJobsInput) (ListImportJobsOutput, error) {
	limit := in.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	jobs, err := uc.jobs.List(ctx, limit)
	if err != nil {
		return ListImportJobsOutput{}, fmt.Errorf("list import jobs: %w", err)
	}

	out := ListImportJobsOutput{Jobs: make([]GetImportJobOutput, 0, len(jobs))}
	for _, job := range jobs {
		out.Jobs = append(out.Jobs, jobToOutput(job))
	}
	return out, nil
}
