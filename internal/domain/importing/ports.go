package importing

import "context"

type JobRepository interface {
	Enqueue(ctx context.Context, job NewJob) (string, error)
	Get(ctx context.Context, jobID string) (*ImportJob, error)
}

type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte) error
	Download(ctx context.Context, path string) ([]byte, error)
	PublicURL(path string) string
	Remove(ctx context.Context, paths ...string) error
}
