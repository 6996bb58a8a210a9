package importing

import (
	"context"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
	"github.com/mohammadpnp/rental-import/pkg/cache"
)

const statsCacheKey = "import_stats"

type ImportStats struct {
	Total               int64 `json:"total"`
	Pending             int64 `json:"pending"`
	Processing          int64 `json:"processing"`
	Completed           int64 `json:"completed"`
	CompletedWithErrors int64 `json:"completed_with_errors"`
	Error               int64 `json:"error"`
}

type GetImportStats interface {
	Execute(ctx context.Context) (ImportStats, error)
}

type statusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

type getImportStats struct {
	jobs  statusCounter
	cache *cache.Cache[ImportStats]
}

// NewGetImportStats serves job-log aggregates from a TTL cache so the
// dashboard poll does not hit the store on every request. A nil clock
// falls back to time.Now.
func NewGetImportStats(jobs statusCounter, ttl time.Duration, clock cache.Clock) GetImportStats {
	return &getImportStats{
		jobs:  jobs,
		cache: cache.New[ImportStats](ttl, clock),
	}
}

func (uc *getImportStats) Execute(ctx context.Context) (ImportStats, error) {
	if stats, ok := uc.cache.Get(statsCacheKey); ok {
		return stats, nil
	}

	counts, err := uc.jobs.CountByStatus(ctx)
	if err != nil {
		return ImportStats{}, fmt.Errorf("count import jobs: %w", err)
	}

	stats := ImportStats{
		Pending:             counts[domain.StatusPending],
		Processing:          counts[domain.StatusProcessing],
		Completed:           counts[domain.StatusCompleted],
		CompletedWithErrors: counts[domain.StatusCompletedWithErrors],
		Error:               counts[domain.StatusError],
	}
	stats.Total = stats.Pending + stats.Processing + stats.Completed + stats.CompletedWithErrors + stats.Error

	uc.cache.Set(statsCacheKey, stats)
	return stats, nil
}
