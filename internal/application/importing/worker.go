package importing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

type workerJobRepo interface {
	ClaimNext(ctx context.Context) (*domain.ImportJob, error)
}

type jobRunner interface {
	Run(ctx context.Context, job domain.ImportJob) error
}

type WorkerConfig struct {
	Workers      int
	PollInterval time.Duration
}

// Worker claims pending jobs and hands them to the processor. Rows
// within a job stay strictly sequential; parallelism only exists
// across jobs when Workers > 1.
type Worker struct {
	repo      workerJobRepo
	processor jobRunner
	cfg       WorkerConfig
	log       *logrus.Logger

	once sync.Once
}

func NewWorker(repo workerJobRepo, processor jobRunner, cfg WorkerConfig, log *logrus.Logger) *Worker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{
		repo:      repo,
		processor: processor,
		cfg:       cfg,
		log:       log,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.loop(ctx)
		}
	})
}

func (w *Worker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.WithError(err).Error("claim next import job failed")
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		w.log.WithFields(logrus.Fields{"job": job.ID, "kind": job.Kind, "file": job.FileName}).Info("processing import job")
		if err := w.processor.Run(ctx, *job); err != nil {
			w.log.WithError(err).WithField("job", job.ID).Error("import job failed")
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
