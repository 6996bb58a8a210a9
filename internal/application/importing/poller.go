package importing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

// ErrPollTimeout is reported when a job does not reach a terminal
// state inside the poll ceiling. It is distinct from a job that
// finished with status "error".
var ErrPollTimeout = errors.New("import timed out")

type pollerJobReader interface {
	Get(ctx context.Context, jobID string) (*domain.ImportJob, error)
}

// Poller watches one job at a fixed interval until it reaches a
// terminal state or the timeout elapses, then fires exactly one of
// the two callbacks. The interval timer is always stopped before a
// callback runs, so a late tick can never fire a second one.
type Poller struct {
	jobs     pollerJobReader
	interval time.Duration
	timeout  time.Duration
}

func NewPoller(jobs pollerJobReader, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Poller{jobs: jobs, interval: interval, timeout: timeout}
}

func (p *Poller) Watch(ctx context.Context, jobID string, onDone func(domain.ImportJob), onErr func(error)) {
	ticker := time.NewTicker(p.interval)
	deadline := time.NewTimer(p.timeout)

	var once sync.Once
	finish := func(fn func()) {
		once.Do(func() {
			ticker.Stop()
			deadline.Stop()
			fn()
		})
	}

	check := func() bool {
		job, err := p.jobs.Get(ctx, jobID)
		if err != nil {
			if errors.Is(err, domain.ErrJobNotFound) {
				finish(func() { onErr(err) })
				return true
			}
			// Transient read failure: keep polling until the ceiling.
			return false
		}

		if !job.Status.Terminal() {
			return false
		}

		if job.Status == domain.StatusError {
			finish(func() { onErr(fmt.Errorf("import failed: %s", job.ErrorMessage)) })
			return true
		}
		finish(func() { onDone(*job) })
		return true
	}

	if check() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			finish(func() { onErr(ctx.Err()) })
			return
		case <-deadline.C:
			finish(func() { onErr(ErrPollTimeout) })
			return
		case <-ticker.C:
			if check() {
				return
			}
		}
	}
}
