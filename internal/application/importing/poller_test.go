package importing_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	app "github.com/mohammadpnp/rental-import/internal/application/importing"
	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

type fakeJobReader struct {
	mu       sync.Mutex
	calls    int
	statuses []domain.Status
	err      error
	message  string
}

func (f *fakeJobReader) Get(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	status := f.statuses[len(f.statuses)-1]
	if f.calls < len(f.statuses) {
		status = f.statuses[f.calls]
	}
	f.calls++

	return &domain.ImportJob{
		ID:           jobID,
		Status:       status,
		ErrorMessage: f.message,
	}, nil
}

type callbackCounter struct {
	mu    sync.Mutex
	done  int
	errs  []error
	total int
}

func (c *callbackCounter) onDone(domain.ImportJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	c.total++
}

func (c *callbackCounter) onErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
	c.total++
}

func TestPollerCompletesOnce(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{statuses: []domain.Status{
		domain.StatusPending,
		domain.StatusProcessing,
		domain.StatusCompleted,
	}}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, 5*time.Millisecond, time.Second)
	poller.Watch(context.Background(), "job-1", counter.onDone, counter.onErr)

	if counter.done != 1 {
		t.Fatalf("expected 1 done callback, got %d", counter.done)
	}
	if counter.total != 1 {
		t.Fatalf("expected exactly one callback, got %d", counter.total)
	}
}

func TestPollerImmediateTerminal(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{statuses: []domain.Status{domain.StatusCompletedWithErrors}}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, time.Hour, time.Hour)
	poller.Watch(context.Background(), "job-1", counter.onDone, counter.onErr)

	if counter.done != 1 || counter.total != 1 {
		t.Fatalf("expected a single immediate done callback, got done=%d total=%d", counter.done, counter.total)
	}
	if reader.calls != 1 {
		t.Fatalf("expected a single poll, got %d", reader.calls)
	}
}

func TestPollerTimeout(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{statuses: []domain.Status{domain.StatusProcessing}}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, 5*time.Millisecond, 30*time.Millisecond)
	poller.Watch(context.Background(), "job-1", counter.onDone, counter.onErr)

	if counter.total != 1 {
		t.Fatalf("expected exactly one callback, got %d", counter.total)
	}
	if len(counter.errs) != 1 || !errors.Is(counter.errs[0], app.ErrPollTimeout) {
		t.Fatalf("expected ErrPollTimeout, got %v", counter.errs)
	}
}

func TestPollerServerErrorDistinctFromTimeout(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{
		statuses: []domain.Status{domain.StatusProcessing, domain.StatusError},
		message:  "missing required headers: STATUS",
	}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, 5*time.Millisecond, time.Second)
	poller.Watch(context.Background(), "job-1", counter.onDone, counter.onErr)

	if len(counter.errs) != 1 {
		t.Fatalf("expected one error callback, got %v", counter.errs)
	}
	err := counter.errs[0]
	if errors.Is(err, app.ErrPollTimeout) {
		t.Fatal("server-reported error must not look like a timeout")
	}
	if !strings.Contains(err.Error(), "missing required headers") {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestPollerUnknownJob(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{err: domain.ErrJobNotFound}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, 5*time.Millisecond, time.Second)
	poller.Watch(context.Background(), "job-404", counter.onDone, counter.onErr)

	if len(counter.errs) != 1 || !errors.Is(counter.errs[0], domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", counter.errs)
	}
}

func TestPollerTerminationRace(t *testing.T) {
	t.Parallel()

	// Tight interval with a timeout landing in the same window: either
	// the terminal observation or the deadline may win, but the
	// callbacks must fire exactly once in total.
	reader := &fakeJobReader{statuses: []domain.Status{
		domain.StatusProcessing,
		domain.StatusProcessing,
		domain.StatusCompleted,
	}}
	counter := &callbackCounter{}

	poller := app.NewPoller(reader, time.Millisecond, 2*time.Millisecond)
	poller.Watch(context.Background(), "job-1", counter.onDone, counter.onErr)

	if counter.total != 1 {
		t.Fatalf("expected exactly one callback under tick/deadline race, got %d", counter.total)
	}
}

func TestPollerContextCancellation(t *testing.T) {
	t.Parallel()

	reader := &fakeJobReader{statuses: []domain.Status{domain.StatusProcessing}}
	counter := &callbackCounter{}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	poller := app.NewPoller(reader, 5*time.Millisecond, time.Hour)
	poller.Watch(ctx, "job-1", counter.onDone, counter.onErr)

	if counter.total != 1 || len(counter.errs) != 1 {
		t.Fatalf("expected one error callback, got done=%d errs=%v", counter.done, counter.errs)
	}
	if !errors.Is(counter.errs[0], context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", counter.errs[0])
	}
}
