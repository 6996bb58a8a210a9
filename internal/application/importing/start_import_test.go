package importing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	app "github.com/mohammadpnp/rental-import/internal/application/importing"
	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

type fakeEnqueuer struct {
	job   domain.NewJob
	calls int
	err   error
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, job domain.NewJob) (string, error) {
	f.calls++
	f.job = job
	if f.err != nil {
		return "", f.err
	}
	return "7f1a3c8e-0000-4000-8000-000000000001", nil
}

type fakeUploader struct {
	path  string
	data  []byte
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, path string, data []byte) error {
	f.calls++
	f.path = path
	f.data = data
	return f.err
}

func TestStartImportSuccess(t *testing.T) {
	t.Parallel()

	enqueuer := &fakeEnqueuer{}
	uploader := &fakeUploader{}
	useCase := app.NewStartImport(enqueuer, uploader)

	out, err := useCase.Execute(context.Background(), app.StartImportInput{
		FileName: "Agreements March.CSV",
		Kind:     "agreement",
		Data:     []byte("Agreement Number\nAGR-001\n"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.JobID == "" || out.Status != "pending" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if uploader.calls != 1 {
		t.Fatalf("expected one upload, got %d", uploader.calls)
	}
	if !strings.HasPrefix(uploader.path, "imports/agreement/") || !strings.HasSuffix(uploader.path, ".csv") {
		t.Fatalf("unexpected staged path: %s", uploader.path)
	}
	if enqueuer.job.SourcePath != uploader.path {
		t.Fatalf("job source path %s does not match staged path %s", enqueuer.job.SourcePath, uploader.path)
	}
	if enqueuer.job.Kind != domain.KindAgreement {
		t.Fatalf("unexpected kind: %s", enqueuer.job.Kind)
	}
}

func TestStartImportRejectsNonCSV(t *testing.T) {
	t.Parallel()

	enqueuer := &fakeEnqueuer{}
	uploader := &fakeUploader{}
	useCase := app.NewStartImport(enqueuer, uploader)

	for _, name := range []string{"", "agreements.xlsx", "agreements", "agreements.csv.txt"} {
		_, err := useCase.Execute(context.Background(), app.StartImportInput{
			FileName: name,
			Kind:     "agreement",
			Data:     []byte("x"),
		})
		if !errors.Is(err, app.ErrInvalidImportFile) {
			t.Fatalf("%q: expected ErrInvalidImportFile, got %v", name, err)
		}
	}

	if uploader.calls != 0 {
		t.Fatal("expected rejection before any store call")
	}
}

func TestStartImportRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	useCase := app.NewStartImport(&fakeEnqueuer{}, &fakeUploader{})

	_, err := useCase.Execute(context.Background(), app.StartImportInput{
		FileName: "agreements.csv",
		Kind:     "agreement",
	})
	if !errors.Is(err, app.ErrInvalidImportFile) {
		t.Fatalf("expected ErrInvalidImportFile, got %v", err)
	}
}

func TestStartImportRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{}
	useCase := app.NewStartImport(&fakeEnqueuer{}, uploader)

	_, err := useCase.Execute(context.Background(), app.StartImportInput{
		FileName: "agreements.csv",
		Kind:     "lease",
		Data:     []byte("x"),
	})
	if !errors.Is(err, app.ErrInvalidImportKind) {
		t.Fatalf("expected ErrInvalidImportKind, got %v", err)
	}
	if uploader.calls != 0 {
		t.Fatal("expected rejection before any store call")
	}
}

func TestStartImportEnqueueFailure(t *testing.T) {
	t.Parallel()

	useCase := app.NewStartImport(&fakeEnqueuer{err: errors.New("db down")}, &fakeUploader{})

	_, err := useCase.Execute(context.Background(), app.StartImportInput{
		FileName: "agreements.csv",
		Kind:     "agreement",
		Data:     []byte("x"),
	})
	if !errors.Is(err, app.ErrEnqueueImportJob) {
		t.Fatalf("expected ErrEnqueueImportJob, got %v", err)
	}
}
