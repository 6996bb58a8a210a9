package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
	"github.com/mohammadpnp/rental-import/internal/domain/rental"
	"github.com/mohammadpnp/rental-import/pkg/retry"
)

// batchSize bounds how many rows are walked between progress log
// lines. It is not a transaction boundary: every row is inserted
// independently and one bad row never aborts its siblings.
const batchSize = 50

type RecordWriter interface {
	FindCustomerIDByName(ctx context.Context, name string) (string, error)
	UpsertCustomerByName(ctx context.Context, name string) (string, error)
	InsertAgreement(ctx context.Context, agreement rental.Agreement) error
	InsertPayment(ctx context.Context, payment rental.Payment) error
	InsertTransaction(ctx context.Context, transaction rental.Transaction) error
	InsertInstallment(ctx context.Context, installment rental.Installment) error
}

type processorJobRepo interface {
	Complete(ctx context.Context, jobID string, status domain.Status, processed int64, errs *domain.ErrorList) error
	Fail(ctx context.Context, jobID string, reason string) error
}

type objectDownloader interface {
	Download(ctx context.Context, path string) ([]byte, error)
}

type Processor struct {
	jobs   processorJobRepo
	store  objectDownloader
	writer RecordWriter
	retry  retry.Config
	log    *logrus.Logger
}

func NewProcessor(jobs processorJobRepo, store objectDownloader, writer RecordWriter, retryCfg retry.Config, log *logrus.Logger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		jobs:   jobs,
		store:  store,
		writer: writer,
		retry:  retryCfg,
		log:    log,
	}
}

// Run executes one claimed job to completion: download the staged
// file, check required headers once, then walk rows in file order
// accumulating skipped/failed entries. The job log is finalized
// exactly once at the end.
func (p *Processor) Run(ctx context.Context, job domain.ImportJob) error {
	var data []byte
	err := retry.Do(ctx, p.retry, func() error {
		var downloadErr error
		data, downloadErr = p.store.Download(ctx, job.SourcePath)
		return downloadErr
	})
	if err != nil {
		return p.failJob(ctx, job, fmt.Errorf("download %s: %w", job.SourcePath, err))
	}

	schema, err := domain.SchemaFor(job.Kind)
	if err != nil {
		return p.failJob(ctx, job, err)
	}

	table := domain.ParseTable(string(data), ",")
	if missing := schema.MissingHeaders(table.Headers); len(missing) > 0 {
		return p.failJob(ctx, job, fmt.Errorf("missing required headers: %s", strings.Join(missing, ", ")))
	}

	var processed int64
	var errs domain.ErrorList

	rows := table.Rows
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		for _, row := range rows[start:end] {
			if !row.Valid {
				errs.Failed = append(errs.Failed, domain.FailedRow{
					Row:   row.Index,
					Error: fmt.Sprintf("expected %d fields, got %d", len(table.Headers), row.FieldCount),
				})
				continue
			}

			normalized, normErr := schema.NormalizeRow(row)
			if normErr != nil {
				errs.Failed = append(errs.Failed, domain.FailedRow{
					Row:   row.Index,
					Data:  row.Fields,
					Error: normErr.Error(),
				})
				continue
			}

			if insertErr := p.insertRow(ctx, job.Kind, normalized); insertErr != nil {
				if errors.Is(insertErr, domain.ErrCustomerNotFound) {
					errs.Skipped = append(errs.Skipped, domain.SkippedRow{
						Row:    row.Index,
						Data:   row.Fields,
						Reason: insertErr.Error(),
					})
				} else {
					errs.Failed = append(errs.Failed, domain.FailedRow{
						Row:   row.Index,
						Data:  row.Fields,
						Error: insertErr.Error(),
					})
				}
				continue
			}
			processed++
		}

		p.log.WithFields(logrus.Fields{
			"job":       job.ID,
			"kind":      job.Kind,
			"rows":      end,
			"processed": processed,
		}).Debug("import batch processed")
	}

	status := domain.StatusCompleted
	var errList *domain.ErrorList
	if !errs.Empty() {
		status = domain.StatusCompletedWithErrors
		errList = &errs
	}

	if err := p.jobs.Complete(ctx, job.ID, status, processed, errList); err != nil {
		return fmt.Errorf("complete job %s: %w", job.ID, err)
	}

	p.log.WithFields(logrus.Fields{
		"job":       job.ID,
		"kind":      job.Kind,
		"status":    status,
		"processed": processed,
		"skipped":   len(errs.Skipped),
		"failed":    len(errs.Failed),
	}).Info("import job finished")

	return nil
}

func (p *Processor) failJob(ctx context.Context, job domain.ImportJob, cause error) error {
	if err := p.jobs.Fail(ctx, job.ID, cause.Error()); err != nil {
		return fmt.Errorf("%v; fail update failed: %w", cause, err)
	}
	return cause
}

func (p *Processor) insertRow(ctx context.Context, kind domain.Kind, fields map[string]string) error {
	switch kind {
	case domain.KindAgreement:
		return p.insertAgreement(ctx, fields)
	case domain.KindPayment:
		return p.insertPayment(ctx, fields)
	case domain.KindTransaction:
		return p.insertTransaction(ctx, fields)
	case domain.KindInstallment:
		return p.insertInstallment(ctx, fields)
	}
	return domain.ErrUnknownKind
}

func (p *Processor) insertAgreement(ctx context.Context, fields map[string]string) error {
	// Agreements never auto-create customers: an unknown name is a
	// skip, not a failure.
	customerID, err := p.findCustomer(ctx, fields["full_name"])
	if err != nil {
		return err
	}

	checkout, err := parseISODate(fields["Check-out Date"])
	if err != nil {
		return err
	}
	checkin, err := parseISODate(fields["Check-in Date"])
	if err != nil {
		return err
	}

	var returnDate *time.Time
	if fields["Return Date"] != "" {
		parsed, err := parseISODate(fields["Return Date"])
		if err != nil {
			return err
		}
		returnDate = &parsed
	}

	agreement, err := rental.NewAgreement(
		fields["Agreement Number"],
		fields["License No"],
		customerID,
		fields["License Number"],
		checkout,
		checkin,
		returnDate,
		fields["STATUS"],
	)
	if err != nil {
		return err
	}

	return retry.Do(ctx, p.retry, func() error {
		return p.writer.InsertAgreement(ctx, agreement)
	})
}

func (p *Processor) insertPayment(ctx context.Context, fields map[string]string) error {
	payment, err := p.buildPayment(ctx, fields)
	if err != nil {
		return err
	}

	return retry.Do(ctx, p.retry, func() error {
		return p.writer.InsertPayment(ctx, payment)
	})
}

func (p *Processor) insertTransaction(ctx context.Context, fields map[string]string) error {
	payment, err := p.buildPayment(ctx, fields)
	if err != nil {
		return err
	}

	transaction := rental.NewTransaction(payment, fields["Type"], fields["License_Plate"], fields["Vehicle"])

	return retry.Do(ctx, p.retry, func() error {
		return p.writer.InsertTransaction(ctx, transaction)
	})
}

func (p *Processor) buildPayment(ctx context.Context, fields map[string]string) (rental.Payment, error) {
	customerID, err := p.upsertCustomer(ctx, fields["Customer_Name"])
	if err != nil {
		return rental.Payment{}, err
	}

	amount, err := decimal.NewFromString(fields["Amount"])
	if err != nil {
		return rental.Payment{}, fmt.Errorf("Amount: %v", err)
	}

	paymentDate, err := parseISODate(fields["Payment_Date"])
	if err != nil {
		return rental.Payment{}, err
	}

	return rental.NewPayment(
		fields["Lease_ID"],
		customerID,
		amount,
		paymentDate,
		fields["Payment_Method"],
		fields["Transaction_ID"],
		fields["Description"],
		fields["Status"],
	)
}

func (p *Processor) insertInstallment(ctx context.Context, fields map[string]string) error {
	amount, err := decimal.NewFromString(fields["Amount"])
	if err != nil {
		return fmt.Errorf("Amount: %v", err)
	}

	dueDate, err := parseISODate(fields["Date"])
	if err != nil {
		return err
	}

	var balance decimal.NullDecimal
	if fields["sold"] != "" {
		parsed, err := decimal.NewFromString(fields["sold"])
		if err != nil {
			return fmt.Errorf("sold: %v", err)
		}
		balance = decimal.NullDecimal{Decimal: parsed, Valid: true}
	}

	installment, err := rental.NewInstallment(fields["N°cheque"], amount, dueDate, fields["Drawee Bank"], balance)
	if err != nil {
		return err
	}

	return retry.Do(ctx, p.retry, func() error {
		return p.writer.InsertInstallment(ctx, installment)
	})
}

func (p *Processor) findCustomer(ctx context.Context, name string) (string, error) {
	var id string
	err := retry.Do(ctx, p.retry, func() error {
		var findErr error
		id, findErr = p.writer.FindCustomerIDByName(ctx, name)
		if errors.Is(findErr, domain.ErrCustomerNotFound) {
			// Deterministic miss, not a transient fault.
			id = ""
			return nil
		}
		return findErr
	})
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, name)
	}
	return id, nil
}

func (p *Processor) upsertCustomer(ctx context.Context, name string) (string, error) {
	var id string
	err := retry.Do(ctx, p.retry, func() error {
		var upsertErr error
		id, upsertErr = p.writer.UpsertCustomerByName(ctx, name)
		return upsertErr
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func parseISODate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return parsed, nil
}
