package importing

import "time"

type Kind string

const (
	KindAgreement   Kind = "agreement"
	KindPayment     Kind = "payment"
	KindInstallment Kind = "installment"
	KindTransaction Kind = "transaction"
)

func KindFrom(value string) (Kind, error) {
	switch Kind(value) {
	case KindAgreement, KindPayment, KindInstallment, KindTransaction:
		return Kind(value), nil
	}
	return "", ErrUnknownKind
}

type Status string

const (
	StatusPending             Status = "pending"
	StatusProcessing          Status = "processing"
	StatusCompleted           Status = "completed"
	StatusCompletedWithErrors Status = "completed_with_errors"
	StatusError               Status = "error"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedWithErrors, StatusError:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next respects the
// monotonic pending -> processing -> terminal lifecycle. Terminal
// states never transition.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusError
	case StatusProcessing:
		return next.Terminal()
	}
	return false
}

type SkippedRow struct {
	Row    int               `json:"row"`
	Data   map[string]string `json:"data,omitempty"`
	Reason string            `json:"reason"`
}

type FailedRow struct {
	Row   int               `json:"row"`
	Data  map[string]string `json:"data,omitempty"`
	Error string            `json:"error"`
}

type ErrorList struct {
	Skipped []SkippedRow `json:"skipped"`
	Failed  []FailedRow  `json:"failed"`
}

func (e *ErrorList) Empty() bool {
	return e == nil || (len(e.Skipped) == 0 && len(e.Failed) == 0)
}

type ImportJob struct {
	ID               string
	FileName         string
	SourcePath       string
	Kind             Kind
	Status           Status
	RecordsProcessed int64
	Errors           *ErrorList
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewJob carries the fields the client sets when staging an import.
type NewJob struct {
	FileName   string
	SourcePath string
	Kind       Kind
}
