package rental

import "errors"

var (
	ErrMissingAgreementNumber = errors.New("missing agreement number")
	ErrMissingCustomer        = errors.New("missing customer")
	ErrMissingChequeNumber    = errors.New("missing cheque number")
	ErrNegativeAmount         = errors.New("amount must not be negative")
)
