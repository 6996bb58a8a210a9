package importing

import "errors"

var (
	ErrUnknownKind      = errors.New("unknown import kind")
	ErrJobNotFound      = errors.New("import job not found")
	ErrJobTerminal      = errors.New("import job already in a terminal state")
	ErrCustomerNotFound = errors.New("customer not found")
)
