package importing

import "errors"

var (
	ErrInvalidImportFile = errors.New("invalid import file")
	ErrInvalidImportKind = errors.New("invalid import kind")
	ErrStageImportFile   = errors.New("failed to stage import file")
	ErrEnqueueImportJob  = errors.New("failed to enqueue import job")
	ErrInvalidJobID      = errors.New("invalid import job id")
	ErrJobNotFound       = errors.New("import job not found")
	ErrGetImportJob      = errors.New("failed to get import job")
)
