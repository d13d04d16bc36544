package jobkra

import "errors"

var (
	ErrNameRequired  = errors.New("job-specific kra name is required")
	ErrNamesRequired = errors.New("at least one kra name is required")
	ErrNotFound      = errors.New("job-specific kra not found")
)
