package catalog

import "errors"

var (
	ErrNameRequired = errors.New("kra name is required")
	ErrKRANotFound  = errors.New("kra not found")
)
