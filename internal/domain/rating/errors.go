package rating

import (
	"errors"
	"fmt"
)

var (
	ErrRatingOutOfRange = fmt.Errorf("rating must be between %d and %d", ScaleMin, ScaleMax)
	ErrKRANotFound      = errors.New("rated kra not found")
)
