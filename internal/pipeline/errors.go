package pipeline

import (
	"errors"
	"fmt"
)

// ErrStorageDisabled is returned by operations that need the database when none is configured
var ErrStorageDisabled = errors.New("storage is not configured")

// InputError reports a request the service cannot act on as given
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
