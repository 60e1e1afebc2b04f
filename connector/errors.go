package connector;

// Connector-specific errors.

import (
   "github.com/pkg/errors"
)

// The requested blob or metadata object does not exist in the backend.
// Callers decide whether that is fatal (a missing blob with live metadata is
// corruption, a missing table on first boot is fine).
type NotExistsError struct {
   key string
}

func NewNotExistsError(key string) *NotExistsError {
   return &NotExistsError{key};
}

func (this *NotExistsError) Error() string {
   return "Does not exist in backend storage: " + this.key;
}

func IsNotExists(err error) bool {
   _, ok := errors.Cause(err).(*NotExistsError);
   return ok;
}
