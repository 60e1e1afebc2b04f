package store;

// Store-specific errors.

import (
   "fmt"
)

type DoesntExistError struct {
   id int
}

func NewDoesntExistError(id int) *DoesntExistError {
   return &DoesntExistError{id};
}

func (this *DoesntExistError) Error() string {
   return fmt.Sprintf("No record with id: %d.", this.id);
}
