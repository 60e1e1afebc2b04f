package engine;

// Engine-specific errors.
// Validation errors come from the ingest package and key errors from the
// keystream package, everything else in the taxonomy lives here.

import (
   "fmt"
)

// Authorization failure.
// The message never says whether the file exists,
// existence itself is information a non-owner does not get.
type AccessDeniedError struct {
}

func NewAccessDeniedError() *AccessDeniedError {
   return &AccessDeniedError{};
}

func (this *AccessDeniedError) Error() string {
   return "Access Denied.";
}

type NotFoundError struct {
   id int
}

func NewNotFoundError(id int) *NotFoundError {
   return &NotFoundError{id};
}

func (this *NotFoundError) Error() string {
   return fmt.Sprintf("Not Found: no file with id %d.", this.id);
}

// The metadata is fine but the ciphertext is missing or unreadable.
// Storage trouble, not an authorization problem, alerting should treat
// these differently.
type CorruptStorageError struct {
   message string
}

func NewCorruptStorageError(message string) *CorruptStorageError {
   return &CorruptStorageError{message};
}

func (this *CorruptStorageError) Error() string {
   return "Corrupt Storage Error: " + this.message;
}

type IllegalOperationError struct {
   message string
}

func NewIllegalOperationError(message string) *IllegalOperationError {
   return &IllegalOperationError{message};
}

func (this *IllegalOperationError) Error() string {
   return "Illegal Operation Error: " + this.message;
}
