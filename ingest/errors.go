package ingest;

// Validation errors are caller-correctable and always carry a reason.

type RejectedError struct {
   reason string
}

func NewRejectedError(reason string) *RejectedError {
   return &RejectedError{reason};
}

func (this *RejectedError) Error() string {
   return "Validation Failed: " + this.reason;
}

func (this *RejectedError) Reason() string {
   return this.reason;
}
