package keystream;

// Cipher-specific errors.

type InvalidKeyError struct {
}

func NewInvalidKeyError() *InvalidKeyError {
   return &InvalidKeyError{};
}

func (this *InvalidKeyError) Error() string {
   return "Invalid Key Error: Effective cipher key is empty.";
}
