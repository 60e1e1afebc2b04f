package util;

import (
   "crypto/sha256"
   "encoding/hex"

   "golang.org/x/crypto/pbkdf2"
)

const (
   DERIVED_KEY_LENGTH = 32
   DERIVE_ITERATIONS = 4096
)

// Get the SHA2-256 string.
func SHA256Hex(val string) string {
   data := sha256.Sum256([]byte(val));
   return hex.EncodeToString(data[:]);
}

// Derive fixed-length key material from a secret.
// Used for keys that protect metadata (not file contents).
func DeriveKey(secret string, salt string) string {
   data := pbkdf2.Key([]byte(secret), []byte(salt), DERIVE_ITERATIONS, DERIVED_KEY_LENGTH, sha256.New);
   return hex.EncodeToString(data);
}
