package keystream;

// The at-rest transform for all vault contents.
// A repeating keystream is built by concatenating the per-file key with the
// vault-wide secret, and every byte is xor'd against it.
// The transform is involutive, running it twice with the same key
// recovers the input.
// This is obfuscation, not strong cryptography.
// Anyone holding ciphertext of a known plaintext can recover the keystream,
// so keep the transform behind this type and the engine can swap it out later.

import (
   "github.com/eriq-augustine/vault/util"
)

const (
   KEY_LENGTH = 32
)

type Cipher struct {
   secret string
}

// The secret is loaded once at startup and never logged.
func NewCipher(secret string) *Cipher {
   return &Cipher{
      secret: secret,
   };
}

// Xor the data against the repeating keystream for the given per-file key.
// The output always has the same length as the input.
// An empty effective key (empty file key and empty secret) is an
// invariant violation, not a caller mistake.
func (this *Cipher) Transform(data []byte, fileKey string) ([]byte, error) {
   var effectiveKey string = fileKey + this.secret;
   if (len(effectiveKey) == 0) {
      return nil, NewInvalidKeyError();
   }

   var out []byte = make([]byte, len(data));
   for i, val := range(data) {
      out[i] = val ^ effectiveKey[i % len(effectiveKey)];
   }

   return out, nil;
}

// Generate a fresh per-file key.
// Uniqueness is not guaranteed, collisions are possible and undetected.
func GenerateKey() string {
   return util.RandomKeyString(KEY_LENGTH);
}
