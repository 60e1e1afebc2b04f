package util;

import (
   "crypto/rand"

   "github.com/eriq-augustine/golog"
)

const (
   RANDOM_CHARS = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
   // Key material gets a wider alphabet.
   KEY_CHARS = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!@#$%^&*"
)

func RandomString(length int) string {
   return randomString(length, RANDOM_CHARS);
}

func RandomKeyString(length int) string {
   return randomString(length, KEY_CHARS);
}

func randomString(length int, alphabet string) string {
   if (length <= 0) {
      golog.Panic("Random string length must be positive.");
   }

   bytes := make([]byte, length);
   _, err := rand.Read(bytes);
   if (err != nil) {
      golog.PanicE("Unable to generate random string", err);
   }

   for i, val := range(bytes) {
      bytes[i] = alphabet[int(val) % len(alphabet)];
   }

   return string(bytes)
}
