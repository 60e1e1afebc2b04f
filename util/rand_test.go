package util;

import (
   "strings"
   "testing"

   "github.com/stretchr/testify/require"
)

func TestRandomStringLength(t *testing.T) {
   for _, length := range([]int{1, 16, 32, 100}) {
      require.Len(t, RandomString(length), length);
      require.Len(t, RandomKeyString(length), length);
   }
}

func TestRandomStringAlphabet(t *testing.T) {
   var value string = RandomString(1000);

   for _, char := range(value) {
      require.True(t, strings.ContainsRune(RANDOM_CHARS, char), string(char));
   }
}

func TestRandomKeyStringAlphabet(t *testing.T) {
   var value string = RandomKeyString(1000);

   for _, char := range(value) {
      require.True(t, strings.ContainsRune(KEY_CHARS, char), string(char));
   }
}

func TestRandomStringsDiffer(t *testing.T) {
   require.NotEqual(t, RandomString(32), RandomString(32));
}

func TestDeriveKeyDeterministic(t *testing.T) {
   var first string = DeriveKey("secret", "salt");

   require.NotEmpty(t, first);
   require.Equal(t, first, DeriveKey("secret", "salt"));
   require.NotEqual(t, first, DeriveKey("secret", "other-salt"));
   require.NotEqual(t, first, DeriveKey("other-secret", "salt"));
}
