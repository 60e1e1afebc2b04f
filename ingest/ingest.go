package ingest;

// The admission gate for uploads.
// Name sanitation plus a coarse content check (extension denylist, size bounds).
// This is not malware detection.
// Everything here must run before any ciphertext is written.

import (
   "fmt"
   "strings"
)

const (
   MAX_NAME_LENGTH = 255

   // 100 MiB.
   DEFAULT_MAX_FILE_SIZE = uint64(100 * 1024 * 1024)

   REPLACEMENT_CHAR = '_'
)

// Executable-style extensions that are never admitted.
var defaultDeniedExtensions []string = []string{
   ".exe", ".bat", ".cmd", ".com", ".scr", ".vbs", ".js", ".jar",
};

type Validator struct {
   maxFileSize uint64
   deniedExtensions map[string]bool
}

// Zero maxFileSize means the default.
// Nil deniedExtensions means the default list, empty means deny nothing.
func NewValidator(maxFileSize uint64, deniedExtensions []string) *Validator {
   if (maxFileSize == 0) {
      maxFileSize = DEFAULT_MAX_FILE_SIZE;
   }

   if (deniedExtensions == nil) {
      deniedExtensions = defaultDeniedExtensions;
   }

   var denied map[string]bool = make(map[string]bool, len(deniedExtensions));
   for _, ext := range(deniedExtensions) {
      denied[strings.ToLower(ext)] = true;
   }

   return &Validator{
      maxFileSize: maxFileSize,
      deniedExtensions: denied,
   };
}

func DefaultValidator() *Validator {
   return NewValidator(0, nil);
}

// Check whether content of this name and size may enter the vault.
func (this *Validator) Check(name string, size uint64) error {
   var ext string = strings.ToLower(Extension(name));
   if (this.deniedExtensions[ext]) {
      return NewRejectedError(fmt.Sprintf("Dangerous extension: %s.", ext));
   }

   if (size == 0) {
      return NewRejectedError("File is empty.");
   }

   if (size > this.maxFileSize) {
      return NewRejectedError(fmt.Sprintf("File too large: %d bytes (max %d).", size, this.maxFileSize));
   }

   return nil;
}

// Rewrite a raw filename into a safe display name.
// The result carries no path separators, no control characters,
// and none of the filesystem-reserved punctuation.
func SanitizeName(raw string) string {
   var builder strings.Builder;

   for _, char := range(raw) {
      if (char == '/' || char == '\\') {
         continue;
      }

      if (char < 32 || char == 127 || isReservedChar(char)) {
         builder.WriteRune(REPLACEMENT_CHAR);
         continue;
      }

      builder.WriteRune(char);
   }

   var name string = builder.String();

   // Limit length (in runes, not bytes).
   var runes []rune = []rune(name);
   if (len(runes) > MAX_NAME_LENGTH) {
      name = string(runes[0:MAX_NAME_LENGTH]);
   }

   return name;
}

// The extension of a filename, dot included.
// Empty if there is no dot.
func Extension(name string) string {
   var index int = strings.LastIndex(name, ".");
   if (index == -1) {
      return "";
   }

   return name[index:];
}

func isReservedChar(char rune) bool {
   switch (char) {
      case '<', '>', ':', '"', '|', '?', '*':
         return true;
      default:
         return false;
   }
}
