package metadata;

// Helpers that deal only with metadata (the record and grant tables).

import (
   "encoding/json"

   "github.com/pkg/errors"
)

const (
   // If we have vaults in the wild, we will need to make sure we
   // are looking at consistent structure.
   FORMAT_VERSION = 0
)

// Every table starts with one of these.
// The version is the table version, not the format version.
type tableHeader struct {
   FormatVersion int
   Size int
   Version int
}

// Decode and verify the header of a metadata table.
// Return the size and table version.
func decodeHeader(decoder *json.Decoder) (int, int, error) {
   var header tableHeader;

   err := decoder.Decode(&header);
   if (err != nil) {
      return 0, 0, errors.Wrap(err, "Could not decode metadata header.");
   }

   if (header.FormatVersion != FORMAT_VERSION) {
      return 0, 0, errors.Errorf(
            "Mismatch in metadata format version. Expected: %d, Found: %d", FORMAT_VERSION, header.FormatVersion);
   }

   return header.Size, header.Version, nil;
}

// Encode the header of a metadata table.
func encodeHeader(encoder *json.Encoder, size int, version int) (error) {
   var header tableHeader = tableHeader{
      FormatVersion: FORMAT_VERSION,
      Size: size,
      Version: version,
   };

   return errors.Wrap(encoder.Encode(&header), "Could not encode metadata header.");
}
