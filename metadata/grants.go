package metadata;

// Read and write the grant table from streams.

import (
   "encoding/json"

   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

// One file's worth of ACL entries.
type grantRow struct {
   File record.Id
   Grants map[string]permission.Level
}

// Read a full grant table into the given table and return the version read.
func ReadGrants(table *permission.Table, decoder *json.Decoder) (int, error) {
   size, version, err := decodeHeader(decoder);
   if (err != nil) {
      return 0, errors.WithStack(err);
   }

   for i := 0; i < size; i++ {
      var row grantRow;
      err = decoder.Decode(&row);
      if (err != nil) {
         return 0, errors.WithStack(err);
      }

      table.Load(row.File, row.Grants);
   }

   return version, nil;
}

// Write a full grant table.
func WriteGrants(table *permission.Table, version int, encoder *json.Encoder) error {
   var files []record.Id = table.Files();

   err := encodeHeader(encoder, len(files), version);
   if (err != nil) {
      return errors.WithStack(err);
   }

   for _, file := range(files) {
      var row grantRow = grantRow{
         File: file,
         Grants: table.EntriesFor(file),
      };

      err = encoder.Encode(&row);
      if (err != nil) {
         return errors.WithStack(err);
      }
   }

   return nil;
}
