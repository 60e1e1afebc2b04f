package metadata;

// Read and write the record table from streams.

import (
   "encoding/json"

   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/record"
)

// Read a full record table into memory.
// Returns the ids in the order they were written and the version read.
// This function will not clear the given map.
// We read from a decoder owned by someone else since the JSON decoder
// may consume extra bytes at the end, letting the caller stack
// multiple tables in one stream.
func ReadRecords(records map[record.Id]*record.FileRecord, decoder *json.Decoder) ([]record.Id, int, error) {
   size, version, err := decodeHeader(decoder);
   if (err != nil) {
      return nil, 0, errors.WithStack(err);
   }

   var order []record.Id = make([]record.Id, 0, size);

   for i := 0; i < size; i++ {
      var entry record.FileRecord;
      err = decoder.Decode(&entry);
      if (err != nil) {
         return nil, 0, errors.WithStack(err);
      }

      records[entry.Id] = &entry;
      order = append(order, entry.Id);
   }

   return order, version, nil;
}

// Write a full record table.
// Order matters to the caller (listings are insertion ordered),
// so the ids to write are passed explicitly.
func WriteRecords(records map[record.Id]*record.FileRecord, order []record.Id,
      version int, encoder *json.Encoder) error {
   err := encodeHeader(encoder, len(order), version);
   if (err != nil) {
      return errors.WithStack(err);
   }

   for _, id := range(order) {
      err = encoder.Encode(records[id]);
      if (err != nil) {
         return errors.WithStack(err);
      }
   }

   return nil;
}
