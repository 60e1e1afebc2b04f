package record;

// All the key types.

import (
   "time"

   "github.com/eriq-augustine/vault/ingest"
   "github.com/eriq-augustine/vault/util"
)

const (
   STORED_NAME_LENGTH = 32

   EMPTY_ID = Id(-1)
)

// The catalog id of a file.
// Monotonically assigned, never reused.
type Id int;

// The metadata for one stored file.
// A record is immutable once inserted, a re-upload creates a new record
// and a delete destroys record, ciphertext, and grants together.
type FileRecord struct {
   Id Id
   // Sanitized display name.
   Name string
   // The opaque on-disk identifier of the ciphertext blob.
   StoredName string
   Owner string
   // Cleartext size.
   Size uint64 // bytes
   // Derived from the display name's extension.
   ContentType string
   UploadTimestamp int64
   // Bound 1:1 to this record's ciphertext.
   // Uniqueness across records is not guaranteed.
   EncryptionKey string
}

// The stored name is passed in because the ciphertext blob is written
// before the record is cataloged.
func NewFileRecord(id Id, name string, owner string, size uint64,
      encryptionKey string, storedName string) *FileRecord {
   return &FileRecord{
      Id: id,
      Name: name,
      StoredName: storedName,
      Owner: owner,
      Size: size,
      ContentType: ingest.Extension(name),
      UploadTimestamp: time.Now().Unix(),
      EncryptionKey: encryptionKey,
   };
}

// Opaque blob names are random.
// Like encryption keys, collisions are possible and undetected.
func NewStoredName() string {
   return util.RandomString(STORED_NAME_LENGTH);
}
