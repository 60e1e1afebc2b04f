package vault;

// The top-level contract of the vault.

import (
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

// The engine is the only entry point for callers.
// Identities are already-authenticated usernames supplied by the caller,
// the vault trusts them verbatim, credential checks happen in front of the engine.
// Callers never see raw catalog state, only results scoped to their identity.
type Engine interface {
   // Upload a new file into the vault.
   // The cleartext is validated, encrypted under a fresh per-file key,
   // and cataloged under a fresh id.
   // A re-upload of the same name creates a new record.
   Upload(identity string, name string, clearbytes []byte) (*record.FileRecord, error);

   // Download the cleartext of a file.
   // Requires at least read access.
   Download(identity string, file record.Id) ([]byte, error);

   // Delete a file, its ciphertext, and all its grants.
   // Strict ownership required, a shared "owner" grant is not enough.
   Delete(identity string, file record.Id) error;

   // Grant (or overwrite) a capability on a file for another identity.
   // Only the file's owner may share.
   Share(owner string, file record.Id, target string, level permission.Level) error;

   // Every record the identity owns or holds any grant for,
   // in catalog insertion order.
   ListAccessible(identity string) ([]*record.FileRecord, error);

   // Flush all metadata to the backend storage.
   Sync() error;
}
