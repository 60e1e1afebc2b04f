package engine;

// The vault operations.
// Each one is atomic from the caller's perspective, it either fully commits
// or leaves no partial metadata and no orphaned ciphertext behind.

import (
   "github.com/eriq-augustine/golog"
   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/connector"
   "github.com/eriq-augustine/vault/ingest"
   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

// Validate, encrypt, persist, catalog.
// Validation runs before any ciphertext is written.
// If the metadata commit fails after the blob write, the blob is removed.
func (this *Engine) Upload(identity string, name string, clearbytes []byte) (*record.FileRecord, error) {
   this.lock.Lock();
   defer this.lock.Unlock();

   var safeName string = ingest.SanitizeName(name);

   err := this.validator.Check(safeName, uint64(len(clearbytes)));
   if (err != nil) {
      return nil, errors.WithStack(err);
   }

   var fileKey string = keystream.GenerateKey();

   ciphertext, err := this.cipher.Transform(clearbytes, fileKey);
   if (err != nil) {
      return nil, errors.WithStack(err);
   }

   var storedName string = record.NewStoredName();

   err = this.connector.WriteBlob(storedName, ciphertext);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to persist ciphertext.");
   }

   fileInfo, err := this.store.Insert(safeName, identity, uint64(len(clearbytes)), fileKey, storedName);
   if (err != nil) {
      // The blob is already down, take it back out so nothing is orphaned.
      removeErr := this.connector.RemoveBlob(storedName);
      if (removeErr != nil) {
         golog.ErrorE("Failed to remove ciphertext after a failed upload: " + storedName, removeErr);
      }

      return nil, errors.Wrap(err, "Failed to catalog upload.");
   }

   this.logActivity(identity, "upload", fileInfo.Id);

   return fileInfo, nil;
}

// Fetch and decrypt a file for anyone holding read or better.
func (this *Engine) Download(identity string, file record.Id) ([]byte, error) {
   this.lock.RLock();
   defer this.lock.RUnlock();

   fileInfo, ok := this.store.Get(file);
   if (!ok) {
      return nil, errors.WithStack(NewNotFoundError(int(file)));
   }

   err := this.checkAccess(identity, fileInfo, permission.LEVEL_READ);
   if (err != nil) {
      return nil, errors.WithStack(err);
   }

   ciphertext, err := this.connector.ReadBlob(fileInfo.StoredName);
   if (err != nil) {
      if (connector.IsNotExists(err)) {
         return nil, errors.WithStack(NewCorruptStorageError("Ciphertext blob is missing: " + fileInfo.StoredName));
      }

      return nil, errors.WithStack(NewCorruptStorageError("Ciphertext blob is unreadable: " + fileInfo.StoredName));
   }

   // The transform preserves length, so a size mismatch means the blob
   // does not belong to this record anymore.
   if (uint64(len(ciphertext)) != fileInfo.Size) {
      return nil, errors.WithStack(NewCorruptStorageError("Ciphertext size mismatch for: " + fileInfo.StoredName));
   }

   clearbytes, err := this.cipher.Transform(ciphertext, fileInfo.EncryptionKey);
   if (err != nil) {
      return nil, errors.WithStack(err);
   }

   this.logActivity(identity, "download", fileInfo.Id);

   return clearbytes, nil;
}

// Destroy a file, its ciphertext, and all its grants.
// Strict ownership, a shared owner-level grant does not count.
func (this *Engine) Delete(identity string, file record.Id) error {
   this.lock.Lock();
   defer this.lock.Unlock();

   fileInfo, ok := this.store.Get(file);
   if (!ok) {
      return errors.WithStack(NewNotFoundError(int(file)));
   }

   if (identity != fileInfo.Owner) {
      return errors.WithStack(NewAccessDeniedError());
   }

   // Best effort on the blob, an already-missing blob should not block
   // the metadata removal.
   err := this.connector.RemoveBlob(fileInfo.StoredName);
   if (err != nil) {
      golog.WarnE("Failed to remove ciphertext blob: " + fileInfo.StoredName, err);
   }

   err = this.store.Remove(file);
   if (err != nil) {
      return errors.Wrap(err, "Failed to remove record.");
   }

   this.logActivity(identity, "delete", file);

   return nil;
}

// Grant (or overwrite) a capability for another identity.
// Only the file's owner may share, holding a write or even owner grant
// through sharing is not enough.
func (this *Engine) Share(owner string, file record.Id, target string, level permission.Level) error {
   this.lock.Lock();
   defer this.lock.Unlock();

   if (level < permission.LEVEL_READ || level > permission.LEVEL_OWNER) {
      return errors.WithStack(NewIllegalOperationError("Cannot share at level: " + level.String()));
   }

   fileInfo, ok := this.store.Get(file);
   if (!ok) {
      return errors.WithStack(NewNotFoundError(int(file)));
   }

   if (owner != fileInfo.Owner) {
      return errors.WithStack(NewAccessDeniedError());
   }

   err := this.store.Grant(file, target, level);
   if (err != nil) {
      return errors.Wrap(err, "Failed to record grant.");
   }

   this.logActivity(owner, "share", file);

   return nil;
}

// Every record the identity owns or holds any grant for,
// in catalog insertion order.
// The full list comes back every call, there is no pagination.
func (this *Engine) ListAccessible(identity string) ([]*record.FileRecord, error) {
   this.lock.RLock();
   defer this.lock.RUnlock();

   return this.store.ListAccessible(identity), nil;
}

// The owner always has every capability, everyone else needs an explicit
// grant at or above the required level.
func (this *Engine) checkAccess(identity string, fileInfo *record.FileRecord, required permission.Level) error {
   if (identity == fileInfo.Owner) {
      return nil;
   }

   if (this.grants.Check(fileInfo.Id, identity, required)) {
      return nil;
   }

   return NewAccessDeniedError();
}
