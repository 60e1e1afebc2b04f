package engine;

// The vault engine orchestrates validator, cipher, store, and permissions.
// Every operation takes an already-authenticated identity and fails fast on
// the first rejection.
// Mutating operations (Upload, Delete, Share) hold the write lock, reads
// share the read lock, so a reader can never observe a record whose
// ciphertext was just deleted.

import (
   "sync"

   "github.com/pkg/errors"
   "github.com/sirupsen/logrus"

   "github.com/eriq-augustine/vault"
   "github.com/eriq-augustine/vault/connector"
   "github.com/eriq-augustine/vault/ingest"
   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/store"
   "github.com/eriq-augustine/vault/util"
)

// The concrete engine satisfies the vault-level contract.
var _ vault.Engine = (*Engine)(nil);

type Engine struct {
   lock *sync.RWMutex
   cipher *keystream.Cipher
   validator *ingest.Validator
   grants *permission.Table
   store *store.Store
   connector connector.Connector
   activity *logrus.Logger
}

// The secret is the vault-wide key material.
// It is mixed into every keystream and never logged.
// A nil validator means default rules, a nil activity logger means the
// logrus standard logger.
func NewEngine(secret string, backend connector.Connector,
      validator *ingest.Validator, activity *logrus.Logger) (*Engine, error) {
   if (secret == "") {
      // The connector is already holding the storage lock, let it go
      // so a corrected retry does not need force.
      backend.Close();
      return nil, errors.WithStack(keystream.NewInvalidKeyError());
   }

   if (validator == nil) {
      validator = ingest.DefaultValidator();
   }

   if (activity == nil) {
      activity = logrus.StandardLogger();
   }

   var cipher *keystream.Cipher = keystream.NewCipher(secret);
   var grants *permission.Table = permission.NewTable();

   var metadataKey string = util.DeriveKey(secret, store.METADATA_KEY_SALT);
   var catalog *store.Store = store.NewStore(backend, cipher, metadataKey, grants);

   var engine Engine = Engine{
      lock: &sync.RWMutex{},
      cipher: cipher,
      validator: validator,
      grants: grants,
      store: catalog,
      connector: backend,
      activity: activity,
   };

   err := catalog.SyncFromDisk();
   if (err != nil) {
      backend.Close();
      return nil, errors.Wrap(err, "Failed to load vault metadata.");
   }

   // Compact any journal left by an unclean shutdown.
   if (catalog.Dirty()) {
      err = catalog.SyncToDisk();
      if (err != nil) {
         backend.Close();
         return nil, errors.Wrap(err, "Failed to compact replayed journal.");
      }
   }

   return &engine, nil;
}

// Flush all metadata to the backend storage.
func (this *Engine) Sync() error {
   this.lock.Lock();
   defer this.lock.Unlock();

   return errors.WithStack(this.store.SyncToDisk());
}

func (this *Engine) Close() {
   this.Sync();
   this.connector.Close();
}
