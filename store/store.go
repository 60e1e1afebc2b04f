package store;

// The durable catalog of file records.
// All state lives in memory (record map, insertion order, grant table) and
// every mutation is journaled to the backend before it is reported successful.
// The journal holds the deltas since the last snapshot, nil record values
// represent deletes.
// Full snapshots are written on Sync and the journal is cleared, so a restart
// always recovers snapshot plus journal.
// Mutating callers are expected to serialize at the engine, but the store
// still carries its own lock so a stray reader can never observe a torn map.

import (
   "sync"

   "github.com/eriq-augustine/vault/connector"
   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

const (
   METADATA_ID_RECORDS = "records"
   METADATA_ID_GRANTS = "grants"
   METADATA_ID_JOURNAL = "journal"

   // Salt for deriving the metadata key from the vault secret.
   METADATA_KEY_SALT = "vault-metadata"
)

type Store struct {
   lock *sync.Mutex
   connector connector.Connector
   cipher *keystream.Cipher
   // Metadata is encrypted under a key derived from the vault secret,
   // never under a per-file key.
   metadataKey string

   records map[record.Id]*record.FileRecord
   // Insertion order of live records, listings follow it.
   order []record.Id
   grants *permission.Table
   nextId record.Id
   version int

   // Deltas since the last snapshot.
   // Nil values represents delete.
   journalRecords map[record.Id]*record.FileRecord
   // Insertion order of records added since the last snapshot.
   journalOrder []record.Id
   // Full replacement ACL rows for touched files.
   journalGrants map[record.Id]map[string]permission.Level
}

// The store persists the grant table alongside the records so that a record
// and its ACL entries always commit together.
func NewStore(backend connector.Connector, cipher *keystream.Cipher,
      metadataKey string, grants *permission.Table) *Store {
   return &Store{
      lock: &sync.Mutex{},
      connector: backend,
      cipher: cipher,
      metadataKey: metadataKey,
      records: make(map[record.Id]*record.FileRecord),
      order: make([]record.Id, 0),
      grants: grants,
      nextId: record.Id(1),
      version: 0,
      journalRecords: make(map[record.Id]*record.FileRecord),
      journalOrder: make([]record.Id, 0),
      journalGrants: make(map[record.Id]map[string]permission.Level),
   };
}

func (this *Store) Get(id record.Id) (*record.FileRecord, bool) {
   this.lock.Lock();
   defer this.lock.Unlock();

   fileInfo, ok := this.records[id];
   return fileInfo, ok;
}

// Every record the identity owns or holds any explicit grant for,
// in insertion order.
func (this *Store) ListAccessible(identity string) []*record.FileRecord {
   this.lock.Lock();
   defer this.lock.Unlock();

   var granted map[record.Id]bool = this.grants.FilesFor(identity);

   var rtn []*record.FileRecord = make([]*record.FileRecord, 0);
   for _, id := range(this.order) {
      fileInfo := this.records[id];

      if (fileInfo.Owner == identity || granted[id]) {
         rtn = append(rtn, fileInfo);
      }
   }

   return rtn;
}

func (this *Store) Size() int {
   this.lock.Lock();
   defer this.lock.Unlock();

   return len(this.records);
}
