package store;

// Mutations.
// Each mutator applies its change in memory (catalog and journal deltas),
// then writes the journal to the backend.
// If the journal write fails everything is rolled back,
// so a mutation either survives a restart or never happened.

import (
   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

// Build and insert a record for a fresh upload.
// Id assignment is atomic with respect to concurrent inserts.
// The owner gets an explicit owner-level grant alongside the record.
func (this *Store) Insert(name string, owner string, size uint64,
      encryptionKey string, storedName string) (*record.FileRecord, error) {
   this.lock.Lock();
   defer this.lock.Unlock();

   var fileInfo *record.FileRecord = record.NewFileRecord(this.nextId, name, owner, size,
         encryptionKey, storedName);
   var id record.Id = fileInfo.Id;

   this.nextId++;
   this.records[id] = fileInfo;
   this.order = append(this.order, id);
   this.grants.Grant(id, owner, permission.LEVEL_OWNER);

   // A fresh id can have no prior journal state.
   this.journalRecords[id] = fileInfo;
   this.journalOrder = append(this.journalOrder, id);
   this.journalGrants[id] = this.grants.EntriesFor(id);

   err := this.writeJournal();
   if (err != nil) {
      // Roll back, the mutation never happened.
      this.nextId--;
      delete(this.records, id);
      this.order = this.order[0:len(this.order) - 1];
      this.grants.RevokeAll(id);

      delete(this.journalRecords, id);
      this.journalOrder = this.journalOrder[0:len(this.journalOrder) - 1];
      delete(this.journalGrants, id);

      return nil, errors.Wrap(err, "Failed to journal insert.");
   }

   return fileInfo, nil;
}

// Remove a record and every grant for it.
// The two removals commit together.
func (this *Store) Remove(id record.Id) error {
   this.lock.Lock();
   defer this.lock.Unlock();

   oldRecord, ok := this.records[id];
   if (!ok) {
      return errors.WithStack(NewDoesntExistError(int(id)));
   }

   // Capture undo state.
   var oldIndex int = this.orderIndex(id);
   var oldGrants map[string]permission.Level = this.grants.EntriesFor(id);
   oldJournalRecord, hadJournalRecord := this.journalRecords[id];
   oldJournalGrants, hadJournalGrants := this.journalGrants[id];
   var oldJournalOrderIndex int = indexOf(this.journalOrder, id);

   delete(this.records, id);
   this.order = removeAt(this.order, oldIndex);
   this.grants.RevokeAll(id);

   this.journalRecords[id] = nil;
   this.journalGrants[id] = map[string]permission.Level{};
   if (oldJournalOrderIndex != -1) {
      this.journalOrder = removeAt(this.journalOrder, oldJournalOrderIndex);
   }

   err := this.writeJournal();
   if (err != nil) {
      this.records[id] = oldRecord;
      this.order = insertAt(this.order, oldIndex, id);
      this.grants.Load(id, oldGrants);

      if (hadJournalRecord) {
         this.journalRecords[id] = oldJournalRecord;
      } else {
         delete(this.journalRecords, id);
      }

      if (hadJournalGrants) {
         this.journalGrants[id] = oldJournalGrants;
      } else {
         delete(this.journalGrants, id);
      }

      if (oldJournalOrderIndex != -1) {
         this.journalOrder = insertAt(this.journalOrder, oldJournalOrderIndex, id);
      }

      return errors.Wrap(err, "Failed to journal remove.");
   }

   return nil;
}

// Upsert a grant.
func (this *Store) Grant(id record.Id, grantee string, level permission.Level) error {
   this.lock.Lock();
   defer this.lock.Unlock();

   _, ok := this.records[id];
   if (!ok) {
      return errors.WithStack(NewDoesntExistError(int(id)));
   }

   var oldGrants map[string]permission.Level = this.grants.EntriesFor(id);
   oldJournalGrants, hadJournalGrants := this.journalGrants[id];

   this.grants.Grant(id, grantee, level);
   this.journalGrants[id] = this.grants.EntriesFor(id);

   err := this.writeJournal();
   if (err != nil) {
      this.grants.Load(id, oldGrants);

      if (hadJournalGrants) {
         this.journalGrants[id] = oldJournalGrants;
      } else {
         delete(this.journalGrants, id);
      }

      return errors.Wrap(err, "Failed to journal grant.");
   }

   return nil;
}

func (this *Store) orderIndex(id record.Id) int {
   return indexOf(this.order, id);
}

func indexOf(ids []record.Id, id record.Id) int {
   for i, val := range(ids) {
      if (val == id) {
         return i;
      }
   }

   return -1;
}

func removeAt(ids []record.Id, index int) []record.Id {
   return append(ids[0:index], ids[index + 1:]...);
}

func insertAt(ids []record.Id, index int, id record.Id) []record.Id {
   ids = append(ids, record.EMPTY_ID);
   copy(ids[index + 1:], ids[index:]);
   ids[index] = id;

   return ids;
}
