package store;

// Snapshot and journal persistence.
// Snapshots are full tables (records, grants) in the metadata codec,
// the journal is a single JSON image of the deltas since the last snapshot.
// Everything is encrypted under the metadata key before it reaches the
// connector.

import (
   "bytes"
   "encoding/json"

   "github.com/eriq-augustine/golog"
   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/connector"
   "github.com/eriq-augustine/vault/metadata"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

// The on-disk shape of the journal.
type journalImage struct {
   NextId record.Id
   // Nil values represents delete.
   Records map[record.Id]*record.FileRecord
   Order []record.Id
   Grants map[record.Id]map[string]permission.Level
}

// Read all the metadata from the backend into memory.
// This should only be done once when the store initializes.
// A missing snapshot means a fresh vault, a present journal means the
// process died before its last sync and the deltas get replayed.
func (this *Store) SyncFromDisk() error {
   this.lock.Lock();
   defer this.lock.Unlock();

   err := this.readSnapshots();
   if (err != nil) {
      return errors.Wrap(err, "Could not read metadata snapshots.");
   }

   err = this.replayJournal();
   if (err != nil) {
      return errors.Wrap(err, "Could not replay journal.");
   }

   return nil;
}

// Write full snapshots and clear the journal.
func (this *Store) SyncToDisk() error {
   this.lock.Lock();
   defer this.lock.Unlock();

   this.version++;

   err := this.writeRecords();
   if (err != nil) {
      return errors.Wrap(err, "Could not write record table.");
   }

   err = this.writeGrants();
   if (err != nil) {
      return errors.Wrap(err, "Could not write grant table.");
   }

   this.journalRecords = make(map[record.Id]*record.FileRecord);
   this.journalOrder = make([]record.Id, 0);
   this.journalGrants = make(map[record.Id]map[string]permission.Level);

   err = this.connector.RemoveMetadata(METADATA_ID_JOURNAL);
   if (err != nil && !connector.IsNotExists(err)) {
      return errors.Wrap(err, "Could not clear journal.");
   }

   return nil;
}

// True if there are unsnapshotted deltas.
func (this *Store) Dirty() bool {
   this.lock.Lock();
   defer this.lock.Unlock();

   return len(this.journalRecords) != 0 || len(this.journalGrants) != 0;
}

func (this *Store) readSnapshots() error {
   data, err := this.readMetadata(METADATA_ID_RECORDS);
   if (err != nil) {
      if (connector.IsNotExists(errors.Cause(err))) {
         // Fresh vault.
         return nil;
      }

      return errors.WithStack(err);
   }

   var decoder *json.Decoder = json.NewDecoder(bytes.NewReader(data));

   this.records = make(map[record.Id]*record.FileRecord);
   order, version, err := metadata.ReadRecords(this.records, decoder);
   if (err != nil) {
      return errors.WithStack(err);
   }

   this.order = order;
   this.version = version;

   // The next id rides in the same stream, after the table.
   err = decoder.Decode(&this.nextId);
   if (err != nil) {
      return errors.Wrap(err, "Could not decode next id.");
   }

   data, err = this.readMetadata(METADATA_ID_GRANTS);
   if (err != nil) {
      if (connector.IsNotExists(errors.Cause(err))) {
         // The process died between the two snapshot writes,
         // the journal replay will restore the ACL rows.
         return nil;
      }

      return errors.WithStack(err);
   }

   _, err = metadata.ReadGrants(this.grants, json.NewDecoder(bytes.NewReader(data)));
   if (err != nil) {
      return errors.WithStack(err);
   }

   return nil;
}

func (this *Store) replayJournal() error {
   data, err := this.readMetadata(METADATA_ID_JOURNAL);
   if (err != nil) {
      if (connector.IsNotExists(errors.Cause(err))) {
         // Clean shutdown.
         return nil;
      }

      return errors.WithStack(err);
   }

   golog.Info("Journal found, replaying deltas from an unclean shutdown.");

   var image journalImage;
   err = json.Unmarshal(data, &image);
   if (err != nil) {
      return errors.Wrap(err, "Could not decode journal.");
   }

   // Inserts first (they carry their order), then deletes, then ACL rows.
   for _, id := range(image.Order) {
      fileInfo := image.Records[id];
      if (fileInfo == nil) {
         continue;
      }

      _, ok := this.records[id];
      if (!ok) {
         this.order = append(this.order, id);
      }

      this.records[id] = fileInfo;
   }

   for id, fileInfo := range(image.Records) {
      if (fileInfo != nil) {
         continue;
      }

      var index int = indexOf(this.order, id);
      if (index != -1) {
         this.order = removeAt(this.order, index);
      }

      delete(this.records, id);
      this.grants.RevokeAll(id);
   }

   for id, grants := range(image.Grants) {
      _, ok := this.records[id];
      if (!ok) {
         continue;
      }

      this.grants.Load(id, grants);
   }

   if (image.NextId > this.nextId) {
      this.nextId = image.NextId;
   }

   // Keep the replayed deltas journaled until the next snapshot.
   this.journalRecords = image.Records;
   this.journalOrder = image.Order;
   this.journalGrants = image.Grants;

   return nil;
}

func (this *Store) writeJournal() error {
   var image journalImage = journalImage{
      NextId: this.nextId,
      Records: this.journalRecords,
      Order: this.journalOrder,
      Grants: this.journalGrants,
   };

   data, err := json.Marshal(&image);
   if (err != nil) {
      return errors.Wrap(err, "Could not encode journal.");
   }

   return errors.WithStack(this.writeMetadata(METADATA_ID_JOURNAL, data));
}

func (this *Store) writeRecords() error {
   var buffer bytes.Buffer;
   var encoder *json.Encoder = json.NewEncoder(&buffer);

   err := metadata.WriteRecords(this.records, this.order, this.version, encoder);
   if (err != nil) {
      return errors.WithStack(err);
   }

   err = encoder.Encode(&this.nextId);
   if (err != nil) {
      return errors.Wrap(err, "Could not encode next id.");
   }

   return errors.WithStack(this.writeMetadata(METADATA_ID_RECORDS, buffer.Bytes()));
}

func (this *Store) writeGrants() error {
   var buffer bytes.Buffer;

   err := metadata.WriteGrants(this.grants, this.version, json.NewEncoder(&buffer));
   if (err != nil) {
      return errors.WithStack(err);
   }

   return errors.WithStack(this.writeMetadata(METADATA_ID_GRANTS, buffer.Bytes()));
}

func (this *Store) readMetadata(metadataId string) ([]byte, error) {
   data, err := this.connector.ReadMetadata(metadataId);
   if (err != nil) {
      return nil, err;
   }

   cleardata, err := this.cipher.Transform(data, this.metadataKey);
   if (err != nil) {
      return nil, errors.Wrap(err, metadataId);
   }

   return cleardata, nil;
}

func (this *Store) writeMetadata(metadataId string, cleardata []byte) error {
   data, err := this.cipher.Transform(cleardata, this.metadataKey);
   if (err != nil) {
      return errors.Wrap(err, metadataId);
   }

   return errors.WithStack(this.connector.WriteMetadata(metadataId, data));
}
