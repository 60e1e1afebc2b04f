package store;

import (
   "io/ioutil"
   "os"
   "path/filepath"
   "testing"

   "github.com/pkg/errors"
   "github.com/stretchr/testify/require"

   "github.com/eriq-augustine/vault/connector/local"
   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
   "github.com/eriq-augustine/vault/util"
)

const TEST_SECRET = "test-vault-secret";

type fixture struct {
   path string
   connector *local.LocalConnector
   grants *permission.Table
   store *Store
}

func newFixture(t *testing.T) *fixture {
   t.Helper();

   dir, err := ioutil.TempDir("", "vault-store-test-");
   require.NoError(t, err);
   t.Cleanup(func() { os.RemoveAll(dir); });

   var this fixture = fixture{path: filepath.Join(dir, "vault")};
   this.open(t);

   return &this;
}

func (this *fixture) open(t *testing.T) {
   t.Helper();

   localConnector, err := local.NewLocalConnector(this.path, false);
   require.NoError(t, err);

   var cipher *keystream.Cipher = keystream.NewCipher(TEST_SECRET);
   var metadataKey string = util.DeriveKey(TEST_SECRET, METADATA_KEY_SALT);

   this.connector = localConnector;
   this.grants = permission.NewTable();
   this.store = NewStore(localConnector, cipher, metadataKey, this.grants);

   require.NoError(t, this.store.SyncFromDisk());
}

// Simulate a process restart over the same storage.
func (this *fixture) reopen(t *testing.T) {
   t.Helper();

   require.NoError(t, this.connector.Close());
   this.open(t);
}

func (this *fixture) insert(t *testing.T, name string, owner string) *record.FileRecord {
   t.Helper();

   fileInfo, err := this.store.Insert(name, owner, 10, keystream.GenerateKey(), record.NewStoredName());
   require.NoError(t, err);

   return fileInfo;
}

func TestInsertAssignsSequentialIds(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   var first *record.FileRecord = this.insert(t, "a.txt", "alice");
   var second *record.FileRecord = this.insert(t, "b.txt", "alice");

   require.Equal(t, record.Id(1), first.Id);
   require.Equal(t, record.Id(2), second.Id);
}

func TestInsertGrantsOwner(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   var fileInfo *record.FileRecord = this.insert(t, "a.txt", "alice");

   require.Equal(t, "alice", fileInfo.Owner);
   require.Equal(t, permission.LEVEL_OWNER, this.grants.Get(fileInfo.Id, "alice"));
}

func TestGetAndRemove(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   var fileInfo *record.FileRecord = this.insert(t, "a.txt", "alice");

   found, ok := this.store.Get(fileInfo.Id);
   require.True(t, ok);
   require.Equal(t, "a.txt", found.Name);

   require.NoError(t, this.store.Remove(fileInfo.Id));

   _, ok = this.store.Get(fileInfo.Id);
   require.False(t, ok);
   require.Empty(t, this.grants.EntriesFor(fileInfo.Id));

   err := this.store.Remove(fileInfo.Id);
   require.Error(t, err);
   require.IsType(t, &DoesntExistError{}, errors.Cause(err));
}

func TestListAccessibleInsertionOrder(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   this.insert(t, "first.txt", "alice");
   var shared *record.FileRecord = this.insert(t, "second.txt", "bob");
   this.insert(t, "third.txt", "alice");

   require.NoError(t, this.store.Grant(shared.Id, "alice", permission.LEVEL_READ));

   var names []string = []string{};
   for _, fileInfo := range(this.store.ListAccessible("alice")) {
      names = append(names, fileInfo.Name);
   }

   require.Equal(t, []string{"first.txt", "second.txt", "third.txt"}, names);

   names = []string{};
   for _, fileInfo := range(this.store.ListAccessible("bob")) {
      names = append(names, fileInfo.Name);
   }

   require.Equal(t, []string{"second.txt"}, names);
   require.Empty(t, this.store.ListAccessible("carol"));
}

func TestGrantUnknownFile(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   err := this.store.Grant(record.Id(99), "bob", permission.LEVEL_READ);
   require.Error(t, err);
   require.IsType(t, &DoesntExistError{}, errors.Cause(err));
}

func TestJournalSurvivesRestart(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   // Insert without snapshotting. The journal alone must carry the state.
   var fileInfo *record.FileRecord = this.insert(t, "a.txt", "alice");
   require.NoError(t, this.store.Grant(fileInfo.Id, "bob", permission.LEVEL_READ));
   require.True(t, this.store.Dirty());

   this.reopen(t);

   found, ok := this.store.Get(fileInfo.Id);
   require.True(t, ok);
   require.Equal(t, "a.txt", found.Name);
   require.Equal(t, fileInfo.EncryptionKey, found.EncryptionKey);
   require.Equal(t, permission.LEVEL_OWNER, this.grants.Get(fileInfo.Id, "alice"));
   require.Equal(t, permission.LEVEL_READ, this.grants.Get(fileInfo.Id, "bob"));
}

func TestSnapshotSurvivesRestart(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   this.insert(t, "a.txt", "alice");
   this.insert(t, "b.txt", "alice");
   require.NoError(t, this.store.SyncToDisk());
   require.False(t, this.store.Dirty());

   this.reopen(t);

   require.Equal(t, 2, this.store.Size());

   var names []string = []string{};
   for _, fileInfo := range(this.store.ListAccessible("alice")) {
      names = append(names, fileInfo.Name);
   }

   require.Equal(t, []string{"a.txt", "b.txt"}, names);
}

func TestRemovalSurvivesRestart(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   var doomed *record.FileRecord = this.insert(t, "doomed.txt", "alice");
   this.insert(t, "kept.txt", "alice");
   require.NoError(t, this.store.SyncToDisk());

   // Removal only reaches the journal before the restart.
   require.NoError(t, this.store.Remove(doomed.Id));

   this.reopen(t);

   _, ok := this.store.Get(doomed.Id);
   require.False(t, ok);
   require.Equal(t, 1, this.store.Size());
   require.Empty(t, this.grants.EntriesFor(doomed.Id));
}

func TestIdsNeverReused(t *testing.T) {
   var this *fixture = newFixture(t);
   defer this.connector.Close();

   var first *record.FileRecord = this.insert(t, "a.txt", "alice");
   require.NoError(t, this.store.Remove(first.Id));
   require.NoError(t, this.store.SyncToDisk());

   this.reopen(t);

   var second *record.FileRecord = this.insert(t, "b.txt", "alice");
   require.Greater(t, int(second.Id), int(first.Id));

   this.reopen(t);

   var third *record.FileRecord = this.insert(t, "c.txt", "alice");
   require.Greater(t, int(third.Id), int(second.Id));
}
