package engine;

import (
   "bytes"
   "io/ioutil"
   "os"
   "path/filepath"
   "testing"

   "github.com/pkg/errors"
   "github.com/sirupsen/logrus"
   "github.com/stretchr/testify/require"

   "github.com/eriq-augustine/vault/ingest"
   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

const TEST_SECRET = "test-vault-secret";

func testEngine(t *testing.T) *Engine {
   t.Helper();

   dir, err := ioutil.TempDir("", "vault-engine-test-");
   require.NoError(t, err);
   t.Cleanup(func() { os.RemoveAll(dir); });

   var activity *logrus.Logger = logrus.New();
   activity.SetOutput(ioutil.Discard);

   vaultEngine, err := NewLocalEngine(TEST_SECRET, filepath.Join(dir, "vault"), false, nil, activity);
   require.NoError(t, err);
   t.Cleanup(vaultEngine.Close);

   return vaultEngine;
}

func TestUploadDownloadRoundTrip(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   var clearbytes []byte = []byte("0123456789");

   fileInfo, err := vaultEngine.Upload("alice", "report.pdf", clearbytes);
   require.NoError(t, err);
   require.Equal(t, "report.pdf", fileInfo.Name);
   require.Equal(t, uint64(10), fileInfo.Size);
   require.Equal(t, "alice", fileInfo.Owner);

   downloaded, err := vaultEngine.Download("alice", fileInfo.Id);
   require.NoError(t, err);
   require.Equal(t, clearbytes, downloaded);
}

func TestUploadRejectsDangerousExtension(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   _, err := vaultEngine.Upload("alice", "report.exe", []byte("data"));
   require.Error(t, err);
   require.IsType(t, &ingest.RejectedError{}, errors.Cause(err));
}

func TestUploadRejectsEmptyContent(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   _, err := vaultEngine.Upload("alice", "empty.txt", []byte{});
   require.Error(t, err);
   require.IsType(t, &ingest.RejectedError{}, errors.Cause(err));
}

func TestUploadSanitizesName(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "../../etc/passwd", []byte("data"));
   require.NoError(t, err);
   require.Equal(t, "....etcpasswd", fileInfo.Name);
}

func TestUploadPayloadSizes(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   var payloads [][]byte = [][]byte{
      []byte{0x42},
      bytes.Repeat([]byte{0xCD}, 1024 * 1024),
   };

   for _, clearbytes := range(payloads) {
      fileInfo, err := vaultEngine.Upload("alice", "payload.bin", clearbytes);
      require.NoError(t, err);
      require.Equal(t, uint64(len(clearbytes)), fileInfo.Size);

      downloaded, err := vaultEngine.Download("alice", fileInfo.Id);
      require.NoError(t, err);
      require.Equal(t, clearbytes, downloaded);
   }
}

func TestUploadAtConfiguredSizeBound(t *testing.T) {
   dir, err := ioutil.TempDir("", "vault-engine-test-");
   require.NoError(t, err);
   defer os.RemoveAll(dir);

   var activity *logrus.Logger = logrus.New();
   activity.SetOutput(ioutil.Discard);

   var validator *ingest.Validator = ingest.NewValidator(64, nil);

   vaultEngine, err := NewLocalEngine(TEST_SECRET, filepath.Join(dir, "vault"), false, validator, activity);
   require.NoError(t, err);
   defer vaultEngine.Close();

   // Exactly at the bound round trips.
   var clearbytes []byte = bytes.Repeat([]byte{0x5A}, 64);

   fileInfo, err := vaultEngine.Upload("alice", "bound.bin", clearbytes);
   require.NoError(t, err);
   require.Equal(t, uint64(64), fileInfo.Size);

   downloaded, err := vaultEngine.Download("alice", fileInfo.Id);
   require.NoError(t, err);
   require.Equal(t, clearbytes, downloaded);

   // One byte over is rejected.
   _, err = vaultEngine.Upload("alice", "over.bin", bytes.Repeat([]byte{0x5A}, 65));
   require.Error(t, err);
   require.IsType(t, &ingest.RejectedError{}, errors.Cause(err));
}

func TestShareGrantsAccess(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   var clearbytes []byte = []byte("shared contents");

   fileInfo, err := vaultEngine.Upload("alice", "notes.txt", clearbytes);
   require.NoError(t, err);

   _, err = vaultEngine.Download("bob", fileInfo.Id);
   require.Error(t, err);
   require.IsType(t, &AccessDeniedError{}, errors.Cause(err));

   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_READ);
   require.NoError(t, err);

   downloaded, err := vaultEngine.Download("bob", fileInfo.Id);
   require.NoError(t, err);
   require.Equal(t, clearbytes, downloaded);
}

func TestOnlyOwnerMayShare(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "notes.txt", []byte("data"));
   require.NoError(t, err);

   // Even a write grant does not allow re-sharing.
   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_WRITE);
   require.NoError(t, err);

   err = vaultEngine.Share("bob", fileInfo.Id, "carol", permission.LEVEL_READ);
   require.Error(t, err);
   require.IsType(t, &AccessDeniedError{}, errors.Cause(err));
}

func TestShareLevelBounds(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "notes.txt", []byte("data"));
   require.NoError(t, err);

   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_NONE);
   require.Error(t, err);
   require.IsType(t, &IllegalOperationError{}, errors.Cause(err));

   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.Level(99));
   require.Error(t, err);
}

func TestShareUnknownFile(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   err := vaultEngine.Share("alice", record.Id(99), "bob", permission.LEVEL_READ);
   require.Error(t, err);
   require.IsType(t, &NotFoundError{}, errors.Cause(err));
}

func TestDeleteRemovesEverything(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "doomed.txt", []byte("data"));
   require.NoError(t, err);

   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_READ);
   require.NoError(t, err);

   err = vaultEngine.Delete("alice", fileInfo.Id);
   require.NoError(t, err);

   _, err = vaultEngine.Download("alice", fileInfo.Id);
   require.Error(t, err);
   require.IsType(t, &NotFoundError{}, errors.Cause(err));

   // No grants linger.
   require.Empty(t, vaultEngine.grants.EntriesFor(fileInfo.Id));

   accessible, err := vaultEngine.ListAccessible("bob");
   require.NoError(t, err);
   require.Empty(t, accessible);
}

func TestDeleteRequiresStrictOwnership(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "notes.txt", []byte("data"));
   require.NoError(t, err);

   // An owner-level grant through sharing is still not ownership.
   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_OWNER);
   require.NoError(t, err);

   err = vaultEngine.Delete("bob", fileInfo.Id);
   require.Error(t, err);
   require.IsType(t, &AccessDeniedError{}, errors.Cause(err));

   // A grantee at owner level may still download.
   _, err = vaultEngine.Download("bob", fileInfo.Id);
   require.NoError(t, err);
}

func TestDeleteUnknownFile(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   err := vaultEngine.Delete("alice", record.Id(99));
   require.Error(t, err);
   require.IsType(t, &NotFoundError{}, errors.Cause(err));
}

func TestListAccessibleOrderAndScope(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   _, err := vaultEngine.Upload("alice", "first.txt", []byte("1"));
   require.NoError(t, err);

   second, err := vaultEngine.Upload("bob", "second.txt", []byte("2"));
   require.NoError(t, err);

   _, err = vaultEngine.Upload("alice", "third.txt", []byte("3"));
   require.NoError(t, err);

   err = vaultEngine.Share("bob", second.Id, "alice", permission.LEVEL_READ);
   require.NoError(t, err);

   accessible, err := vaultEngine.ListAccessible("alice");
   require.NoError(t, err);

   var names []string = []string{};
   for _, fileInfo := range(accessible) {
      names = append(names, fileInfo.Name);
   }

   require.Equal(t, []string{"first.txt", "second.txt", "third.txt"}, names);

   accessible, err = vaultEngine.ListAccessible("carol");
   require.NoError(t, err);
   require.Empty(t, accessible);
}

func TestDownloadMissingBlobIsCorruptStorage(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   fileInfo, err := vaultEngine.Upload("alice", "notes.txt", []byte("data"));
   require.NoError(t, err);

   // Pull the ciphertext out from underneath the catalog.
   require.NoError(t, vaultEngine.connector.RemoveBlob(fileInfo.StoredName));

   _, err = vaultEngine.Download("alice", fileInfo.Id);
   require.Error(t, err);
   require.IsType(t, &CorruptStorageError{}, errors.Cause(err));
}

func TestCiphertextIsNotCleartext(t *testing.T) {
   var vaultEngine *Engine = testEngine(t);

   var clearbytes []byte = []byte("very sensitive contents");

   fileInfo, err := vaultEngine.Upload("alice", "secret.txt", clearbytes);
   require.NoError(t, err);

   ciphertext, err := vaultEngine.connector.ReadBlob(fileInfo.StoredName);
   require.NoError(t, err);
   require.Equal(t, len(clearbytes), len(ciphertext));
   require.NotEqual(t, clearbytes, ciphertext);
}

func TestEmptySecretRefused(t *testing.T) {
   dir, err := ioutil.TempDir("", "vault-engine-test-");
   require.NoError(t, err);
   defer os.RemoveAll(dir);

   var path string = filepath.Join(dir, "vault");

   _, err = NewLocalEngine("", path, false, nil, nil);
   require.Error(t, err);
   require.IsType(t, &keystream.InvalidKeyError{}, errors.Cause(err));

   // The failed attempt released the storage lock,
   // a corrected retry does not need force.
   var activity *logrus.Logger = logrus.New();
   activity.SetOutput(ioutil.Discard);

   vaultEngine, err := NewLocalEngine(TEST_SECRET, path, false, nil, activity);
   require.NoError(t, err);
   vaultEngine.Close();
}

func TestStateSurvivesReopen(t *testing.T) {
   dir, err := ioutil.TempDir("", "vault-engine-test-");
   require.NoError(t, err);
   defer os.RemoveAll(dir);

   var path string = filepath.Join(dir, "vault");
   var clearbytes []byte = []byte("durable contents");

   var activity *logrus.Logger = logrus.New();
   activity.SetOutput(ioutil.Discard);

   vaultEngine, err := NewLocalEngine(TEST_SECRET, path, false, nil, activity);
   require.NoError(t, err);

   fileInfo, err := vaultEngine.Upload("alice", "durable.txt", clearbytes);
   require.NoError(t, err);

   err = vaultEngine.Share("alice", fileInfo.Id, "bob", permission.LEVEL_READ);
   require.NoError(t, err);

   vaultEngine.Close();

   vaultEngine, err = NewLocalEngine(TEST_SECRET, path, false, nil, activity);
   require.NoError(t, err);
   defer vaultEngine.Close();

   downloaded, err := vaultEngine.Download("bob", fileInfo.Id);
   require.NoError(t, err);
   require.Equal(t, clearbytes, downloaded);
}
