package local;

// A connector that just works on a local disk.
// This treats a directory as if it was a partition.

import (
   "fmt"
   "io/ioutil"
   "os"
   "path/filepath"
   "sync"

   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/connector"
)

const (
   LOCK_FILENAME = ".local_lock"
)

// Keep track of the active connections so two instances don't connect to the same storage.
var activeConnections map[string]bool;
var activeConnectionsLock *sync.Mutex;

func init() {
   activeConnections = make(map[string]bool);
   activeConnectionsLock = &sync.Mutex{};
}

type LocalConnector struct {
   path string
}

// Create a new connection to a local filesystem.
// There should only ever be one connection to a storage directory at a time.
// If an old connection has not been properly closed, then the force parameter
// may be used to cleanup the old connection.
func NewLocalConnector(path string, force bool) (*LocalConnector, error) {
   activeConnectionsLock.Lock();
   defer activeConnectionsLock.Unlock();

   path, err := filepath.Abs(path);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to create absolute path for local connector.");
   }

   if (activeConnections[path]) {
      return nil, errors.Errorf("Cannot create two connections to the same storage: %s", path);
   }

   var localConnector LocalConnector = LocalConnector {
      path: path,
   };

   err = localConnector.PrepareStorage();
   if (err != nil) {
      return nil, errors.Wrap(err, path);
   }

   err = localConnector.lock(force);
   if (err != nil) {
      return nil, errors.Wrap(err, path);
   }

   activeConnections[path] = true;

   return &localConnector, nil;
}

func (this *LocalConnector) GetId() string {
   return connector.CONNECTOR_TYPE_LOCAL + ":" + this.path;
}

func (this *LocalConnector) PrepareStorage() error {
   err := os.MkdirAll(filepath.Join(this.path, connector.FS_SYS_DIR_ADMIN), 0700);
   if (err != nil) {
      return errors.WithStack(err);
   }

   return errors.WithStack(os.MkdirAll(filepath.Join(this.path, connector.FS_SYS_DIR_DATA), 0700));
}

func (this *LocalConnector) ReadBlob(storedName string) ([]byte, error) {
   return this.read(this.getDataPath(storedName));
}

func (this *LocalConnector) WriteBlob(storedName string, data []byte) error {
   return this.write(this.getDataPath(storedName), data);
}

func (this *LocalConnector) RemoveBlob(storedName string) error {
   return this.remove(this.getDataPath(storedName));
}

func (this *LocalConnector) ReadMetadata(metadataId string) ([]byte, error) {
   return this.read(this.getMetadataPath(metadataId));
}

func (this *LocalConnector) WriteMetadata(metadataId string, data []byte) error {
   return this.write(this.getMetadataPath(metadataId), data);
}

func (this *LocalConnector) RemoveMetadata(metadataId string) error {
   return this.remove(this.getMetadataPath(metadataId));
}

func (this *LocalConnector) Close() error {
   activeConnectionsLock.Lock();
   defer activeConnectionsLock.Unlock();

   activeConnections[this.path] = false;
   this.unlock();

   return nil;
}

func (this *LocalConnector) read(path string) ([]byte, error) {
   data, err := ioutil.ReadFile(path);
   if (err != nil) {
      if (os.IsNotExist(err)) {
         return nil, errors.WithStack(connector.NewNotExistsError(path));
      }

      return nil, errors.Wrap(err, "Unable to read file on disk at: " + path);
   }

   return data, nil;
}

func (this *LocalConnector) write(path string, data []byte) error {
   err := os.MkdirAll(filepath.Dir(path), 0700);
   if (err != nil) {
      return errors.Wrap(err, "Unable to make parent dirs for: " + path);
   }

   // Write to a temp name first so readers never see a partial file.
   var tempPath string = path + ".part";

   err = ioutil.WriteFile(tempPath, data, 0600);
   if (err != nil) {
      return errors.Wrap(err, "Unable to write file on disk at: " + tempPath);
   }

   return errors.Wrap(os.Rename(tempPath, path), path);
}

func (this *LocalConnector) remove(path string) error {
   err := os.Remove(path);
   if (err != nil) {
      if (os.IsNotExist(err)) {
         return errors.WithStack(connector.NewNotExistsError(path));
      }

      return errors.WithStack(err);
   }

   return nil;
}

func (this *LocalConnector) lock(force bool) error {
   lockPath, err := filepath.Abs(filepath.Join(this.path, LOCK_FILENAME));
   if (err != nil) {
      return errors.Wrap(err, this.path);
   }

   inFile, err := os.Open(lockPath);
   if (err != nil && !os.IsNotExist(err)) {
      return errors.Wrap(err, lockPath);
   }
   defer inFile.Close();

   // Lock already exists and we were not told to force it.
   if (err == nil && !force) {
      pid, err := ioutil.ReadAll(inFile);
      if (err != nil) {
         return errors.Wrap(err, lockPath);
      }

      return errors.Errorf("Local storage (at %s) already owned by [%s]." +
            " Ensure that the processes is dead and remove the lock or force the connector.",
            this.path, string(pid));
   }

   // Lock doesn't exist, or we can force it.
   return errors.Wrap(ioutil.WriteFile(lockPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0600), lockPath);
}

func (this *LocalConnector) unlock() error {
   lockPath, err := filepath.Abs(filepath.Join(this.path, LOCK_FILENAME));
   if (err != nil) {
      return errors.Wrap(err, this.path);
   }

   return errors.Wrap(os.Remove(lockPath), lockPath);
}
