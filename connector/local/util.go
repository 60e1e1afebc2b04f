package local;

// Simple utilties.

import (
   "path/filepath"

   "github.com/eriq-augustine/golog"

   "github.com/eriq-augustine/vault/connector"
)

func (this *LocalConnector) getDataPath(storedName string) string {
   if (storedName == "") {
      golog.Panic("Cannot get path for an empty stored name.");
   }

   // Group blobs by a short prefix so no single directory gets huge.
   var prefix string = storedName[0:connector.DATA_GROUP_PREFIX_LEN];

   return filepath.Join(this.path, connector.FS_SYS_DIR_DATA, prefix, storedName);
}

func (this *LocalConnector) getMetadataPath(metadataId string) string {
   if (metadataId == "") {
      golog.Panic("Cannot get path for empty metadata.");
   }

   return filepath.Join(this.path, connector.FS_SYS_DIR_ADMIN, metadataId);
}
