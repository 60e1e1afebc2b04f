package s3;

// Simple utilties.

import (
   "path"

   "github.com/eriq-augustine/golog"

   "github.com/eriq-augustine/vault/connector"
)

const (
   LOCK_FILENAME = "remote_lock"
)

func (this *S3Connector) getDataPath(storedName string) string {
   if (storedName == "") {
      golog.Panic("Cannot get path for an empty stored name.");
   }

   var prefix string = storedName[0:connector.DATA_GROUP_PREFIX_LEN];

   return path.Join(connector.FS_SYS_DIR_DATA, prefix, storedName);
}

func (this *S3Connector) getMetadataPath(metadataId string) string {
   if (metadataId == "") {
      golog.Panic("Cannot get path for empty metadata.");
   }

   return path.Join(connector.FS_SYS_DIR_ADMIN, metadataId);
}

func (this *S3Connector) getLockPath() string {
   return path.Join(connector.FS_SYS_DIR_ADMIN, LOCK_FILENAME);
}
