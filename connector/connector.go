package connector;

// The connector handles the operations to the actual backend
// (eg local filesystem or S3).
// It moves opaque bytes, all encryption happens above it.
// A write that returns success is assumed durable.

const (
   CONNECTOR_TYPE_LOCAL = "local"
   CONNECTOR_TYPE_S3 = "s3"

   FS_SYS_DIR_ADMIN = "admin"
   FS_SYS_DIR_DATA = "data"
   DATA_GROUP_PREFIX_LEN = 1
)

type Connector interface {
   // Every connector should be able to construct a unique id for itself
   // that is the same for each backend.
   GetId() string
   // Prepare the backend storage for initialization.
   PrepareStorage() error
   // Ciphertext blobs are keyed by their opaque stored name.
   ReadBlob(storedName string) ([]byte, error)
   WriteBlob(storedName string, data []byte) error
   RemoveBlob(storedName string) error
   // Metadata may be stored in a different way than normal blobs.
   ReadMetadata(metadataId string) ([]byte, error)
   WriteMetadata(metadataId string, data []byte) error
   RemoveMetadata(metadataId string) error
   Close() error
}
