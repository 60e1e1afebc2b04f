package s3;

// A connector that keeps vault data in an S3 bucket.

import (
   "bytes"
   "fmt"
   "io/ioutil"
   "os"
   "sync"

   "github.com/aws/aws-sdk-go/aws"
   "github.com/aws/aws-sdk-go/aws/awserr"
   "github.com/aws/aws-sdk-go/aws/credentials"
   "github.com/aws/aws-sdk-go/aws/session"
   "github.com/aws/aws-sdk-go/service/s3"
   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/connector"
)

// Keep track of the active connections so two instances don't connect to the same storage.
var activeConnections map[string]bool;
var activeConnectionsLock *sync.Mutex;

func init() {
   activeConnections = make(map[string]bool);
   activeConnectionsLock = &sync.Mutex{};
}

type S3Connector struct {
   bucket string
   s3Client *s3.S3
}

// There should only ever be one connection to a bucket at a time.
// If an old connection has not been properly closed, then the force parameter
// may be used to cleanup the old connection.
func NewS3Connector(bucket string, credentialsPath string, awsProfile string,
      region string, endpoint string, force bool) (*S3Connector, error) {
   activeConnectionsLock.Lock();
   defer activeConnectionsLock.Unlock();

   if (activeConnections[bucket]) {
      return nil, errors.Errorf("Cannot create two connections to the same storage: %s", bucket);
   }

   var awsCreds *credentials.Credentials = credentials.NewSharedCredentials(credentialsPath, awsProfile);
   // Make sure we can get the credentials.
   _, err := awsCreds.Get();
   if (err != nil) {
      return nil, errors.WithStack(err);
   }

   var awsConfig *aws.Config = &aws.Config{
      Credentials: awsCreds,
      Region: aws.String(region),
   };

   if (endpoint != "") {
      awsConfig.Endpoint = aws.String(endpoint);
   }

   awsSession, err := session.NewSession(awsConfig);
   if (err != nil) {
      return nil, errors.Wrap(err, bucket);
   }

   var s3Connector S3Connector = S3Connector {
      bucket: bucket,
      s3Client: s3.New(awsSession),
   };

   err = s3Connector.lock(force);
   if (err != nil) {
      return nil, errors.Wrap(err, bucket);
   }

   activeConnections[bucket] = true;

   return &s3Connector, nil;
}

func (this *S3Connector) GetId() string {
   return connector.CONNECTOR_TYPE_S3 + ":" + this.bucket;
}

// Nothing necessary for S3.
func (this *S3Connector) PrepareStorage() error {
   return nil;
}

func (this *S3Connector) ReadBlob(storedName string) ([]byte, error) {
   return this.read(this.getDataPath(storedName));
}

func (this *S3Connector) WriteBlob(storedName string, data []byte) error {
   return this.write(this.getDataPath(storedName), data);
}

func (this *S3Connector) RemoveBlob(storedName string) error {
   return this.remove(this.getDataPath(storedName));
}

func (this *S3Connector) ReadMetadata(metadataId string) ([]byte, error) {
   return this.read(this.getMetadataPath(metadataId));
}

func (this *S3Connector) WriteMetadata(metadataId string, data []byte) error {
   return this.write(this.getMetadataPath(metadataId), data);
}

func (this *S3Connector) RemoveMetadata(metadataId string) error {
   return this.remove(this.getMetadataPath(metadataId));
}

func (this *S3Connector) Close() error {
   activeConnectionsLock.Lock();
   defer activeConnectionsLock.Unlock();

   activeConnections[this.bucket] = false;

   return errors.WithStack(this.unlock());
}

func (this *S3Connector) read(key string) ([]byte, error) {
   request := &s3.GetObjectInput{
      Bucket: aws.String(this.bucket),
      Key: aws.String(key),
   };

   response, err := this.s3Client.GetObject(request);
   if (err != nil) {
      if (isNotExists(err)) {
         return nil, errors.WithStack(connector.NewNotExistsError(key));
      }

      return nil, errors.Wrap(err, key);
   }
   defer response.Body.Close();

   data, err := ioutil.ReadAll(response.Body);
   if (err != nil) {
      return nil, errors.Wrap(err, key);
   }

   return data, nil;
}

func (this *S3Connector) write(key string, data []byte) error {
   request := &s3.PutObjectInput{
      Bucket: aws.String(this.bucket),
      Key: aws.String(key),
      Body: bytes.NewReader(data),
   };

   _, err := this.s3Client.PutObject(request);
   if (err != nil) {
      return errors.Wrap(err, key);
   }

   return nil;
}

func (this *S3Connector) remove(key string) error {
   // Check first, S3 deletes are quiet about missing keys.
   exists, err := this.exists(key);
   if (err != nil) {
      return errors.WithStack(err);
   }

   if (!exists) {
      return errors.WithStack(connector.NewNotExistsError(key));
   }

   request := &s3.DeleteObjectInput{
      Bucket: aws.String(this.bucket),
      Key: aws.String(key),
   };

   _, err = this.s3Client.DeleteObject(request);
   if (err != nil) {
      return errors.Wrap(err, key);
   }

   return nil;
}

func (this *S3Connector) exists(key string) (bool, error) {
   request := &s3.HeadObjectInput{
      Bucket: aws.String(this.bucket),
      Key: aws.String(key),
   };

   _, err := this.s3Client.HeadObject(request);
   if (err != nil) {
      if (isNotExists(err)) {
         return false, nil;
      }

      return false, errors.Wrap(err, key);
   }

   return true, nil;
}

func (this *S3Connector) lock(force bool) error {
   data, err := this.read(this.getLockPath());
   if (err != nil && !connector.IsNotExists(err)) {
      return errors.WithStack(err);
   }

   // Lock already exists and we were not told to force it.
   if (err == nil && !force) {
      return errors.Errorf("Bucket (%s) already owned by [%s]." +
            " Ensure that the processes is dead and remove the lock or force the connector.",
            this.bucket, string(data));
   }

   return errors.WithStack(this.write(this.getLockPath(), []byte(fmt.Sprintf("%d", os.Getpid()))));
}

func (this *S3Connector) unlock() error {
   return errors.WithStack(this.remove(this.getLockPath()));
}

func isNotExists(err error) bool {
   awsErr, ok := errors.Cause(err).(awserr.Error);
   if (!ok) {
      return false;
   }

   return awsErr.Code() == s3.ErrCodeNoSuchKey || awsErr.Code() == "NotFound";
}
