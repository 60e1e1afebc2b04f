package engine;

// An engine backed by an S3 bucket.

import (
   "github.com/pkg/errors"
   "github.com/sirupsen/logrus"

   "github.com/eriq-augustine/vault/connector/s3"
   "github.com/eriq-augustine/vault/ingest"
)

func NewS3Engine(secret string, bucket string,
      awsCredPath string, awsProfile string, awsRegion string, awsEndpoint string,
      force bool, validator *ingest.Validator, activity *logrus.Logger) (*Engine, error) {
   s3Connector, err := s3.NewS3Connector(bucket, awsCredPath, awsProfile, awsRegion, awsEndpoint, force);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to get S3 connector.");
   }

   return NewEngine(secret, s3Connector, validator, activity);
}
