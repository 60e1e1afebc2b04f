package engine;

// An engine that keeps everything on a local disk.
// This treats a directory as if it was a partition.

import (
   "github.com/pkg/errors"
   "github.com/sirupsen/logrus"

   "github.com/eriq-augustine/vault/connector/local"
   "github.com/eriq-augustine/vault/ingest"
)

func NewLocalEngine(secret string, path string, force bool,
      validator *ingest.Validator, activity *logrus.Logger) (*Engine, error) {
   localConnector, err := local.NewLocalConnector(path, force);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to get local connector.");
   }

   return NewEngine(secret, localConnector, validator, activity);
}
