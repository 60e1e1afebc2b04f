package config;

// Vault configuration.
// The vault secret itself lives in its own file, the config only points at
// it, so config files can be shared and checked in without leaking key
// material.
// The secret is loaded once at startup and never logged.

import (
   "io/ioutil"
   "strings"

   "github.com/pkg/errors"
   "gopkg.in/yaml.v2"

   "github.com/eriq-augustine/vault/ingest"
)

type Config struct {
   // "local" or "s3".
   ConnectorType string `yaml:"connector"`
   // Directory for local, bucket for s3.
   Path string `yaml:"path"`
   SecretFile string `yaml:"secret_file"`

   // Validator rules.
   // Zero/absent means defaults.
   MaxFileSize uint64 `yaml:"max_file_size"`
   DeniedExtensions []string `yaml:"denied_extensions"`

   AwsCredPath string `yaml:"aws_cred_path"`
   AwsProfile string `yaml:"aws_profile"`
   AwsRegion string `yaml:"aws_region"`
   AwsEndpoint string `yaml:"aws_endpoint"`
}

func Load(path string) (*Config, error) {
   data, err := ioutil.ReadFile(path);
   if (err != nil) {
      return nil, errors.Wrap(err, "Could not read config file: " + path);
   }

   var rtn Config;
   err = yaml.Unmarshal(data, &rtn);
   if (err != nil) {
      return nil, errors.Wrap(err, "Could not parse config file: " + path);
   }

   return &rtn, nil;
}

// The validator described by this config.
func (this *Config) Validator() *ingest.Validator {
   return ingest.NewValidator(this.MaxFileSize, this.DeniedExtensions);
}

// Read the vault secret from its file.
// Surrounding whitespace is dropped so editors that insist on a trailing
// newline do not change the keystream.
func LoadSecret(path string) (string, error) {
   data, err := ioutil.ReadFile(path);
   if (err != nil) {
      return "", errors.Wrap(err, "Could not read secret file: " + path);
   }

   var secret string = strings.TrimSpace(string(data));
   if (secret == "") {
      return "", errors.New("Secret file is empty: " + path);
   }

   return secret, nil;
}
