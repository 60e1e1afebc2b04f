package engine;

// Get an engine from the command line.

import (
   "fmt"
   "os"
   "os/signal"
   "syscall"

   "github.com/pkg/errors"
   "github.com/spf13/pflag"

   "github.com/eriq-augustine/vault/config"
   "github.com/eriq-augustine/vault/connector"
   "github.com/eriq-augustine/vault/ingest"
)

const (
   DEFAULT_AWS_CRED_PATH = "config/vault-aws-credentials"
   DEFAULT_AWS_ENDPOINT = ""
   DEFAULT_AWS_PROFILE = "vaultapi"
   DEFAULT_AWS_REGION = "us-east-1"
)

// This is meant to be called from a command line.
// This will just exit on bad args.
// The caller is responsible for closing the engine when done.
func GetEngineFromArgs() (*Engine, *Args) {
   args, err := parseArgs();
   if (err != nil) {
      pflag.Usage();
      fmt.Printf("Error parsing args: %+v\n", err);
      os.Exit(1);
   }

   secret, err := config.LoadSecret(args.SecretFile);
   if (err != nil) {
      fmt.Printf("%+v\n", errors.Wrap(err, "Failed to load vault secret"));
      os.Exit(2);
   }

   var vaultEngine *Engine = nil;
   if (args.ConnectorType == connector.CONNECTOR_TYPE_LOCAL) {
      vaultEngine, err = NewLocalEngine(secret, args.Path, args.Force, args.Validator, nil);
      if (err != nil) {
         fmt.Printf("%+v\n", errors.Wrap(err, "Failed to get local engine"));
         os.Exit(3);
      }
   } else if (args.ConnectorType == connector.CONNECTOR_TYPE_S3) {
      vaultEngine, err = NewS3Engine(secret, args.Path,
            args.AwsCredPath, args.AwsProfile, args.AwsRegion, args.AwsEndpoint,
            args.Force, args.Validator, nil);
      if (err != nil) {
         fmt.Printf("%+v\n", errors.Wrap(err, "Failed to get S3 engine"));
         os.Exit(4);
      }
   } else {
      fmt.Printf("Unknown connector type: [%s]\n", args.ConnectorType);
      os.Exit(5);
   }

   // Gracefully handle SIGINT and SIGTERM.
   sigChan := make(chan os.Signal, 1);
   signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM);
   go func() {
      <-sigChan;
      vaultEngine.Close();
      os.Exit(0);
   }();

   return vaultEngine, args;
}

func parseArgs() (*Args, error) {
   var awsCredPath *string = pflag.StringP("aws-creds", "c", DEFAULT_AWS_CRED_PATH, "Path to AWS credentials");
   var awsEndpoint *string = pflag.StringP("aws-endpoint", "e", DEFAULT_AWS_ENDPOINT, "AWS endpoint to use. Empty string uses standard AWS S3.");
   var awsProfile *string = pflag.StringP("aws-profile", "l", DEFAULT_AWS_PROFILE, "AWS profile to use");
   var awsRegion *string = pflag.StringP("aws-region", "r", DEFAULT_AWS_REGION, "AWS region to use");
   var configPath *string = pflag.StringP("config", "g", "", "Path to a vault config file (flags override it)");
   var connectorType *string = pflag.StringP("type", "t", "", "Connector type ('s3' or 'local')");
   var secretFile *string = pflag.StringP("secret-file", "s", "", "Path to the vault secret file");
   var path *string = pflag.StringP("path", "p", "", "Path to the vault storage (directory or bucket)");
   var identity *string = pflag.StringP("identity", "u", "", "Identity to act as");
   var force *bool = pflag.BoolP("force", "f", false, "Force the storage to open regardless of locks");
   var mountpoint *string = pflag.StringP("mountpoint", "m", "", "The mountpoint of the filesystem (not used by all operations)");

   pflag.Parse();

   var rtn Args = Args{
      AwsCredPath: *awsCredPath,
      AwsEndpoint: *awsEndpoint,
      AwsProfile: *awsProfile,
      AwsRegion: *awsRegion,
      ConnectorType: *connectorType,
      SecretFile: *secretFile,
      Path: *path,
      Identity: *identity,
      Force: *force,
      Mountpoint: *mountpoint,
      Validator: nil,
   };

   // A config file fills whatever the flags left empty.
   if (configPath != nil && *configPath != "") {
      fileConfig, err := config.Load(*configPath);
      if (err != nil) {
         return nil, errors.WithStack(err);
      }

      if (rtn.ConnectorType == "") {
         rtn.ConnectorType = fileConfig.ConnectorType;
      }

      if (rtn.SecretFile == "") {
         rtn.SecretFile = fileConfig.SecretFile;
      }

      if (rtn.Path == "") {
         rtn.Path = fileConfig.Path;
      }

      if (rtn.AwsCredPath == DEFAULT_AWS_CRED_PATH && fileConfig.AwsCredPath != "") {
         rtn.AwsCredPath = fileConfig.AwsCredPath;
      }

      if (rtn.AwsProfile == DEFAULT_AWS_PROFILE && fileConfig.AwsProfile != "") {
         rtn.AwsProfile = fileConfig.AwsProfile;
      }

      if (rtn.AwsRegion == DEFAULT_AWS_REGION && fileConfig.AwsRegion != "") {
         rtn.AwsRegion = fileConfig.AwsRegion;
      }

      if (rtn.AwsEndpoint == "") {
         rtn.AwsEndpoint = fileConfig.AwsEndpoint;
      }

      rtn.Validator = fileConfig.Validator();
   }

   if (rtn.ConnectorType == "") {
      rtn.ConnectorType = connector.CONNECTOR_TYPE_LOCAL;
   }

   if (rtn.SecretFile == "") {
      return nil, errors.New("Error: Secret file required.");
   }

   if (rtn.Path == "") {
      return nil, errors.New("Error: Path required.");
   }

   return &rtn, nil;
}

type Args struct {
   AwsCredPath string
   AwsEndpoint string
   AwsProfile string
   AwsRegion string
   ConnectorType string
   SecretFile string
   Path string
   Identity string
   Force bool
   Mountpoint string
   Validator *ingest.Validator
}
