package config;

import (
   "io/ioutil"
   "os"
   "path/filepath"
   "testing"

   "github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, contents string) string {
   t.Helper();

   dir, err := ioutil.TempDir("", "vault-config-test-");
   require.NoError(t, err);
   t.Cleanup(func() { os.RemoveAll(dir); });

   var path string = filepath.Join(dir, name);
   require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0600));

   return path;
}

func TestLoad(t *testing.T) {
   var contents string = `
connector: local
path: /data/vault
secret_file: /data/secret
max_file_size: 1024
denied_extensions:
  - ".exe"
  - ".bat"
`;

   var path string = writeTempFile(t, "vault.yml", contents);

   loaded, err := Load(path);
   require.NoError(t, err);
   require.Equal(t, "local", loaded.ConnectorType);
   require.Equal(t, "/data/vault", loaded.Path);
   require.Equal(t, "/data/secret", loaded.SecretFile);
   require.Equal(t, uint64(1024), loaded.MaxFileSize);
   require.Equal(t, []string{".exe", ".bat"}, loaded.DeniedExtensions);

   // The described validator enforces the config's rules.
   var validator = loaded.Validator();
   require.Error(t, validator.Check("a.exe", 10));
   require.Error(t, validator.Check("a.txt", 2048));
   require.NoError(t, validator.Check("a.txt", 10));
}

func TestLoadMissingFile(t *testing.T) {
   _, err := Load("/does/not/exist.yml");
   require.Error(t, err);
}

func TestLoadSecret(t *testing.T) {
   var path string = writeTempFile(t, "secret", "  the-secret\n");

   secret, err := LoadSecret(path);
   require.NoError(t, err);
   require.Equal(t, "the-secret", secret);
}

func TestLoadSecretEmpty(t *testing.T) {
   var path string = writeTempFile(t, "secret", "\n  \n");

   _, err := LoadSecret(path);
   require.Error(t, err);
}
