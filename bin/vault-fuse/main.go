package main;

import (
   "fmt"
   "os"
   "os/signal"
   "syscall"

   "bazil.org/fuse"
   "bazil.org/fuse/fs"
   _ "bazil.org/fuse/fs/fstestutil"

   "github.com/eriq-augustine/vault/engine"
)

const (
   DEFAULT_MOUNTPOINT = "/tmp/vault/mount"
   FUSE_BLOCKSIZE = 512
)

func main() {
   vaultEngine, args := engine.GetEngineFromArgs();
   defer vaultEngine.Close();

   if (args.Identity == "") {
      fmt.Println("An identity is required to mount a vault.");
      os.Exit(10);
   }

   var mountpoint string = args.Mountpoint;
   if (mountpoint == "") {
      mountpoint = DEFAULT_MOUNTPOINT;
   }

   // Mount.
   connection, err := mount(mountpoint);
   if (err != nil) {
      fmt.Printf("Failed to mount filesystem: %+v\n", err);
      os.Exit(11);
   }

   // Cleanup.
   defer connection.Close();
   defer fuse.Unmount(mountpoint);

   // Try and gracefully handle SIGINT and SIGTERM.
   // Because of how fuse works, we will still need to unmount through umount/fusermount -u.
   sigChan := make(chan os.Signal, 1);
   signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM);
   go func() {
      <-sigChan;
      connection.Close();
      fuse.Unmount(mountpoint);
      vaultEngine.Close();
      os.Exit(0);
   }();

   // Serve.
   err = fs.Serve(connection, fuseFS{vaultEngine, args.Identity});
   if (err != nil) {
      fmt.Printf("Failed to serve filesystem: %+v\n", err);
      os.Exit(12);
   }

   // Check if the mount process has an error to report.
   <-connection.Ready
   if err := connection.MountError; err != nil {
      fmt.Printf("Error while mounted: %+v\n", err);
      os.Exit(13);
   }
}

func mount(mountpoint string) (*fuse.Conn, error) {
   err := os.MkdirAll(mountpoint, 0700);
   if (err != nil) {
      return nil, err;
   }

   return fuse.Mount(
      mountpoint,

      // Name of the filesystem.
      fuse.FSName("vault"),
      // Main type is always "fuse".
      fuse.Subtype("vault"),

      fuse.ReadOnly(),

      // OSX Only.

      // Local vs network.
      fuse.LocalVolume(),
      // Volume name shown in OSX finder.
      fuse.VolumeName("VAULT"),
      // Disable extended attribute files (e.g. .DS_Store).
      fuse.NoAppleDouble(),
      // Disable extended attributes.
      fuse.NoAppleXattr(),
   );
}

// Implemented interfaces:
//  - fs.FS
type fuseFS struct {
   engine *engine.Engine
   identity string
}

func (this fuseFS) Root() (fs.Node, error) {
   return fuseRoot{this.engine, this.identity}, nil;
}
