package main;

// FUSE Handles are lower-level and handle operations on open files (reads).
// The mount is read-only, so only the read side is implemented.
// Implemented handle interfaces:
//  - fs.HandleReadAller
//  - fs.HandleReadDirAller

import (
   "fmt"

   "bazil.org/fuse"
   "github.com/pkg/errors"
   "golang.org/x/net/context"
)

func (this fuseRoot) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
   entries, err := this.engine.ListAccessible(this.identity);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to list vault contents.");
   }

   var rtn []fuse.Dirent = make([]fuse.Dirent, 0, len(entries));

   for _, entry := range(entries) {
      var fuseDirent fuse.Dirent = fuse.Dirent{
         Inode: 0,
         Type: fuse.DT_File,
         Name: entry.Name,
      };

      rtn = append(rtn, fuseDirent);
   }

   return rtn, nil;
}

func (this fuseFile) ReadAll(ctx context.Context) ([]byte, error) {
   data, err := this.engine.Download(this.identity, this.fileInfo.Id);
   if (err != nil) {
      return nil, errors.Wrap(err, fmt.Sprintf("Failed to read vault file: %d.", int(this.fileInfo.Id)));
   }

   return data, nil;
}
