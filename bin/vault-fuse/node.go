package main;

// FUSE Nodes are higher-level file/dir operations.
// A vault is flat, so there are only two node types:
// the root directory (fuseRoot) and files (fuseFile).
// This file contains implementations of node methods.
// Implemented node interfaces:
//  - fs.Node
//  - fs.NodeStringLookuper

import (
   "os"
   "time"

   "bazil.org/fuse"
   "bazil.org/fuse/fs"
   "github.com/pkg/errors"
   "golang.org/x/net/context"

   "github.com/eriq-augustine/vault/engine"
   "github.com/eriq-augustine/vault/record"
)

// Implemented interfaces:
//  - fs.Node
//  - fs.NodeStringLookuper
//  - fs.HandleReadDirAller
type fuseRoot struct {
   engine *engine.Engine
   identity string
}

func (this fuseRoot) Attr(ctx context.Context, attr *fuse.Attr) error {
   attr.Inode = 0;  // Dynamic.
   attr.Mode = os.ModeDir | 0555;
   attr.Nlink = 1;
   attr.BlockSize = FUSE_BLOCKSIZE;

   return nil;
}

func (this fuseRoot) Lookup(ctx context.Context, name string) (fs.Node, error) {
   entries, err := this.engine.ListAccessible(this.identity);
   if (err != nil) {
      return nil, errors.Wrap(err, "Failed to list vault contents.");
   }

   for _, entry := range(entries) {
      if (entry.Name != name) {
         continue;
      }

      return fuseFile{entry, this.engine, this.identity}, nil;
   }

   return nil, fuse.ENOENT;
}

// Implemented interfaces:
//  - fs.Node
//  - fs.HandleReadAller
type fuseFile struct {
   fileInfo *record.FileRecord
   engine *engine.Engine
   identity string
}

func (this fuseFile) Attr(ctx context.Context, attr *fuse.Attr) error {
   attr.Inode = 0;  // Dynamic.
   attr.Size = this.fileInfo.Size;
   attr.Blocks = (this.fileInfo.Size + FUSE_BLOCKSIZE - 1) / FUSE_BLOCKSIZE;
   attr.Atime = time.Unix(this.fileInfo.UploadTimestamp, 0);
   attr.Mtime = time.Unix(this.fileInfo.UploadTimestamp, 0);
   attr.Ctime = time.Unix(this.fileInfo.UploadTimestamp, 0);
   attr.Crtime = time.Unix(this.fileInfo.UploadTimestamp, 0);
   attr.Nlink = 1;
   attr.Mode = 0444;
   attr.BlockSize = FUSE_BLOCKSIZE;

   return nil;
}
