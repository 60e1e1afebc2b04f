package permission;

// The per-file ACL.
// Levels form a total order (read < write < owner) and a grantee holds at
// most one level per file, re-granting overwrites.
// The table is a pure lookup/mutation structure.
// It does not know who owns a file, the engine enforces the implicit owner
// capability and the owner-only rules on top of it.

import (
   "strings"

   "github.com/pkg/errors"

   "github.com/eriq-augustine/vault/record"
)

const (
   LEVEL_NONE = Level(0)
   LEVEL_READ = Level(1)
   LEVEL_WRITE = Level(2)
   LEVEL_OWNER = Level(3)
)

type Level int;

func (this Level) String() string {
   switch (this) {
      case LEVEL_READ:
         return "read";
      case LEVEL_WRITE:
         return "write";
      case LEVEL_OWNER:
         return "owner";
      default:
         return "none";
   }
}

// Raw user text is accepted, case does not matter.
func ParseLevel(text string) (Level, error) {
   switch (strings.ToLower(text)) {
      case "read":
         return LEVEL_READ, nil;
      case "write":
         return LEVEL_WRITE, nil;
      case "owner":
         return LEVEL_OWNER, nil;
      default:
         return LEVEL_NONE, errors.Errorf("Unknown permission level: [%s].", text);
   }
}

type Table struct {
   // [fileId][grantee] = level
   entries map[record.Id]map[string]Level
}

func NewTable() *Table {
   return &Table{
      entries: make(map[record.Id]map[string]Level),
   };
}

// Upsert an entry.
func (this *Table) Grant(file record.Id, grantee string, level Level) {
   grants, ok := this.entries[file];
   if (!ok) {
      grants = make(map[string]Level);
      this.entries[file] = grants;
   }

   grants[grantee] = level;
}

// True iff the identity holds an explicit entry at or above the required level.
// The implicit owner capability is not visible here.
func (this *Table) Check(file record.Id, identity string, required Level) bool {
   grants, ok := this.entries[file];
   if (!ok) {
      return false;
   }

   return grants[identity] >= required;
}

// The explicit level held by an identity (LEVEL_NONE if absent).
func (this *Table) Get(file record.Id, identity string) Level {
   return this.entries[file][identity];
}

// Remove every entry for a file.
// Used when the file is destroyed.
func (this *Table) RevokeAll(file record.Id) {
   delete(this.entries, file);
}

// Every file the identity holds any explicit entry for.
func (this *Table) FilesFor(identity string) map[record.Id]bool {
   var files map[record.Id]bool = make(map[record.Id]bool);

   for file, grants := range(this.entries) {
      if (grants[identity] > LEVEL_NONE) {
         files[file] = true;
      }
   }

   return files;
}

// A copy of a file's entries for serialization and inspection.
func (this *Table) EntriesFor(file record.Id) map[string]Level {
   var rtn map[string]Level = make(map[string]Level, len(this.entries[file]));

   for grantee, level := range(this.entries[file]) {
      rtn[grantee] = level;
   }

   return rtn;
}

// Replace a file's entries wholesale.
// Used when replaying persisted state.
func (this *Table) Load(file record.Id, grants map[string]Level) {
   if (len(grants) == 0) {
      delete(this.entries, file);
      return;
   }

   var copied map[string]Level = make(map[string]Level, len(grants));
   for grantee, level := range(grants) {
      copied[grantee] = level;
   }

   this.entries[file] = copied;
}

// All files that have any entry.
func (this *Table) Files() []record.Id {
   var rtn []record.Id = make([]record.Id, 0, len(this.entries));

   for file, _ := range(this.entries) {
      rtn = append(rtn, file);
   }

   return rtn;
}
