package permission;

import (
   "testing"

   "github.com/stretchr/testify/require"

   "github.com/eriq-augustine/vault/record"
)

func TestLevelOrdering(t *testing.T) {
   require.True(t, LEVEL_NONE < LEVEL_READ);
   require.True(t, LEVEL_READ < LEVEL_WRITE);
   require.True(t, LEVEL_WRITE < LEVEL_OWNER);
}

func TestParseLevel(t *testing.T) {
   level, err := ParseLevel("read");
   require.NoError(t, err);
   require.Equal(t, LEVEL_READ, level);

   level, err = ParseLevel("WRITE");
   require.NoError(t, err);
   require.Equal(t, LEVEL_WRITE, level);

   level, err = ParseLevel("Owner");
   require.NoError(t, err);
   require.Equal(t, LEVEL_OWNER, level);

   _, err = ParseLevel("admin");
   require.Error(t, err);
}

func TestGrantAndCheck(t *testing.T) {
   var table *Table = NewTable();
   var file record.Id = record.Id(1);

   table.Grant(file, "bob", LEVEL_READ);

   require.True(t, table.Check(file, "bob", LEVEL_READ));
   require.False(t, table.Check(file, "bob", LEVEL_WRITE));
   require.False(t, table.Check(file, "carol", LEVEL_READ));
   require.False(t, table.Check(record.Id(2), "bob", LEVEL_READ));
}

func TestGrantHigherLevelImpliesLower(t *testing.T) {
   var table *Table = NewTable();
   var file record.Id = record.Id(1);

   table.Grant(file, "bob", LEVEL_WRITE);

   require.True(t, table.Check(file, "bob", LEVEL_READ));
   require.True(t, table.Check(file, "bob", LEVEL_WRITE));
   require.False(t, table.Check(file, "bob", LEVEL_OWNER));
}

func TestGrantUpsert(t *testing.T) {
   var table *Table = NewTable();
   var file record.Id = record.Id(1);

   table.Grant(file, "bob", LEVEL_WRITE);
   table.Grant(file, "bob", LEVEL_READ);

   // Latest grant wins, including downgrades.
   require.Equal(t, LEVEL_READ, table.Get(file, "bob"));
   require.False(t, table.Check(file, "bob", LEVEL_WRITE));
}

func TestRevokeAll(t *testing.T) {
   var table *Table = NewTable();
   var file record.Id = record.Id(1);

   table.Grant(file, "alice", LEVEL_OWNER);
   table.Grant(file, "bob", LEVEL_READ);
   table.RevokeAll(file);

   require.False(t, table.Check(file, "alice", LEVEL_READ));
   require.False(t, table.Check(file, "bob", LEVEL_READ));
   require.Empty(t, table.EntriesFor(file));
}

func TestFilesFor(t *testing.T) {
   var table *Table = NewTable();

   table.Grant(record.Id(1), "bob", LEVEL_READ);
   table.Grant(record.Id(2), "bob", LEVEL_WRITE);
   table.Grant(record.Id(3), "carol", LEVEL_READ);

   var files map[record.Id]bool = table.FilesFor("bob");
   require.Len(t, files, 2);
   require.True(t, files[record.Id(1)]);
   require.True(t, files[record.Id(2)]);

   require.Empty(t, table.FilesFor("dave"));
}

func TestLoadReplacesWholesale(t *testing.T) {
   var table *Table = NewTable();
   var file record.Id = record.Id(1);

   table.Grant(file, "alice", LEVEL_OWNER);
   table.Grant(file, "bob", LEVEL_READ);

   table.Load(file, map[string]Level{"carol": LEVEL_WRITE});

   require.Equal(t, LEVEL_NONE, table.Get(file, "alice"));
   require.Equal(t, LEVEL_NONE, table.Get(file, "bob"));
   require.Equal(t, LEVEL_WRITE, table.Get(file, "carol"));

   // Loading empty grants drops the file entirely.
   table.Load(file, map[string]Level{});
   require.Empty(t, table.EntriesFor(file));
}
