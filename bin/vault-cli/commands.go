package main;

import (
   "fmt"
   "io/ioutil"
   "path/filepath"
   "sort"
   "strconv"

   "github.com/pkg/errors"
   shellquote "github.com/kballard/go-shellquote"

   "github.com/eriq-augustine/vault/engine"
   "github.com/eriq-augustine/vault/permission"
   "github.com/eriq-augustine/vault/record"
)

const (
   COMMAND_LOGIN = "login"
   COMMAND_QUIT = "quit"
)

var commands map[string]commandInfo;

func init() {
   commands = make(map[string]commandInfo);

   commands["cat"] = commandInfo{
      Name: "cat",
      Function: cat,
      ArgUsage: "<file id>",
      MinArgs: 1,
      MaxArgs: 1,
      RequireLogin: true,
   };

   commands["delete"] = commandInfo{
      Name: "delete",
      Function: remove,
      ArgUsage: "<file id>",
      MinArgs: 1,
      MaxArgs: 1,
      RequireLogin: true,
   };

   commands["export"] = commandInfo{
      Name: "export",
      Function: export,
      ArgUsage: "<file id> <external path>",
      MinArgs: 2,
      MaxArgs: 2,
      RequireLogin: true,
   };

   commands["help"] = commandInfo{
      Name: "help",
      Function: help,
   };

   commands["import"] = commandInfo{
      Name: "import",
      Function: importFile,
      ArgUsage: "<external path>",
      MinArgs: 1,
      RequireLogin: true,
      Variatic: true,
   };

   commands[COMMAND_LOGIN] = commandInfo{
      Name: COMMAND_LOGIN,
      Function: login,
      ArgUsage: "<identity>",
      MinArgs: 1,
      MaxArgs: 1,
   };

   commands["ls"] = commandInfo{
      Name: "ls",
      Function: list,
      RequireLogin: true,
   };

   commands["share"] = commandInfo{
      Name: "share",
      Function: share,
      ArgUsage: "<file id> <identity> <level (read/write/owner)>",
      MinArgs: 3,
      MaxArgs: 3,
      RequireLogin: true,
   };

   commands["sync"] = commandInfo{
      Name: "sync",
      Function: sync,
   };

   commands["whoami"] = commandInfo{
      Name: "whoami",
      Function: whoami,
      RequireLogin: true,
   };
}

func processCommand(vaultEngine *engine.Engine, identity *string, command string) error {
   parts, err := shellquote.Split(command);
   if (err != nil) {
      return errors.Wrap(err, "Failed to tokenize command.");
   }

   var operation string = parts[0];
   var args []string = parts[1:];

   info, ok := commands[operation];
   if (!ok) {
      return errors.Errorf("Unknown operation: [%s]. Try 'help'.", operation);
   }

   if (info.RequireLogin && *identity == "") {
      return errors.New("You must login to run this command.");
   }

   if (!info.ValidateArgs(args)) {
      return errors.WithStack(usageError(info));
   }

   return errors.WithStack(info.Function(vaultEngine, identity, args));
}

func cat(vaultEngine *engine.Engine, identity *string, args []string) error {
   id, err := parseFileId(args[0]);
   if (err != nil) {
      return errors.WithStack(err);
   }

   clearbytes, err := vaultEngine.Download(*identity, id);
   if (err != nil) {
      return errors.WithStack(err);
   }

   fmt.Print(string(clearbytes));

   return nil;
}

func export(vaultEngine *engine.Engine, identity *string, args []string) error {
   id, err := parseFileId(args[0]);
   if (err != nil) {
      return errors.WithStack(err);
   }

   clearbytes, err := vaultEngine.Download(*identity, id);
   if (err != nil) {
      return errors.WithStack(err);
   }

   err = ioutil.WriteFile(args[1], clearbytes, 0644);
   if (err != nil) {
      return errors.Wrap(err, "Failed to write exported file.");
   }

   return nil;
}

func help(vaultEngine *engine.Engine, identity *string, args []string) error {
   fmt.Println("Commands:");

   var names []string = make([]string, 0, len(commands));
   for name, _ := range(commands) {
      names = append(names, name);
   }
   sort.Strings(names);

   for _, name := range(names) {
      fmt.Println(commands[name].Usage());
   }
   fmt.Println("   " + COMMAND_QUIT);

   return nil;
}

func importFile(vaultEngine *engine.Engine, identity *string, args []string) error {
   for _, path := range(args) {
      clearbytes, err := ioutil.ReadFile(path);
      if (err != nil) {
         return errors.Wrap(err, "Failed to read file for import: " + path);
      }

      fileInfo, err := vaultEngine.Upload(*identity, filepath.Base(path), clearbytes);
      if (err != nil) {
         return errors.Wrap(err, path);
      }

      fmt.Printf("Imported %s as file %d.\n", fileInfo.Name, int(fileInfo.Id));
   }

   return nil;
}

func login(vaultEngine *engine.Engine, identity *string, args []string) error {
   // Identities are trusted verbatim, authentication happens in front of
   // the engine.
   *identity = args[0];
   return nil;
}

func list(vaultEngine *engine.Engine, identity *string, args []string) error {
   fileInfos, err := vaultEngine.ListAccessible(*identity);
   if (err != nil) {
      return errors.WithStack(err);
   }

   for _, fileInfo := range(fileInfos) {
      fmt.Printf("%6d   %-40s %10d bytes   %s\n",
            int(fileInfo.Id), fileInfo.Name, fileInfo.Size, fileInfo.Owner);
   }

   return nil;
}

func remove(vaultEngine *engine.Engine, identity *string, args []string) error {
   id, err := parseFileId(args[0]);
   if (err != nil) {
      return errors.WithStack(err);
   }

   return errors.WithStack(vaultEngine.Delete(*identity, id));
}

func share(vaultEngine *engine.Engine, identity *string, args []string) error {
   id, err := parseFileId(args[0]);
   if (err != nil) {
      return errors.WithStack(err);
   }

   level, err := permission.ParseLevel(args[2]);
   if (err != nil) {
      return errors.WithStack(err);
   }

   return errors.WithStack(vaultEngine.Share(*identity, id, args[1], level));
}

func sync(vaultEngine *engine.Engine, identity *string, args []string) error {
   return errors.WithStack(vaultEngine.Sync());
}

func whoami(vaultEngine *engine.Engine, identity *string, args []string) error {
   fmt.Println(*identity);
   return nil;
}

func parseFileId(text string) (record.Id, error) {
   id, err := strconv.Atoi(text);
   if (err != nil) {
      return record.EMPTY_ID, errors.Wrapf(err, "Bad file id: [%s].", text);
   }

   return record.Id(id), nil;
}
