package main;

import (
   "fmt"

   "github.com/eriq-augustine/vault/engine"
)

// Params: (engine, identity (may be mutated), args (not including invocation)).
type commandFunction func(*engine.Engine, *string, []string) (error);

type commandInfo struct {
   Name string
   Function commandFunction
   // Display-only argument text, e.g. "<file id> [level]".
   ArgUsage string
   MinArgs int
   MaxArgs int
   RequireLogin bool
   // No upper bound on args.
   Variatic bool
}

func (this commandInfo) ValidateArgs(args []string) bool {
   if (len(args) < this.MinArgs) {
      return false;
   }

   return this.Variatic || len(args) <= this.MaxArgs;
}

func (this commandInfo) Usage() string {
   var usage string = "   " + this.Name;

   if (this.ArgUsage != "") {
      usage += " " + this.ArgUsage;
   }

   if (this.Variatic) {
      usage += " ...";
   }

   return usage;
}

func usageError(info commandInfo) error {
   return fmt.Errorf("Incorrect argument count.\nUsage:\n%s", info.Usage());
}
