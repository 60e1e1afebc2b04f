package main;

import (
   "bufio"
   "fmt"
   "os"
   "strings"

   "github.com/eriq-augustine/vault/engine"
)

func main() {
   vaultEngine, args := engine.GetEngineFromArgs();

   var identity string = args.Identity;

   var scanner *bufio.Scanner = bufio.NewScanner(os.Stdin);
   for {
      if (identity == "") {
         fmt.Printf("> ");
      } else {
         fmt.Printf("%s > ", identity);
      }

      if (!scanner.Scan()) {
         break;
      }

      var command string = strings.TrimSpace(scanner.Text());

      if (command == "") {
         continue;
      }

      if (strings.HasPrefix(command, COMMAND_QUIT)) {
         break;
      }

      err := processCommand(vaultEngine, &identity, command);
      if (err != nil) {
         fmt.Println("Failed to run command:");
         fmt.Printf("%+v\n", err);
      }
   }
   fmt.Println("");

   vaultEngine.Close();
}
