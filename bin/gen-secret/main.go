package main;

import (
   "fmt"

   "github.com/eriq-augustine/vault/keystream"
   "github.com/eriq-augustine/vault/util"
)

func main() {
   fmt.Println(util.RandomKeyString(keystream.KEY_LENGTH));
}
