package main

import (
	"os"

	"github.com/arthur-debert/rulesync/cmd/rulesync"
)

func main() {
	os.Exit(rulesync.Execute(rulesync.NewRootCmd(), os.Args[1:]))
}
