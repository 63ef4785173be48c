package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/rulesync/cmd/rulesync"
	"github.com/arthur-debert/rulesync/internal/version"
)

func main() {
	rootCmd := rulesync.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RULESYNC",
		Section: "1",
		Source:  "rulesync " + version.Version,
		Manual:  "rulesync manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
