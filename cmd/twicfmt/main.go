package main

import (
	"os"

	"github.com/kralicky/twic/cmd/twicfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
