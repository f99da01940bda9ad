package main

import (
	"os"

	"github.com/solatis/otds/cmd/otds/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
