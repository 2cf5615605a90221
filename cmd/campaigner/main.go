package main

import (
	"os"

	"github.com/gmtools/campaigner/cmd/campaigner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
