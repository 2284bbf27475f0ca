package main

import (
	"os"

	"github.com/grovetools/dilemma/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
