package main

import (
	"os"

	"github.com/beetlebugorg/txf/cmd/txf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
