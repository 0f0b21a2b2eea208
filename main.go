package main

import (
	"os"

	"github.com/kilgore5/slate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
