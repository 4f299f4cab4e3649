package main

import (
	"os"

	"github.com/ecolink/ecolink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
