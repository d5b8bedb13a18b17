package main

import (
	"os"

	"github.com/carpick/carpick/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
