package main

import (
	"os"

	"github.com/rpgo/returns-calculator/cmd/returns/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
