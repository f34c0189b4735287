package main

import (
	"os"

	"github.com/jflowmap/jflowmap-demo/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
