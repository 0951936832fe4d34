package main

import (
	"os"

	"github.com/edge-coloring/projective-discharging/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
