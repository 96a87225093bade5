// Package main implements the cli-engine inspection CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cli-engine/cli-engine/pkg/config"
)

var (
	// version is set at build time
	version = "0.1.0"
)

func main() {
	if err := newRootCmd(config.CurrentEnvironment()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
