// Package main provides the sdmins CLI application.
// sdmins validates campus social-media datasets, synthesizes monthly
// insights and audits every generated claim against the source data.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
