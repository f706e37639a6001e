// Package main provides the entry point for the waymark CLI tool.
package main

import (
	"github.com/waymarkhq/waymark/internal/cmd"
)

// version is populated by the release build.
var version = "dev"

func main() {
	cmd.Execute(version)
}
