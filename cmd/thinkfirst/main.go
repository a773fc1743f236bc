// Package main is the single-binary entrypoint for ThinkFirst: the
// tracking daemon and its CLI in one binary.
package main

import "github.com/thinkfirst-app/thinkfirst/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
