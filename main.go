// Package main is the entry point for the depsync CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The depsync tool reconciles a
// package.json's declared dependency versions against the latest versions
// published on an npm-compatible registry.
package main

import "github.com/ajxudir/depsync/cmd"

// main initializes and runs the depsync CLI application.
//
// It delegates all command parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
