// Package errors provides the error types and exit codes for depsync.
//
// Exit codes are stable for scripting:
//   - 0: success (including runs with per-package fetch warnings)
//   - 1: updates available, only when --fail-on-outdated was requested
//   - 2: unexpected failure
//   - 3: configuration or manifest error
//
// Use ExitError to terminate a command with a specific code:
//
//	return errors.NewExitErrorf(errors.ExitConfigError, "failed to load %s", path)
//
// cmd.Execute extracts the code with GetExitCode.
package errors
