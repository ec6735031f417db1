// Package verbose provides opt-in debug logging for depsync.
// Messages go to stderr with a [DEBUG] prefix and are suppressed unless
// enabled via the --verbose flag.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging.
//
// Safe for concurrent use.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
//
// Safe for concurrent use.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; nil leaves the writer unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// ManifestLoaded logs which manifest was loaded and its group sizes if enabled.
//
// Parameters:
//   - path: The manifest file path
//   - deps: Number of entries in the dependencies group
//   - devDeps: Number of entries in the devDependencies group
func ManifestLoaded(path string, deps, devDeps int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Manifest loaded: %s (%d dependencies, %d devDependencies)\n", path, deps, devDeps)
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The config file path, or "defaults" for built-in configuration
func ConfigLoaded(path string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Config loaded: %s\n", path)
	}
}

// VersionCompared logs a declared-vs-latest comparison if enabled.
//
// Parameters:
//   - pkg: The package name
//   - declared: The declared base version (marker stripped)
//   - latest: The latest version reported by the registry
func VersionCompared(pkg, declared, latest string) {
	if !IsEnabled() {
		return
	}
	if declared == latest {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s is up to date (%s)\n", pkg, declared)
	} else {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s differs: declared %s, latest %s\n", pkg, declared, latest)
	}
}

// FetchFailed logs a failed registry lookup if enabled.
//
// Parameters:
//   - pkg: The package whose lookup failed
//   - err: The lookup failure
func FetchFailed(pkg string, err error) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Fetch failed for %s: %v\n", pkg, err)
	}
}

// GroupReconciled logs the summary line for a reconciled group if enabled.
//
// Parameters:
//   - group: The group name ("runtime" or "development")
//   - examined: Number of packages examined
//   - updates: Number of update decisions produced
//   - failures: Number of lookup failures
func GroupReconciled(group string, examined, updates, failures int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Group %s: %d examined, %d updates, %d failures\n", group, examined, updates, failures)
	}
}

// Elapsed logs the wall-clock duration of an operation if enabled.
//
// Parameters:
//   - operation: Short operation label (e.g., "reconcile")
//   - d: The measured duration
func Elapsed(operation string, d time.Duration) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s took %s\n", operation, d.Round(time.Millisecond))
	}
}
