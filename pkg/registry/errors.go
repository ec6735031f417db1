package registry

import "fmt"

// FetchErrorKind classifies why a latest-version lookup failed.
type FetchErrorKind string

const (
	// FetchTimeout indicates the request exceeded its timeout or was cancelled.
	FetchTimeout FetchErrorKind = "timeout"

	// FetchNotFound indicates the registry answered with a non-2xx status.
	FetchNotFound FetchErrorKind = "not-found"

	// FetchMalformed indicates the response body could not be decoded or
	// carried no version.
	FetchMalformed FetchErrorKind = "malformed"

	// FetchTransport indicates the request never completed at the network
	// level (DNS failure, refused connection, broken URL).
	FetchTransport FetchErrorKind = "transport"
)

// FetchError is the typed failure produced by Client.LatestVersion.
//
// All fetch errors are non-fatal to a reconciliation batch: the scheduler
// converts them into warnings instead of aborting.
//
// Fields:
//   - Package: Name of the package whose lookup failed
//   - Kind: Failure classification
//   - Err: Underlying error, may be nil
type FetchError struct {
	Package string
	Kind    FetchErrorKind
	Err     error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message in the form "package: kind: cause"
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Package, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Package, e.Kind)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The wrapped error, or nil
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the error is a timeout-class fetch failure.
//
// Cancellation and deadline expiry both classify as timeouts, so this covers
// every "the request did not get to finish" case.
//
// Returns:
//   - bool: true if Kind is FetchTimeout
func (e *FetchError) IsTimeout() bool {
	return e.Kind == FetchTimeout
}
