package fastmcp

import "errors"

// Not-found failures are hard errors for every kind: they signal a
// protocol-level mismatch, unlike tool validation failures, which come back
// as error-flagged results.
var (
	// ErrToolNotFound is returned when no tool descriptor matches the
	// requested name.
	ErrToolNotFound = errors.New("unknown tool")

	// ErrPromptNotFound is returned when no prompt descriptor matches the
	// requested name.
	ErrPromptNotFound = errors.New("unknown prompt")

	// ErrResourceNotFound is returned when no resource matcher accepts the
	// requested URI.
	ErrResourceNotFound = errors.New("unknown resource")

	// ErrUnsupportedTransport is returned at startup for an unrecognized
	// transport kind.
	ErrUnsupportedTransport = errors.New("unsupported transport")
)

var errNilInstance = errors.New("nil instance")
