package domain

import "errors"

// Sentinel errors classifying the failure modes of a fetch. Every error
// produced by this package (and by the DWD adapter) wraps one of these,
// so callers can branch with errors.Is without string matching.
var (
	// ErrTransport marks network or protocol failures reaching the endpoint.
	ErrTransport = errors.New("transport failure")

	// ErrResponseShape marks a body that does not carry the expected
	// warnWetter.loadWarnings(...) envelope. Usually upstream format drift.
	ErrResponseShape = errors.New("unexpected response shape")

	// ErrDeserialization marks structurally invalid JSON inside the envelope.
	ErrDeserialization = errors.New("deserialization failed")

	// ErrDateParsing marks an epoch-millisecond value outside the
	// representable calendar range.
	ErrDateParsing = errors.New("timestamp out of range")
)
