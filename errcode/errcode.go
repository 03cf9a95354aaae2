package errcode

// Code is a stable, display/debug-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Ring buffer
	Overflow      Code = "overflow"       // write rejected, sensor data lost
	InvalidLength Code = "invalid_length" // request exceeds ring capacity

	// Storage medium
	StorageFailure Code = "storage_failure" // open/write/sync/close non-success
	MediaAbsent    Code = "media_absent"    // no removable medium detected

	Error Code = "error" // generic fallback
)

// E keeps the failing operation and cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Err error
}

func (e *E) Error() string {
	if e.Op != "" {
		return string(e.C) + ": " + e.Op
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
