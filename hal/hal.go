// hal/hal.go
// Package hal declares the narrow hardware collaborator interfaces consumed
// by the logging core. Implementations live under platform/ (per board) and
// as fakes in the service tests; the core never touches registers, the
// filesystem library or the panel directly.
package hal

import "datalogger-go/types"

// Sensor is the sample source. Both methods must be non-blocking and safe to
// call from the sampling interrupt context.
type Sensor interface {
	// BeginConversion starts the next asynchronous acquisition so readings
	// are complete by the following sampling period.
	BeginConversion()
	// ReadInto copies the most recently completed readings into s.
	ReadInto(s *types.Sample)
}

// File is an open log file on the storage medium.
type File interface {
	Write(p []byte) (int, error)
	Sync() error
	Close() error
	Size() int64
}

// Storage is the removable block-storage medium plus its filesystem.
// All operations may fail; the storage writer retries per its policies.
type Storage interface {
	// Detect reports whether a medium is present.
	Detect() bool
	Mount() error
	// Create opens the named log file for writing, truncating any previous
	// contents (the firmware keeps a single rolling log file).
	Create(name string) (File, error)
	// FreeSpace returns total and free 512-byte sector counts.
	FreeSpace() (total, free uint32, err error)
}

// Display is the status panel. Calls are fire-and-forget; failures are not
// surfaced to the core.
type Display interface {
	ClearRow(row int)
	DrawString(row, col int, text string)
}

// Clock is a wrapping monotonic tick counter, one tick per millisecond on
// all current platforms. Deltas must use wrapping subtraction.
type Clock interface {
	Ticks() uint32
}
