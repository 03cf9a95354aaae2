package logger

import "sync/atomic"

// Session holds the logging-session state shared with interrupt context.
// fileOpen transitions to true only after a successful create and back to
// false only once the drain/sync/close sequence has completed, so the
// producer can never enqueue into a session with no file to drain into.
type Session struct {
	fileOpen atomic.Bool
}

// FileOpen reports whether a log file handle currently exists.
func (s *Session) FileOpen() bool { return s.fileOpen.Load() }
