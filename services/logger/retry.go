package logger

import "time"

// RetryPolicy decides how long to wait before the next attempt of a failed
// storage operation, and whether to keep trying. attempt is 1-based.
type RetryPolicy interface {
	Next(attempt int) (wait time.Duration, retry bool)
}

// FixedDelay retries forever with a constant wait. This is the firmware
// policy: the device is unattended and has no supervisory layer to escalate
// to, so it loops until the condition clears.
type FixedDelay struct{ Wait time.Duration }

func (p FixedDelay) Next(int) (time.Duration, bool) { return p.Wait, true }

// BoundedAttempts gives up after Max attempts. Test and bench policy.
type BoundedAttempts struct {
	Wait time.Duration
	Max  int
}

func (p BoundedAttempts) Next(attempt int) (time.Duration, bool) {
	return p.Wait, attempt < p.Max
}
