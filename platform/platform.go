// Package platform assembles the hardware set for the current build target.
// Host builds get simulated peripherals suitable for tests and the bench
// tool; rp2 builds wire the real sensor, card and debug UART.
package platform

import (
	"time"

	"datalogger-go/hal"
)

// Set bundles the peripherals a board build provides.
type Set struct {
	Sensor  hal.Sensor
	Storage hal.Storage
	Display hal.Display
	Clock   hal.Clock
}

// msClock counts milliseconds since boot on a wrapping uint32, like the
// hardware timer the debounce window is specified against.
type msClock struct{ start time.Time }

func newMsClock() *msClock { return &msClock{start: time.Now()} }

func (c *msClock) Ticks() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

// StartSampleTimer invokes fn every periodMs milliseconds on a dedicated
// goroutine, standing in for the hardware sample timer. fn runs in producer
// context and must not block. The returned func stops the timer.
func StartSampleTimer(periodMs int, fn func()) func() {
	if periodMs <= 0 {
		periodMs = 10
	}
	t := time.NewTicker(time.Duration(periodMs) * time.Millisecond)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		t.Stop()
		close(done)
	}
}
