// services/control/toggle.go
// Package control turns debounced physical-input edges into logging on/off
// transitions. OnEdge runs in interrupt context; the main loop reads the
// enabled flag. That flag is the only state shared across the boundary.
package control

import (
	"sync/atomic"

	"datalogger-go/hal"
)

// DefaultDebounceTicks is the minimum interval between accepted edges.
const DefaultDebounceTicks = 250

type Toggle struct {
	clk      hal.Clock
	debounce uint32

	enabled atomic.Bool

	// lastEdge is touched only from interrupt context (single writer).
	lastEdge uint32

	events chan struct{}
}

func New(clk hal.Clock, debounceTicks uint32) *Toggle {
	if debounceTicks == 0 {
		debounceTicks = DefaultDebounceTicks
	}
	return &Toggle{
		clk:      clk,
		debounce: debounceTicks,
		events:   make(chan struct{}, 1),
	}
}

// OnEdge is the button ISR body. An edge within the debounce window of the
// last accepted edge is ignored; an accepted edge toggles the session state
// and pokes the main loop. Non-blocking, no allocation.
//
// The baseline starts at tick zero, so an edge inside the first window after
// boot is ignored.
func (t *Toggle) OnEdge() {
	now := t.clk.Ticks()
	if now-t.lastEdge < t.debounce { // wrapping delta
		return
	}
	t.lastEdge = now
	t.enabled.Store(!t.enabled.Load())
	select {
	case t.events <- struct{}{}:
	default:
	}
}

// Enabled reports whether logging is currently requested.
func (t *Toggle) Enabled() bool { return t.enabled.Load() }

// Events delivers a notification per accepted edge, coalesced if the
// consumer lags. Enabled() is authoritative; the token only says "look".
func (t *Toggle) Events() <-chan struct{} { return t.events }
