// services/capture/capture.go
// Package capture assembles one fixed-size sample record per sampling period
// and hands it to the SD ring buffer. Sample is the timer-ISR body: it must
// not block, allocate, or retry.
package capture

import (
	"datalogger-go/hal"
	"datalogger-go/types"
	"datalogger-go/x/spscring"
)

// Gate reports whether records should currently be produced. Implemented by
// the logger session: true while logging is enabled and the log file is
// open. Records produced outside that window are discarded at the source.
type Gate interface {
	Capturing() bool
}

type Capture struct {
	sensor hal.Sensor
	ring   *spscring.Ring[byte]
	gate   Gate

	// Preallocated scratch so the interrupt path never allocates.
	rec     types.Sample
	scratch [types.SampleLen]byte
}

func New(sensor hal.Sensor, ring *spscring.Ring[byte], gate Gate) *Capture {
	return &Capture{sensor: sensor, ring: ring, gate: gate}
}

// Sample runs once per sampling period in interrupt context: read the
// completed conversion, enqueue the record if the session is capturing, and
// trigger the next conversion so data is ready for the following period.
//
// A write rejected for space drops this record; the ring's sticky overflow
// flag is the only signal, there is no retry here.
func (c *Capture) Sample() {
	c.sensor.ReadInto(&c.rec)
	if c.gate.Capturing() {
		c.rec.MarshalInto(c.scratch[:])
		_ = c.ring.WriteFrom(c.scratch[:])
	}
	c.sensor.BeginConversion()
}
