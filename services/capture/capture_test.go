package capture

import (
	"encoding/binary"
	"testing"

	"datalogger-go/types"
	"datalogger-go/x/spscring"
)

type fakeSensor struct {
	next       types.Sample
	reads      int
	conversion int
}

func (s *fakeSensor) BeginConversion()           { s.conversion++ }
func (s *fakeSensor) ReadInto(out *types.Sample) { *out = s.next; s.reads++ }

type fakeGate struct{ open bool }

func (g *fakeGate) Capturing() bool { return g.open }

func TestSampleEnqueuesOnlyWhileCapturing(t *testing.T) {
	sensor := &fakeSensor{next: types.Sample{ADC: 0x0102, Ax: -1, Ay: 2, Az: -3}}
	ring := spscring.New[byte](64)
	gate := &fakeGate{open: false}
	c := New(sensor, ring, gate)

	c.Sample()
	if ring.Used() != 0 {
		t.Fatalf("record enqueued while gate closed: used=%d", ring.Used())
	}
	if sensor.conversion != 1 {
		t.Fatal("next conversion must be triggered even while gated off")
	}

	gate.open = true
	c.Sample()
	if ring.Used() != types.SampleLen {
		t.Fatalf("used=%d, want one record (%d)", ring.Used(), types.SampleLen)
	}
	if sensor.reads != 2 || sensor.conversion != 2 {
		t.Fatalf("sensor calls: reads=%d conversions=%d", sensor.reads, sensor.conversion)
	}

	var rec [types.SampleLen]byte
	if n, _ := ring.ReadInto(rec[:]); n != types.SampleLen {
		t.Fatalf("drained %d bytes", n)
	}
	if binary.LittleEndian.Uint16(rec[0:]) != 0x0102 {
		t.Fatalf("ADC field mismatch: % x", rec)
	}
	if int16(binary.LittleEndian.Uint16(rec[2:])) != -1 ||
		int16(binary.LittleEndian.Uint16(rec[4:])) != 2 ||
		int16(binary.LittleEndian.Uint16(rec[6:])) != -3 {
		t.Fatalf("axis fields mismatch: % x", rec)
	}
}

func TestOverflowDropsRecordAndSetsFlag(t *testing.T) {
	sensor := &fakeSensor{}
	ring := spscring.New[byte](16) // room for two records
	gate := &fakeGate{open: true}
	c := New(sensor, ring, gate)

	c.Sample()
	c.Sample() // second record still fits (16 bytes usable)
	c.Sample() // third is rejected

	if ring.Used() != 2*types.SampleLen {
		t.Fatalf("used=%d, want %d", ring.Used(), 2*types.SampleLen)
	}
	if !ring.Overflowed() {
		t.Fatal("sticky overflow flag not set after dropped record")
	}
	// The drop must not disturb the buffered records or stop sampling.
	if sensor.conversion != 3 {
		t.Fatalf("conversions=%d, want 3", sensor.conversion)
	}
}

func TestCaptureOrderIsPreserved(t *testing.T) {
	sensor := &fakeSensor{}
	ring := spscring.New[byte](128)
	c := New(sensor, ring, &fakeGate{open: true})

	for i := 0; i < 5; i++ {
		sensor.next = types.Sample{ADC: uint16(i)}
		c.Sample()
	}

	var rec [types.SampleLen]byte
	for i := 0; i < 5; i++ {
		if n, _ := ring.ReadInto(rec[:]); n != types.SampleLen {
			t.Fatalf("record %d: drained %d bytes", i, n)
		}
		if got := binary.LittleEndian.Uint16(rec[0:]); got != uint16(i) {
			t.Fatalf("record %d out of order: ADC=%d", i, got)
		}
	}
}
