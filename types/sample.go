package types

import "encoding/binary"

// SampleLen is the fixed wire length of one marshalled Sample. The log file
// is a raw concatenation of these records with no framing, so downstream
// tooling recovers record boundaries from this constant alone. 64 records
// fill one 512-byte sector exactly.
const SampleLen = 8

// Sample is one set of readings captured in a single sampling period:
// the instrumented ADC channel plus the three accelerometer axes.
type Sample struct {
	ADC uint16
	Ax  int16
	Ay  int16
	Az  int16
}

// MarshalInto writes the little-endian wire form into dst, which must be at
// least SampleLen bytes. No allocation; safe in interrupt context.
func (s *Sample) MarshalInto(dst []byte) {
	_ = dst[SampleLen-1]
	binary.LittleEndian.PutUint16(dst[0:], s.ADC)
	binary.LittleEndian.PutUint16(dst[2:], uint16(s.Ax))
	binary.LittleEndian.PutUint16(dst[4:], uint16(s.Ay))
	binary.LittleEndian.PutUint16(dst[6:], uint16(s.Az))
}
