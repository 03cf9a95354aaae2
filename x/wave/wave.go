// Package wave generates integer test waveforms for the simulated sensor.
// Everything is plain integer math so a sweep can run in producer context.
package wave

// Triangle maps a monotonically increasing phase onto a symmetric triangle
// in [0, span). span must be positive.
func Triangle(phase, span uint32) uint16 {
	p := phase % (2 * span)
	if p >= span {
		p = 2*span - p - 1
	}
	return uint16(p)
}

// Centered is Triangle shifted to swing around zero, in (-span/2, span/2].
func Centered(phase, span uint32) int16 {
	return int16(Triangle(phase, span)) - int16(span/2)
}
