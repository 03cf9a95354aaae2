// Package spscring provides a fixed-capacity single-producer/single-consumer
// ring with all-or-nothing writes and a sticky overflow flag. The producer
// side is written from interrupt context and the consumer side from the main
// loop: wr is mutated only by the producer, rd only by the consumer, and each
// side only loads the other's index, so no lock is needed as long as index
// loads and stores are atomic.
package spscring

import (
	"sync/atomic"

	"datalogger-go/errcode"
)

var (
	// ErrOverflow is returned when a write exceeds the free space or the
	// capacity. The sticky overflow flag is set alongside it.
	ErrOverflow error = &errcode.E{C: errcode.Overflow, Op: "ring write"}
	// ErrReadTooLarge is returned when the destination is larger than the
	// ring itself; smaller reads clamp silently instead.
	ErrReadTooLarge error = &errcode.E{C: errcode.InvalidLength, Op: "ring read"}
)

// Ring is a single-producer, single-consumer ring of E.
//
// Indices are monotonic uint32 counters masked into the backing slice, so
// used == 0 and used == Cap() are distinct states and the full capacity is
// usable. The element width is the type parameter; the SD pipeline
// instantiates Ring[byte].
type Ring[E any] struct {
	buf  []E
	mask uint32

	rd atomic.Uint32 // consumer index (monotonic)
	wr atomic.Uint32 // producer index (monotonic)

	// Sticky: set on any rejected write, cleared only by the owning session
	// when a new log file is opened. The sole capacity-exhaustion signal.
	overflow atomic.Bool

	readable chan struct{} // empty -> non-empty edge
}

// New allocates a ring. Size must be a power of two >= 2.
func New[E any](size int) *Ring[E] {
	if size < 2 || (size&(size-1)) != 0 {
		panic("spscring: size must be power of two >= 2")
	}
	return &Ring[E]{
		buf:      make([]E, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
	}
}

func (r *Ring[E]) size() uint32 { return uint32(len(r.buf)) }

// Cap returns the fixed capacity.
func (r *Ring[E]) Cap() int { return len(r.buf) }

// Used returns the number of buffered elements. O(1).
func (r *Ring[E]) Used() int { return int(r.wr.Load() - r.rd.Load()) }

// Free returns the remaining space. O(1).
func (r *Ring[E]) Free() int { return len(r.buf) - r.Used() }

// WriteFrom copies all of src into the ring, or nothing at all. A write of
// len(src) >= Cap(), or one exceeding the current free space, fails with
// ErrOverflow, sets the sticky overflow flag and leaves the indices
// untouched. Producer side only; never blocks.
func (r *Ring[E]) WriteFrom(src []E) error {
	n := len(src)
	if n == 0 {
		return nil
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	beforeAvail := wr - rd
	if n >= len(r.buf) || n > int(r.size()-beforeAvail) {
		r.overflow.Store(true)
		return ErrOverflow
	}

	size := r.size()
	wrIdx := wr & r.mask
	first := int(size - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	// Wake the consumer on the empty -> non-empty edge.
	if beforeAvail == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return nil
}

// ReadInto drains up to len(dst) elements and returns how many were copied,
// clamping silently to the current used count. It never blocks; an empty
// ring yields 0. len(dst) > Cap() fails with ErrReadTooLarge; a
// capacity-sized destination is valid and drains a full ring in one call.
// Consumer side only.
func (r *Ring[E]) ReadInto(dst []E) (int, error) {
	if len(dst) > len(r.buf) {
		return 0, ErrReadTooLarge
	}
	if len(dst) == 0 {
		return 0, nil
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	n := int(wr - rd)
	if n <= 0 {
		return 0, nil
	}
	if len(dst) < n {
		n = len(dst)
	}

	size := r.size()
	rdIdx := rd & r.mask
	first := int(size - rdIdx)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release
	return n, nil
}

// Overflowed reports the sticky overflow flag.
func (r *Ring[E]) Overflowed() bool { return r.overflow.Load() }

// ClearOverflow clears the sticky overflow flag. The owning session calls
// this when a new log file is opened.
func (r *Ring[E]) ClearOverflow() { r.overflow.Store(false) }

// Reset empties the ring and clears the overflow flag. Both sides must be
// quiescent; this is for logger (re)initialisation, not concurrent use.
func (r *Ring[E]) Reset() {
	r.rd.Store(0)
	r.wr.Store(0)
	r.overflow.Store(false)
	select {
	case <-r.readable:
	default:
	}
}

// Readable fires once per empty -> non-empty transition so the consumer loop
// can sleep between bursts instead of polling.
func (r *Ring[E]) Readable() <-chan struct{} { return r.readable }
