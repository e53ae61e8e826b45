// Package types holds the value types shared across the simulator: the
// vector clock algebra, the immutable Message tuple, process scripts, and
// the Logger contract implementations are built against.
package types

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when two clocks of different lengths are
// compared or merged.
var ErrLengthMismatch = errors.New("vector clocks have different lengths")

// Clock is an N-dimensional logical timestamp, one non-negative counter per
// process index 0..N-1. The zero value is not usable; construct with
// NewClock.
type Clock struct {
	slots []int
}

// NewClock returns a zeroed clock with n slots.
func NewClock(n int) Clock {
	return Clock{slots: make([]int, n)}
}

// Len returns the number of slots in the clock.
func (c Clock) Len() int {
	return len(c.slots)
}

// At returns the value of slot i.
func (c Clock) At(i int) int {
	return c.slots[i]
}

// Clone returns an independent copy of c.
func (c Clock) Clone() Clock {
	slots := make([]int, len(c.slots))
	copy(slots, c.slots)
	return Clock{slots: slots}
}

// Increment adds 1 to slot i, mutating c in place. Callers hold their own
// Clock value (not a pointer into shared state), so the change is visible
// only to the call site that already owns the value.
func (c *Clock) Increment(i int) {
	c.slots[i]++
}

// Merge performs a slot-wise max of c and other, mutating c in place.
func (c *Clock) Merge(other Clock) error {
	if c.Len() != other.Len() {
		return ErrLengthMismatch
	}
	for i, v := range other.slots {
		if v > c.slots[i] {
			c.slots[i] = v
		}
	}
	return nil
}

// LexCompare returns -1, 0 or 1 depending on whether c is lexicographically
// less than, equal to, or greater than other. Clocks of differing length
// compare by their shared prefix and then by length, which never occurs in
// this simulator (every clock is built with the same N) but keeps the
// comparison total.
func (c Clock) LexCompare(other Clock) int {
	n := c.Len()
	if other.Len() < n {
		n = other.Len()
	}
	for i := 0; i < n; i++ {
		if c.slots[i] != other.slots[i] {
			if c.slots[i] < other.slots[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case c.Len() < other.Len():
		return -1
	case c.Len() > other.Len():
		return 1
	default:
		return 0
	}
}

// Equal reports whether c and other have identical slot values.
func (c Clock) Equal(other Clock) bool {
	return c.LexCompare(other) == 0
}

// CausalDeliveryAllowed implements the BSS delivery predicate: msgClock,
// broadcast by sender, may be released to the application whose current
// clock is receiverClock iff it is the next expected message from sender and every
// other dependency it carries has already been observed.
func CausalDeliveryAllowed(receiverClock, msgClock Clock, sender int) bool {
	if msgClock.At(sender) != receiverClock.At(sender)+1 {
		return false
	}
	for k := 0; k < receiverClock.Len(); k++ {
		if k == sender {
			continue
		}
		if msgClock.At(k) > receiverClock.At(k) {
			return false
		}
	}
	return true
}

// String renders the clock as "(v1,v2,...,vN)", matching the trace format
// mandated by the script grammar.
func (c Clock) String() string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, v := range c.slots {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%d", v)
	}
	buf.WriteByte(')')
	return buf.String()
}
