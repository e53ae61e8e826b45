package types

import "testing"

func TestClock_IncrementOwnSlotOnly(t *testing.T) {
	c := NewClock(3)
	c.Increment(1)
	if c.At(0) != 0 || c.At(1) != 1 || c.At(2) != 0 {
		t.Fatalf("unexpected clock after increment: %s", c)
	}
}

func TestClock_MergeIsSlotwiseMax(t *testing.T) {
	a := NewClock(3)
	a.Increment(0)
	a.Increment(0)
	b := NewClock(3)
	b.Increment(1)

	if err := a.Merge(b); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if a.At(0) != 2 || a.At(1) != 1 || a.At(2) != 0 {
		t.Fatalf("unexpected merged clock: %s", a)
	}
}

func TestClock_MergeIdempotent(t *testing.T) {
	a := NewClock(3)
	a.Increment(0)
	a.Increment(2)
	before := a.Clone()

	if err := a.Merge(a.Clone()); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !a.Equal(before) {
		t.Fatalf("merging a clock with itself changed it: %s != %s", a, before)
	}
}

func TestClock_MergeLengthMismatch(t *testing.T) {
	a := NewClock(2)
	b := NewClock(3)
	if err := a.Merge(b); err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestClock_LexCompare(t *testing.T) {
	a := NewClock(3)
	b := NewClock(3)
	if a.LexCompare(b) != 0 {
		t.Fatalf("zeroed clocks of equal length should compare equal")
	}
	b.Increment(2)
	if a.LexCompare(b) >= 0 {
		t.Fatalf("a should lex-compare less than b")
	}
	if b.LexCompare(a) <= 0 {
		t.Fatalf("b should lex-compare greater than a")
	}
}

func TestClock_String(t *testing.T) {
	c := NewClock(3)
	c.Increment(0)
	c.Increment(0)
	c.Increment(1)
	if got, want := c.String(), "(2,1,0)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCausalDeliveryAllowed_NextFromSenderAndNoGaps(t *testing.T) {
	receiver := NewClock(3)
	msg := NewClock(3)
	msg.Increment(0) // sender 0's first send

	if !CausalDeliveryAllowed(receiver, msg, 0) {
		t.Fatalf("first message from a fresh sender should be deliverable")
	}
}

func TestCausalDeliveryAllowed_RejectsGapFromSender(t *testing.T) {
	receiver := NewClock(3)
	msg := NewClock(3)
	msg.Increment(0)
	msg.Increment(0) // sender's second send, but receiver hasn't seen the first

	if CausalDeliveryAllowed(receiver, msg, 0) {
		t.Fatalf("a gap in the sender's sequence must block delivery")
	}
}

func TestCausalDeliveryAllowed_RejectsUnsatisfiedDependency(t *testing.T) {
	receiver := NewClock(3)
	msg := NewClock(3)
	msg.Increment(1) // depends on a send from process 1 that p2 hasn't seen
	msg.Increment(2)

	if CausalDeliveryAllowed(receiver, msg, 2) {
		t.Fatalf("a message depending on an unseen broadcast must block")
	}
}
