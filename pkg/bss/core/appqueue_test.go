package core

import "testing"

func TestApplicationQueue_PopSmallestOrdersByClock(t *testing.T) {
	q := NewApplicationQueue()
	q.Insert(newTestMessage("B", 0, 2))
	q.Insert(newTestMessage("A", 0, 1))

	first, ok := q.PopSmallest()
	if !ok || first.Payload != "A" {
		t.Fatalf("expected A to pop first, got %+v", first)
	}
	second, ok := q.PopSmallest()
	if !ok || second.Payload != "B" {
		t.Fatalf("expected B to pop second, got %+v", second)
	}
	if _, ok := q.PopSmallest(); ok {
		t.Fatalf("expected queue to be empty")
	}
}

func TestApplicationQueue_PeekDoesNotRemove(t *testing.T) {
	q := NewApplicationQueue()
	q.Insert(newTestMessage("A", 0, 1))
	if _, ok := q.PeekSmallest(); !ok {
		t.Fatalf("expected a message")
	}
	if q.Size() != 1 {
		t.Fatalf("peek must not remove, size = %d", q.Size())
	}
}
