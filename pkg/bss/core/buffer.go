// Package core implements the protocol engine: the per-process BSS
// buffer and application queue, the broadcaster, the process execution
// context, and the simulator driver that ties them together.
package core

import (
	"sort"
	"sync"
	"time"

	"github.com/bsscast/bsssim/pkg/bss/types"
)

// BssBuffer is the thread-safe, lex-sorted multiset of messages a process
// has received from the broadcaster but not yet handed to its
// ApplicationQueue. It implements MessageSink so the Broadcaster can hold
// it behind a narrow interface rather than aliasing the whole Process.
type BssBuffer struct {
	mu       sync.Mutex
	messages []types.Message
	notify   chan struct{}
}

// NewBssBuffer returns an empty buffer.
func NewBssBuffer() *BssBuffer {
	return &BssBuffer{notify: make(chan struct{}, 1)}
}

// InsertMessage inserts msg in lex-sorted position by SentAt and wakes any
// goroutine blocked in WaitForMatch. Satisfies MessageSink.
func (b *BssBuffer) InsertMessage(msg types.Message) {
	b.mu.Lock()
	idx := sort.Search(len(b.messages), func(i int) bool {
		return b.messages[i].SentAt.LexCompare(msg.SentAt) >= 0
	})
	b.messages = append(b.messages, types.Message{})
	copy(b.messages[idx+1:], b.messages[idx:])
	b.messages[idx] = msg
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// TakeMatching scans for the first (lex-smallest) message whose sender and
// payload both match, removes it and returns it. Returns ok=false if no
// such message is currently buffered.
func (b *BssBuffer) TakeMatching(sender int, payload string) (msg types.Message, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, m := range b.messages {
		if m.Matches(sender, payload) {
			b.messages = append(b.messages[:i], b.messages[i+1:]...)
			return m, true
		}
	}
	return types.Message{}, false
}

// Size returns the number of currently buffered messages.
func (b *BssBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

// WaitForMatch blocks until a message matching (sender, payload) is
// available, waking on every insert rather than busy-polling. If no
// matching message has appeared after pollLimit wakeups/timeouts, it
// returns ErrLivelockDetected — the bounded-wait guard against a script
// that demands a message that will never arrive. pollBackoff bounds how
// long a single wait can go without a notification, so livelock is
// detected even when the buffer never receives another insert at all.
func (b *BssBuffer) WaitForMatch(sender int, payload string, pollLimit int, pollBackoff time.Duration) (types.Message, error) {
	for attempt := 0; ; attempt++ {
		if msg, ok := b.TakeMatching(sender, payload); ok {
			return msg, nil
		}
		if attempt >= pollLimit {
			return types.Message{}, ErrLivelockDetected
		}
		select {
		case <-b.notify:
		case <-time.After(pollBackoff):
		}
	}
}
