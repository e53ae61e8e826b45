package core

import (
	"sort"
	"sync"

	"github.com/bsscast/bsssim/pkg/bss/types"
)

// ApplicationQueue is the thread-safe, lex-sorted multiset of messages
// promoted from a BssBuffer but not yet released to the application. Only
// the owning process ever touches its own ApplicationQueue, but the type
// remains internally synchronized to match the shared-resource discipline
// applied to every queue in the simulator.
type ApplicationQueue struct {
	mu       sync.Mutex
	messages []types.Message
}

// NewApplicationQueue returns an empty application queue.
func NewApplicationQueue() *ApplicationQueue {
	return &ApplicationQueue{}
}

// Insert adds msg in lex-sorted position by SentAt.
func (q *ApplicationQueue) Insert(msg types.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := sort.Search(len(q.messages), func(i int) bool {
		return q.messages[i].SentAt.LexCompare(msg.SentAt) >= 0
	})
	q.messages = append(q.messages, types.Message{})
	copy(q.messages[idx+1:], q.messages[idx:])
	q.messages[idx] = msg
}

// PeekSmallest returns the lex-smallest-clocked message without removing
// it, or ok=false if the queue is empty.
func (q *ApplicationQueue) PeekSmallest() (msg types.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return types.Message{}, false
	}
	return q.messages[0], true
}

// PopSmallest removes and returns the lex-smallest-clocked message, or
// ok=false if the queue is empty.
func (q *ApplicationQueue) PopSmallest() (msg types.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return types.Message{}, false
	}
	msg = q.messages[0]
	q.messages = q.messages[1:]
	return msg, true
}

// Size returns the number of messages currently queued.
func (q *ApplicationQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}
