package core

import "github.com/bsscast/bsssim/pkg/bss/types"

// MessageSink is the narrow interface a Broadcaster is given for each
// peer: write access to that peer's BssBuffer only, never the whole
// Process. This keeps the fan-out primitive from aliasing state it has
// no business touching.
type MessageSink interface {
	InsertMessage(msg types.Message)
}

// Broadcaster fans a Message out to every peer's BssBuffer except the
// sender's own. Each peer insertion is atomic with respect to that peer's
// buffer (its own lock), but the fan-out as a whole is not globally
// atomic — different peers may observe broadcasts from different senders
// in different orders, which causal delivery exists to repair.
type Broadcaster struct {
	peers []MessageSink
}

// NewBroadcaster returns a Broadcaster over peers, indexed by process id.
func NewBroadcaster(peers []MessageSink) *Broadcaster {
	return &Broadcaster{peers: peers}
}

// Broadcast inserts msg into every peer's sink other than msg.Sender.
func (b *Broadcaster) Broadcast(msg types.Message) {
	for i, peer := range b.peers {
		if i == msg.Sender {
			continue
		}
		peer.InsertMessage(msg)
	}
}
