package types

import "fmt"

// Message is the immutable tuple broadcast by a Send operation: the opaque
// payload, the sending process's index, and the sender's vector clock
// snapshot taken immediately after it incremented its own slot.
//
// Once constructed a Message is never mutated; it is cloned by value into
// every peer's BssBuffer.
type Message struct {
	Payload string
	Sender  int
	SentAt  Clock
}

// NewMessage builds a Message for payload broadcast by sender whose clock
// (already incremented for this send) is sentAt. The clock is cloned so
// later increments on the sender's own clock do not retroactively change
// messages already in flight.
func NewMessage(payload string, sender int, sentAt Clock) Message {
	return Message{
		Payload: payload,
		Sender:  sender,
		SentAt:  sentAt.Clone(),
	}
}

// String implements fmt.Stringer for log lines.
func (m Message) String() string {
	return fmt.Sprintf("p%d:%s%s", m.Sender+1, m.Payload, m.SentAt)
}

// Matches reports whether m was sent by sender and carries payload.
func (m Message) Matches(sender int, payload string) bool {
	return m.Sender == sender && m.Payload == payload
}
