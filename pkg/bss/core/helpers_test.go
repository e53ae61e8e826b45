package core

import "github.com/bsscast/bsssim/pkg/bss/types"

// newTestMessage builds a 2-slot message sent by sender whose clock slot
// has been incremented to val, for table-driven queue/buffer tests.
func newTestMessage(payload string, sender, val int) types.Message {
	return types.NewMessage(payload, sender, clockAt(2, sender, val))
}
