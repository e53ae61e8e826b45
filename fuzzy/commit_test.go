// Package fuzzy stress-tests the simulator with larger, fixed, generated
// scripts, checking that delivery stays consistent across repeated runs
// and that no goroutine is left behind once a run completes.
package fuzzy

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/bsscast/bsssim/pkg/bss/core"
	"github.com/bsscast/bsssim/pkg/bss/script"
)

var alphabet = strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")

// Test_SequentialCommands runs one sender against one receiver for every
// letter of the alphabet, in a single causal chain, and checks that every
// letter is eventually delivered in the order it was sent.
func Test_SequentialCommands(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sb strings.Builder
	sb.WriteString("begin process p1\n")
	for _, letter := range alphabet {
		fmt.Fprintf(&sb, "send %s\n", letter)
	}
	sb.WriteString("end process p1\n")

	sb.WriteString("begin process p2\n")
	for _, letter := range alphabet {
		fmt.Fprintf(&sb, "recv_B p1 %s\n", letter)
	}
	sb.WriteString("end process p2\n")

	scripts, err := script.Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	sim := &core.Simulator{PollBackoff: time.Millisecond}
	trace, err := sim.Run(scripts)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	events := trace.Events(1)
	var delivered []string
	for _, e := range events {
		if strings.Contains(e, "recv_A") {
			fields := strings.Fields(e)
			delivered = append(delivered, fields[3])
		}
	}
	if len(delivered) != len(alphabet) {
		t.Fatalf("expected %d deliveries, got %d: %v", len(alphabet), len(delivered), delivered)
	}
	for i, letter := range alphabet {
		if delivered[i] != letter {
			t.Fatalf("expected letter %d to be %s, got %s", i, letter, delivered[i])
		}
	}
}

// Test_ConcurrentCommands runs 26 independent single-letter senders, each
// a distinct process, all received by one process. Causal order between
// independent senders is unconstrained, so this only checks that every
// message is eventually delivered and the receiver's clock converges to
// one increment per sender, regardless of arrival interleaving.
func Test_ConcurrentCommands(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := len(alphabet) + 1
	receiverIdx := n - 1

	var sb strings.Builder
	for i, letter := range alphabet {
		fmt.Fprintf(&sb, "begin process p%d\nsend %s\nend process p%d\n", i+1, letter, i+1)
	}
	fmt.Fprintf(&sb, "begin process p%d\n", receiverIdx+1)
	for i, letter := range alphabet {
		fmt.Fprintf(&sb, "recv_B p%d %s\n", i+1, letter)
	}
	fmt.Fprintf(&sb, "end process p%d\n", receiverIdx+1)

	scripts, err := script.Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	sim := &core.Simulator{PollBackoff: time.Millisecond}
	trace, err := sim.Run(scripts)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	events := trace.Events(receiverIdx)
	delivered := 0
	for _, e := range events {
		if strings.Contains(e, "recv_A") {
			delivered++
		}
	}
	if delivered != len(alphabet) {
		t.Fatalf("expected all %d letters delivered, got %d: %v", len(alphabet), delivered, events)
	}
	want := "(" + strings.Repeat("1,", len(alphabet)) + "0)"
	if !strings.HasSuffix(events[len(events)-1], want) {
		t.Fatalf("expected final clock %s, got %v", want, events[len(events)-1])
	}
}

// Test_RepeatedRunsLeaveNoGoroutines drives several independent
// simulator runs back to back, verifying the invoker-joined goroutines
// from each run are gone before the next starts.
func Test_RepeatedRunsLeaveNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := `
begin process p1
send A
send B
end process p1
begin process p2
recv_B p1 A
recv_B p1 B
end process p2
`
	scripts, err := script.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	for i := 0; i < 20; i++ {
		sim := &core.Simulator{PollBackoff: time.Millisecond}
		if _, err := sim.Run(scripts); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}
}
