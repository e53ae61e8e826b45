// Package test holds end-to-end scenario tests that drive the simulator
// the way the CLI does: parse a script, run it, render its trace.
package test

import (
	"strings"
	"testing"
	"time"

	"github.com/bsscast/bsssim/pkg/bss/core"
	"github.com/bsscast/bsssim/pkg/bss/script"
)

// RunScript parses and executes src exactly as the CLI would, returning
// the resulting trace and any error from parsing or simulation.
func RunScript(t *testing.T, src string) (*core.Trace, error) {
	t.Helper()
	scripts, err := script.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	sim := &core.Simulator{PollBackoff: time.Millisecond}
	return sim.Run(scripts)
}

// RenderTrace round-trips trace through the plain-text writer, so
// scenario tests can assert on the exact bytes the CLI would produce.
func RenderTrace(t *testing.T, trace *core.Trace) string {
	t.Helper()
	var buf strings.Builder
	if err := script.WriteTrace(&buf, trace); err != nil {
		t.Fatalf("WriteTrace failed: %v", err)
	}
	return buf.String()
}
