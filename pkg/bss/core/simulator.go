package core

import (
	"time"

	"github.com/bsscast/bsssim/pkg/bss/definition"
	"github.com/bsscast/bsssim/pkg/bss/types"
)

// Simulator is the driver: given one operation script per process, it
// allocates the processes, spawns one execution context per process
// through Invoker, joins them, and returns the resulting Trace.
type Simulator struct {
	// Invoker spawns and joins process execution contexts. Defaults to a
	// WaitGroupInvoker if nil.
	Invoker Invoker

	// Logger is handed to every constructed Process. Defaults to
	// definition.NewDefaultLogger() if nil.
	Logger types.Logger

	// Metrics is handed to every constructed Process. May be left nil to
	// disable metrics entirely.
	Metrics *definition.Metrics

	// PollLimit overrides the 2*N default for how many times a RecvB may
	// find nothing before the livelock heuristic fires. Zero or negative
	// selects the default.
	PollLimit int

	// PollBackoff overrides DefaultPollBackoff.
	PollBackoff time.Duration
}

// Run executes scripts (one per process, indexed 0..N-1) concurrently and
// returns the merged Trace. The returned error, if non-nil, is (wrapped)
// ErrLivelockDetected from the lowest-indexed process that reported one; the Trace
// still contains every event emitted before the abort.
func (s *Simulator) Run(scripts [][]types.Operation) (*Trace, error) {
	n := len(scripts)

	invoker := s.Invoker
	if invoker == nil {
		invoker = NewWaitGroupInvoker()
	}
	logger := s.Logger
	if logger == nil {
		logger = definition.NewDefaultLogger()
	}
	pollLimit := s.PollLimit
	if pollLimit <= 0 {
		pollLimit = 2 * n
	}

	sinks := make([]MessageSink, n)
	buffers := make([]*BssBuffer, n)
	queues := make([]*ApplicationQueue, n)
	for i := 0; i < n; i++ {
		buffers[i] = NewBssBuffer()
		queues[i] = NewApplicationQueue()
		sinks[i] = buffers[i]
	}
	broadcaster := NewBroadcaster(sinks)

	trace := NewTrace(n)
	processes := make([]*Process, n)
	for i := 0; i < n; i++ {
		cfg := Config{
			ID:          i,
			N:           n,
			Script:      scripts[i],
			PollLimit:   pollLimit,
			PollBackoff: s.PollBackoff,
			Logger:      logger,
			Metrics:     s.Metrics,
		}
		processes[i] = NewProcess(cfg, buffers[i], queues[i], broadcaster)
	}

	errs := make([]error, n)
	for i, p := range processes {
		i, p := i, p
		invoker.Spawn(func() {
			errs[i] = p.Run(trace)
		})
	}
	invoker.Wait()

	for _, err := range errs {
		if err != nil {
			return trace, err
		}
	}
	return trace, nil
}
