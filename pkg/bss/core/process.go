package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bsscast/bsssim/pkg/bss/definition"
	"github.com/bsscast/bsssim/pkg/bss/types"
)

// DefaultPollBackoff bounds how long WaitForMatch can go between rechecks
// when its BssBuffer receives no inserts at all, so the livelock guard
// still fires against a script that will never be satisfied.
const DefaultPollBackoff = 20 * time.Millisecond

// Config bundles everything a Process needs at construction, passed in
// explicitly rather than reached for via module-level globals.
type Config struct {
	ID          int
	N           int
	Script      []types.Operation
	PollLimit   int
	PollBackoff time.Duration
	Logger      types.Logger
	Metrics     *definition.Metrics
}

// Process holds one simulated process's identity, clock, script, queues
// and executes its scripted operations sequentially, emitting trace
// events annotated with its vector clock at each point.
type Process struct {
	id          int
	n           int
	clock       types.Clock
	script      []types.Operation
	bssBuffer   *BssBuffer
	appQueue    *ApplicationQueue
	broadcaster *Broadcaster
	pollLimit   int
	pollBackoff time.Duration
	log         types.Logger
	metrics     *definition.Metrics
}

// NewProcess constructs a Process bound to its own buffer/queue and a
// shared Broadcaster used to fan out its sends to every peer.
func NewProcess(cfg Config, bssBuffer *BssBuffer, appQueue *ApplicationQueue, broadcaster *Broadcaster) *Process {
	backoff := cfg.PollBackoff
	if backoff <= 0 {
		backoff = DefaultPollBackoff
	}
	return &Process{
		id:          cfg.ID,
		n:           cfg.N,
		clock:       types.NewClock(cfg.N),
		script:      cfg.Script,
		bssBuffer:   bssBuffer,
		appQueue:    appQueue,
		broadcaster: broadcaster,
		pollLimit:   cfg.PollLimit,
		pollBackoff: backoff,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
	}
}

// label returns this process's 1-indexed wire label, e.g. "p1".
func (p *Process) label() string {
	return "p" + strconv.Itoa(p.id+1)
}

// Run executes the process's script sequentially against trace, returning
// ErrLivelockDetected (wrapped with the process label) if a RecvB exceeds
// its poll limit.
func (p *Process) Run(trace *Trace) error {
	for _, op := range p.script {
		switch op.Kind {
		case types.OpSend:
			p.send(op.Payload, trace)
		case types.OpRecvB:
			if err := p.recvB(op.From, op.Payload, trace); err != nil {
				return fmt.Errorf("%s: %w", p.label(), err)
			}
		}
	}
	return nil
}

// send increments this process's own clock slot, emits the send trace
// event, then broadcasts the message to every peer's BSS buffer.
func (p *Process) send(payload string, trace *Trace) {
	p.clock.Increment(p.id)
	trace.Append(p.id, fmt.Sprintf("%s send %s %s", p.label(), payload, p.clock))
	if p.metrics != nil {
		p.metrics.ObserveSend(p.label())
	}

	msg := types.NewMessage(payload, p.id, p.clock)
	p.broadcaster.Broadcast(msg)
}

// recvB blocks until the expected message arrives in the local BSS
// buffer, logs its arrival with the receiver's unchanged clock, moves it
// to the application queue, then drains whatever is now deliverable.
func (p *Process) recvB(from int, payload string, trace *Trace) error {
	msg, err := p.bssBuffer.WaitForMatch(from, payload, p.pollLimit, p.pollBackoff)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ObserveLivelock(p.label())
		}
		return err
	}

	trace.Append(p.id, fmt.Sprintf("%s recv_B %s %s %s", p.label(), "p"+strconv.Itoa(from+1), payload, p.clock))
	if p.metrics != nil {
		p.metrics.ObserveRecvB(p.label())
		p.metrics.SetQueueDepth(p.label(), "bss", p.bssBuffer.Size())
	}

	p.appQueue.Insert(msg)
	p.drainApplicationQueue(trace)
	return nil
}

// drainApplicationQueue repeatedly releases the lex-smallest queued
// message to the application as long as the causal-delivery predicate
// holds for it. Draining stops at the first undeliverable message rather
// than skipping ahead, so a larger-clocked message queued behind it stays
// queued until a later drain, even if it is already deliverable.
func (p *Process) drainApplicationQueue(trace *Trace) {
	for {
		msg, ok := p.appQueue.PeekSmallest()
		if !ok {
			return
		}
		if !types.CausalDeliveryAllowed(p.clock, msg.SentAt, msg.Sender) {
			return
		}

		p.appQueue.PopSmallest()
		_ = p.clock.Merge(msg.SentAt)
		trace.Append(p.id, fmt.Sprintf("%s recv_A %s %s %s", p.label(), "p"+strconv.Itoa(msg.Sender+1), msg.Payload, p.clock))
		if p.metrics != nil {
			p.metrics.ObserveRecvA(p.label())
			p.metrics.SetQueueDepth(p.label(), "app", p.appQueue.Size())
		}
	}
}
