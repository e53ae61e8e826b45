package core

import "sync"

// Invoker spawns and joins the goroutines backing each simulated
// process's execution context. Threading it as an interface (rather than
// calling `go` directly in the simulator) lets tests install a
// goleak-friendly double without touching the driver.
type Invoker interface {
	// Spawn runs f in its own goroutine.
	Spawn(f func())
	// Wait blocks until every goroutine spawned through this Invoker has
	// returned.
	Wait()
}

// WaitGroupInvoker is the default Invoker, backed by a sync.WaitGroup.
type WaitGroupInvoker struct {
	group sync.WaitGroup
}

// NewWaitGroupInvoker returns a ready-to-use WaitGroupInvoker.
func NewWaitGroupInvoker() *WaitGroupInvoker {
	return &WaitGroupInvoker{}
}

// Spawn implements Invoker.
func (w *WaitGroupInvoker) Spawn(f func()) {
	w.group.Add(1)
	go func() {
		defer w.group.Done()
		f()
	}()
}

// Wait implements Invoker.
func (w *WaitGroupInvoker) Wait() {
	w.group.Wait()
}
