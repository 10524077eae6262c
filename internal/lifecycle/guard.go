// Package lifecycle guards process start-up and shutdown: it turns
// termination signals into a stop flag and releases acquired resources
// exactly once, in reverse order of acquisition, on every exit path.
package lifecycle

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

// State is the process lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Guard owns the stop flag and the resources to release at shutdown.
// The poll loop reads the flag; only the signal watcher and RequestStop
// write it.
type Guard struct {
	state  atomic.Int32
	stop   atomic.Bool
	signal atomic.Value // os.Signal, first one received

	sigCh chan os.Signal

	closers []io.Closer
	once    sync.Once
	err     error
}

// New creates a Guard in the Uninitialized state.
func New() *Guard {
	return &Guard{}
}

// Watch raises the stop flag when any of sigs is delivered.
// The watcher does nothing else: no I/O, no GPIO access.
func (g *Guard) Watch(sigs ...os.Signal) {
	g.sigCh = make(chan os.Signal, 1)
	signal.Notify(g.sigCh, sigs...)
	go func(ch <-chan os.Signal) {
		for s := range ch {
			if g.signal.Load() == nil {
				g.signal.Store(s)
			}
			g.raise()
		}
	}(g.sigCh)
}

// Adopt registers a resource to be closed at shutdown. Resources are closed
// in reverse order of adoption.
func (g *Guard) Adopt(c io.Closer) {
	g.closers = append(g.closers, c)
}

// Start moves the guard to Running. It fails unless the guard is
// Uninitialized.
func (g *Guard) Start() error {
	if !g.state.CompareAndSwap(int32(Uninitialized), int32(Running)) {
		return fmt.Errorf("lifecycle: start from state %s", g.State())
	}
	return nil
}

// RequestStop raises the stop flag without a signal, e.g. on a fatal
// runtime error.
func (g *Guard) RequestStop() {
	g.raise()
}

// raise sets the stop flag and moves a running guard to ShuttingDown.
func (g *Guard) raise() {
	g.stop.Store(true)
	g.state.CompareAndSwap(int32(Running), int32(ShuttingDown))
}

// Stopping reports whether shutdown has been requested.
func (g *Guard) Stopping() bool {
	return g.stop.Load()
}

// Signal returns the first termination signal received, or nil.
func (g *Guard) Signal() os.Signal {
	s, _ := g.signal.Load().(os.Signal)
	return s
}

// State returns the current lifecycle state.
func (g *Guard) State() State {
	return State(g.state.Load())
}

// Shutdown stops signal delivery and closes every adopted resource, once.
// Later calls do nothing and return the error of the first.
func (g *Guard) Shutdown() error {
	g.once.Do(func() {
		g.stop.Store(true)
		g.state.Store(int32(ShuttingDown))

		if g.sigCh != nil {
			signal.Stop(g.sigCh)
			close(g.sigCh)
		}

		var errs []error
		for i := len(g.closers) - 1; i >= 0; i-- {
			if err := g.closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		g.closers = nil
		if len(errs) > 0 {
			g.err = fmt.Errorf("shutdown errors: %v", errs)
		}

		g.state.Store(int32(Terminated))
	})
	return g.err
}
