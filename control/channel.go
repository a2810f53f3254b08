// Package control owns the connection to the audio server and the run-loop
// that every request is completed on. The loop never runs on its own: callers
// pump it until whatever they are waiting for has happened.
package control

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/errutil"
)

var (
	ErrConnectionFailed = errors.New("connection to audio server failed")
	ErrNotConnected     = errors.New("not connected to audio server")
	ErrReentrantPump    = errors.New("run-loop is already being pumped")
)

// State is the state of the server connection.
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateReady
	StateFailed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// IterateResult is the outcome of advancing the run-loop by one step.
type IterateResult int

const (
	IterateSuccess IterateResult = iota
	// IterateQuit means the loop was shut down or the connection went away.
	IterateQuit
	// IterateErr means the loop cannot make progress.
	IterateErr
)

func (r IterateResult) String() string {
	switch r {
	case IterateSuccess:
		return "success"
	case IterateQuit:
		return "quit"
	case IterateErr:
		return "error"
	default:
		return "unknown"
	}
}

// Conn is the part of *pulse.Client the channel talks through.
type Conn interface {
	RawRequest(req proto.RequestArgs, rpl proto.Reply) error
	Close()
}

// Dialer opens a connection to the audio server.
type Dialer func() (Conn, error)

// Channel owns one server connection and the run-loop its replies are
// delivered on. Requests are sent from background goroutines; their
// completions are queued and only run while somebody pumps the loop, so all
// callbacks execute on the pumping goroutine.
type Channel struct {
	dial Dialer

	events    chan func()
	done      chan struct{}
	closeOnce sync.Once
	pumping   atomic.Bool

	mu      sync.Mutex
	conn    Conn
	state   State
	pending int
	failure error
}

// NewChannel creates an unconnected channel that will open its connection
// with dial.
func NewChannel(dial Dialer) *Channel {
	return &Channel{
		dial:   dial,
		events: make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect opens the connection and pumps the loop until the connection is
// ready or has failed. A channel can only be connected once.
func (c *Channel) Connect() error {
	c.mu.Lock()
	if c.dial == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: no dialer configured", ErrConnectionFailed)
	}
	if c.state != StateUnconnected {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: channel is %s", ErrConnectionFailed, state)
	}
	c.state = StateConnecting
	c.pending++
	c.mu.Unlock()

	go func() {
		conn, err := c.dial()
		delivered := c.post(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if err != nil {
				c.state = StateFailed
				c.failure = err
				return
			}
			if c.state != StateConnecting {
				conn.Close()
				return
			}
			c.conn = conn
			c.state = StateReady
		})
		if !delivered && conn != nil {
			conn.Close()
		}
	}()

	res := c.PumpUntil(func() bool {
		return c.State() != StateConnecting
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateReady:
		return nil
	case StateFailed:
		return fmt.Errorf("%w: %w", ErrConnectionFailed, c.failure)
	case StateConnecting:
		c.state = StateFailed
		return fmt.Errorf("%w: run-loop stopped before the connection was ready (%s)", ErrConnectionFailed, res)
	default:
		return fmt.Errorf("%w: connection %s", ErrConnectionFailed, c.state)
	}
}

// Disconnect closes the connection if it is open and stops the loop. It is
// safe to call more than once and on a channel that never connected.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateReady
	c.conn = nil
	if c.state == StateReady || c.state == StateConnecting {
		c.state = StateTerminated
	}
	c.mu.Unlock()

	c.closeOnce.Do(func() { close(c.done) })
	if connected && conn != nil {
		conn.Close()
	}
}

// Request sends req and arranges for done to run on the pumping goroutine once
// the reply has been decoded into rpl. If the channel is not connected the
// operation fails immediately.
func (c *Channel) Request(req proto.RequestArgs, rpl proto.Reply, done func(error)) *Operation {
	op := &Operation{}

	c.mu.Lock()
	conn := c.conn
	if c.state != StateReady || conn == nil {
		c.mu.Unlock()
		if done != nil {
			done(ErrNotConnected)
		}
		op.finish(ErrNotConnected)
		return op
	}
	c.pending++
	c.mu.Unlock()

	go func() {
		err := conn.RawRequest(req, rpl)
		c.post(func() {
			if isConnectionLoss(err) {
				c.terminate(err)
			}
			if done != nil {
				done(err)
			}
			op.finish(err)
		})
	}()
	return op
}

// PumpUntil advances the loop until pred holds. It stops early, without
// panicking, when the loop quits or cannot make progress, and returns why.
func (c *Channel) PumpUntil(pred func() bool) IterateResult {
	if !c.pumping.CompareAndSwap(false, true) {
		errutil.LogError("control pump", ErrReentrantPump)
		return IterateErr
	}
	defer c.pumping.Store(false)

	for !pred() {
		if res := c.iterate(); res != IterateSuccess {
			log.Printf("run-loop stopped: %s", res)
			return res
		}
	}
	return IterateSuccess
}

// iterate runs at most one queued completion, blocking until one arrives.
func (c *Channel) iterate() IterateResult {
	select {
	case <-c.done:
		return IterateQuit
	default:
	}

	c.mu.Lock()
	state, pending := c.state, c.pending
	c.mu.Unlock()
	if state == StateTerminated {
		return IterateQuit
	}
	if pending == 0 {
		// Nothing in flight can ever satisfy the caller.
		return IterateErr
	}

	select {
	case fn := <-c.events:
		c.mu.Lock()
		c.pending--
		c.mu.Unlock()
		fn()
		return IterateSuccess
	case <-c.done:
		return IterateQuit
	}
}

// post queues fn for the pumping goroutine. It reports false if the loop has
// been shut down and fn will never run.
func (c *Channel) post(fn func()) bool {
	select {
	case c.events <- fn:
		return true
	case <-c.done:
		return false
	}
}

func (c *Channel) terminate(err error) {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = StateTerminated
	c.failure = err
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	errutil.LogError("audio server connection lost", err)
}

func isConnectionLoss(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
