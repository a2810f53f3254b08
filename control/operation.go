package control

// OpState is the state of an in-flight request.
type OpState int

const (
	OpRunning OpState = iota
	OpDone
	OpFailed
)

func (s OpState) String() string {
	switch s {
	case OpRunning:
		return "running"
	case OpDone:
		return "done"
	case OpFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation tracks one request. It is completed exactly once, on the
// goroutine that pumps the channel.
type Operation struct {
	state OpState
	err   error
}

// State returns the operation's state.
func (o *Operation) State() OpState {
	return o.state
}

// Err returns the error the operation failed with, if any.
func (o *Operation) Err() error {
	return o.err
}

func (o *Operation) finish(err error) {
	if o.state != OpRunning {
		return
	}
	o.err = err
	if err != nil {
		o.state = OpFailed
		return
	}
	o.state = OpDone
}
