package control_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/control"
	"github.com/kc2g-flex-tools/audioselect/control/controltest"
)

func connected(t *testing.T, srv *controltest.Server) *control.Channel {
	t.Helper()
	ch := control.NewChannel(srv.Dialer())
	if err := ch.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(ch.Disconnect)
	return ch
}

func TestConnect(t *testing.T) {
	srv := &controltest.Server{}
	ch := connected(t, srv)

	if ch.State() != control.StateReady {
		t.Errorf("Expected state ready, got %s", ch.State())
	}
	if srv.Dials() != 1 {
		t.Errorf("Expected 1 dial, got %d", srv.Dials())
	}
}

func TestConnectFailures(t *testing.T) {
	tests := []struct {
		name string
		dial control.Dialer
	}{
		{name: "dial error", dial: controltest.FailingDialer(errors.New("connection refused"))},
		{name: "no dialer", dial: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := control.NewChannel(tt.dial)
			err := ch.Connect()
			if !errors.Is(err, control.ErrConnectionFailed) {
				t.Fatalf("Expected ErrConnectionFailed, got %v", err)
			}
			if ch.State() == control.StateReady {
				t.Error("Channel should not be ready")
			}
			ch.Disconnect()
		})
	}
}

func TestConnectDisconnectedWhileDialing(t *testing.T) {
	srv := &controltest.Server{}
	dialing := make(chan struct{})
	release := make(chan struct{})
	ch := control.NewChannel(func() (control.Conn, error) {
		close(dialing)
		<-release
		return srv.Dialer()()
	})

	go func() {
		<-dialing
		ch.Disconnect()
		close(release)
	}()

	err := ch.Connect()
	if !errors.Is(err, control.ErrConnectionFailed) {
		t.Fatalf("Expected ErrConnectionFailed, got %v", err)
	}
	if ch.State() != control.StateTerminated {
		t.Errorf("Expected state terminated, got %s", ch.State())
	}
}

func TestConnectTwice(t *testing.T) {
	ch := connected(t, &controltest.Server{})
	if err := ch.Connect(); !errors.Is(err, control.ErrConnectionFailed) {
		t.Errorf("Expected second Connect to fail, got %v", err)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	srv := &controltest.Server{}
	ch := control.NewChannel(srv.Dialer())
	if err := ch.Connect(); err != nil {
		t.Fatal(err)
	}

	ch.Disconnect()
	ch.Disconnect()

	if srv.Closes() != 1 {
		t.Errorf("Expected connection closed once, got %d", srv.Closes())
	}
	if ch.State() != control.StateTerminated {
		t.Errorf("Expected state terminated, got %s", ch.State())
	}
}

func TestDisconnectFailedChannel(t *testing.T) {
	ch := control.NewChannel(controltest.FailingDialer(errors.New("boom")))
	_ = ch.Connect()

	ch.Disconnect()
	ch.Disconnect()

	if ch.State() != control.StateFailed {
		t.Errorf("Expected state failed, got %s", ch.State())
	}
}

func TestRequestCompletesOnPump(t *testing.T) {
	srv := &controltest.Server{DefaultSink: "speakers"}
	ch := connected(t, srv)

	var rpl proto.GetServerInfoReply
	var got string
	calls := 0
	op := ch.Request(&proto.GetServerInfo{}, &rpl, func(err error) {
		calls++
		if err == nil {
			got = rpl.DefaultSinkName
		}
	})

	res := ch.PumpUntil(func() bool { return op.State() != control.OpRunning })
	if res != control.IterateSuccess {
		t.Fatalf("Expected pump success, got %s", res)
	}
	if op.State() != control.OpDone {
		t.Errorf("Expected operation done, got %s", op.State())
	}
	if calls != 1 {
		t.Errorf("Expected callback to run once, ran %d times", calls)
	}
	if got != "speakers" {
		t.Errorf("Expected default sink 'speakers', got %q", got)
	}
}

func TestRequestWhenNotConnected(t *testing.T) {
	ch := control.NewChannel((&controltest.Server{}).Dialer())

	var cbErr error
	op := ch.Request(&proto.GetServerInfo{}, &proto.GetServerInfoReply{}, func(err error) {
		cbErr = err
	})

	if op.State() != control.OpFailed {
		t.Errorf("Expected operation failed, got %s", op.State())
	}
	if !errors.Is(op.Err(), control.ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", op.Err())
	}
	if !errors.Is(cbErr, control.ErrNotConnected) {
		t.Errorf("Expected callback with ErrNotConnected, got %v", cbErr)
	}
}

func TestRequestProtocolError(t *testing.T) {
	srv := &controltest.Server{
		FailOn: func(proto.RequestArgs) error { return errors.New("no such entity") },
	}
	ch := connected(t, srv)

	op := ch.Request(&proto.GetServerInfo{}, &proto.GetServerInfoReply{}, nil)
	ch.PumpUntil(func() bool { return op.State() != control.OpRunning })

	if op.State() != control.OpFailed {
		t.Errorf("Expected operation failed, got %s", op.State())
	}
	if ch.State() != control.StateReady {
		t.Errorf("A protocol error should leave the channel ready, got %s", ch.State())
	}
}

func TestConnectionLossTerminates(t *testing.T) {
	srv := &controltest.Server{
		FailOn: func(proto.RequestArgs) error { return io.EOF },
	}
	ch := connected(t, srv)

	op := ch.Request(&proto.GetServerInfo{}, &proto.GetServerInfoReply{}, nil)
	ch.PumpUntil(func() bool { return op.State() != control.OpRunning })

	if ch.State() != control.StateTerminated {
		t.Fatalf("Expected state terminated, got %s", ch.State())
	}
	if res := ch.PumpUntil(func() bool { return false }); res != control.IterateQuit {
		t.Errorf("Expected pump to quit after connection loss, got %s", res)
	}
	if srv.Closes() != 1 {
		t.Errorf("Expected lost connection to be closed, got %d closes", srv.Closes())
	}
}

func TestPumpWithNothingPending(t *testing.T) {
	ch := connected(t, &controltest.Server{})

	if res := ch.PumpUntil(func() bool { return false }); res != control.IterateErr {
		t.Errorf("Expected IterateErr, got %s", res)
	}
	if res := ch.PumpUntil(func() bool { return true }); res != control.IterateSuccess {
		t.Errorf("Expected satisfied predicate to return success, got %s", res)
	}
}

func TestPumpAfterDisconnect(t *testing.T) {
	srv := &controltest.Server{}
	ch := control.NewChannel(srv.Dialer())
	if err := ch.Connect(); err != nil {
		t.Fatal(err)
	}
	ch.Disconnect()

	if res := ch.PumpUntil(func() bool { return false }); res != control.IterateQuit {
		t.Errorf("Expected IterateQuit, got %s", res)
	}
}

func TestReentrantPumpIsRefused(t *testing.T) {
	ch := connected(t, &controltest.Server{})

	var inner control.IterateResult
	op := ch.Request(&proto.GetServerInfo{}, &proto.GetServerInfoReply{}, func(error) {
		inner = ch.PumpUntil(func() bool { return true })
	})
	ch.PumpUntil(func() bool { return op.State() != control.OpRunning })

	if inner != control.IterateErr {
		t.Errorf("Expected nested pump to be refused, got %s", inner)
	}
}
