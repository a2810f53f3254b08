package audio

import (
	"fmt"
	"strings"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/control"
	"github.com/kc2g-flex-tools/audioselect/errutil"
)

// Entry is one device from a live enumeration.
type Entry struct {
	Name        string
	Description string
}

// Facade turns the channel's asynchronous requests into blocking calls.
// Every method returns only once its request has completed or failed.
// Failures are logged and produce empty results; none of them are returned
// to the caller.
//
// A Facade must not be used from two goroutines at once.
type Facade struct {
	ch *control.Channel
}

func NewFacade(ch *control.Channel) *Facade {
	return &Facade{ch: ch}
}

// Enumerate lists the sources or sinks the server currently has, in the
// server's order.
func (f *Facade) Enumerate(kind audioshim.Kind) []Entry {
	entries := []Entry{}
	var op *control.Operation

	switch kind {
	case audioshim.Source:
		var rpl proto.GetSourceInfoListReply
		op = f.ch.Request(&proto.GetSourceInfoList{}, &rpl, func(err error) {
			if err != nil {
				return
			}
			for _, src := range rpl {
				if src == nil || src.SourceName == "" {
					continue
				}
				entries = append(entries, Entry{
					Name:        src.SourceName,
					Description: describe(src.SourceName, src.Device, src.Properties),
				})
			}
		})
	case audioshim.Sink:
		var rpl proto.GetSinkInfoListReply
		op = f.ch.Request(&proto.GetSinkInfoList{}, &rpl, func(err error) {
			if err != nil {
				return
			}
			for _, sink := range rpl {
				if sink == nil || sink.SinkName == "" {
					continue
				}
				entries = append(entries, Entry{
					Name:        sink.SinkName,
					Description: describe(sink.SinkName, sink.Device, sink.Properties),
				})
			}
		})
	default:
		errutil.LogDegraded("enumerate", fmt.Errorf("unknown device kind %d", kind))
		return entries
	}

	f.wait(op, "list "+kind.String()+"s")
	return entries
}

// describe picks the human-readable name the server gave a device.
func describe(name, device string, props proto.PropList) string {
	if entry, ok := props["device.description"]; ok {
		if desc := strings.TrimRight(entry.String(), "\x00"); desc != "" {
			return desc
		}
	}
	if device != "" {
		return device
	}
	return name
}

// wait pumps the channel until op has left the running state.
func (f *Facade) wait(op *control.Operation, what string) {
	res := f.ch.PumpUntil(func() bool {
		return op.State() != control.OpRunning
	})
	if res != control.IterateSuccess {
		errutil.LogDegraded(what, fmt.Errorf("run-loop stopped before completion: %s", res))
		return
	}
	if op.State() == control.OpFailed {
		errutil.LogDegraded(what, op.Err())
	}
}
