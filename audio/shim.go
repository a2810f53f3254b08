package audio

import (
	"fmt"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/errutil"
)

// GetDefaults returns the names of the default source and sink. Both are
// empty if the server could not be asked.
func (f *Facade) GetDefaults() (source, sink string) {
	var rpl proto.GetServerInfoReply
	op := f.ch.Request(&proto.GetServerInfo{}, &rpl, func(err error) {
		if err != nil {
			return
		}
		source = rpl.DefaultSourceName
		sink = rpl.DefaultSinkName
	})
	f.wait(op, "get server info")
	return source, sink
}

// SetDefault asks the server to make name the default device of its kind.
// The call returns once the request has completed; whether the server
// accepted it is not reported.
func (f *Facade) SetDefault(kind audioshim.Kind, name string) {
	var req proto.RequestArgs
	switch kind {
	case audioshim.Source:
		req = &proto.SetDefaultSource{SourceName: name}
	case audioshim.Sink:
		req = &proto.SetDefaultSink{SinkName: name}
	default:
		errutil.LogDegraded("set default", fmt.Errorf("unknown device kind %d", kind))
		return
	}

	op := f.ch.Request(req, nil, nil)
	f.wait(op, "set default "+kind.String())
}
