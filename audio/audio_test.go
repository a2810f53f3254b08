package audio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/control"
	"github.com/kc2g-flex-tools/audioselect/control/controltest"
)

func newFacade(t *testing.T, srv *controltest.Server) *Facade {
	t.Helper()
	ch := control.NewChannel(srv.Dialer())
	if err := ch.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(ch.Disconnect)
	return NewFacade(ch)
}

func TestEnumerate(t *testing.T) {
	srv := &controltest.Server{
		Sources: []controltest.Device{
			{Name: "alsa_input.pci", Description: "Built-in Mic"},
			{Name: "alsa_input.usb", Description: "USB Mic"},
		},
		Sinks: []controltest.Device{
			{Name: "alsa_output.hdmi", Description: "HDMI"},
		},
	}
	f := newFacade(t, srv)

	tests := []struct {
		kind     audioshim.Kind
		expected []Entry
	}{
		{audioshim.Source, []Entry{
			{Name: "alsa_input.pci", Description: "Built-in Mic"},
			{Name: "alsa_input.usb", Description: "USB Mic"},
		}},
		{audioshim.Sink, []Entry{
			{Name: "alsa_output.hdmi", Description: "HDMI"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := f.Enumerate(tt.kind)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEnumerateEmptyServer(t *testing.T) {
	f := newFacade(t, &controltest.Server{})

	got := f.Enumerate(audioshim.Source)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %#v", got)
	}
}

func TestEnumerateFailureIsEmpty(t *testing.T) {
	srv := &controltest.Server{
		Sinks: []controltest.Device{{Name: "speakers", Description: "Speakers"}},
		FailOn: func(req proto.RequestArgs) error {
			if _, ok := req.(*proto.GetSinkInfoList); ok {
				return errors.New("access denied")
			}
			return nil
		},
	}
	f := newFacade(t, srv)

	if got := f.Enumerate(audioshim.Sink); len(got) != 0 {
		t.Errorf("Expected failed enumeration to be empty, got %v", got)
	}
}

func TestEnumerateDescriptionFallback(t *testing.T) {
	srv := &controltest.Server{
		Sources: []controltest.Device{{Name: "null.monitor"}},
	}
	f := newFacade(t, srv)

	got := f.Enumerate(audioshim.Source)
	if len(got) != 1 || got[0].Description != "null.monitor" {
		t.Errorf("Expected description to fall back to the name, got %v", got)
	}
}

func TestEnumerateNotConnected(t *testing.T) {
	f := NewFacade(control.NewChannel((&controltest.Server{}).Dialer()))

	if got := f.Enumerate(audioshim.Sink); len(got) != 0 {
		t.Errorf("Expected empty result without a connection, got %v", got)
	}
}

func TestGetDefaults(t *testing.T) {
	srv := &controltest.Server{DefaultSource: "mic", DefaultSink: "speakers"}
	f := newFacade(t, srv)

	source, sink := f.GetDefaults()
	if source != "mic" || sink != "speakers" {
		t.Errorf("Expected (mic, speakers), got (%s, %s)", source, sink)
	}
}

func TestGetDefaultsFailure(t *testing.T) {
	srv := &controltest.Server{
		DefaultSource: "mic",
		DefaultSink:   "speakers",
		FailOn:        func(proto.RequestArgs) error { return errors.New("busy") },
	}
	f := newFacade(t, srv)

	source, sink := f.GetDefaults()
	if source != "" || sink != "" {
		t.Errorf("Expected empty defaults, got (%s, %s)", source, sink)
	}
}

func TestSetDefault(t *testing.T) {
	srv := &controltest.Server{DefaultSource: "mic", DefaultSink: "speakers"}
	f := newFacade(t, srv)

	f.SetDefault(audioshim.Sink, "headphones")
	f.SetDefault(audioshim.Source, "usb-mic")

	srv.Lock()
	defer srv.Unlock()
	if srv.DefaultSink != "headphones" {
		t.Errorf("Expected default sink 'headphones', got %q", srv.DefaultSink)
	}
	if srv.DefaultSource != "usb-mic" {
		t.Errorf("Expected default source 'usb-mic', got %q", srv.DefaultSource)
	}
}

// SetDefault is fire-and-confirm: a rejected request looks exactly like an
// accepted one to the caller.
func TestSetDefaultFailureIsSilent(t *testing.T) {
	srv := &controltest.Server{
		FailOn: func(proto.RequestArgs) error { return errors.New("no such entity") },
	}
	f := newFacade(t, srv)

	f.SetDefault(audioshim.Sink, "missing")

	if n := len(srv.Requests()); n != 1 {
		t.Errorf("Expected exactly one request, got %d", n)
	}
}

func TestCallsAreSequential(t *testing.T) {
	srv := &controltest.Server{
		Sources: []controltest.Device{{Name: "mic", Description: "Mic"}},
		Sinks:   []controltest.Device{{Name: "speakers", Description: "Speakers"}},
	}
	f := newFacade(t, srv)

	f.GetDefaults()
	f.Enumerate(audioshim.Source)
	f.Enumerate(audioshim.Sink)

	var kinds []string
	for _, req := range srv.Requests() {
		kinds = append(kinds, reflect.TypeOf(req).Elem().Name())
	}
	expected := []string{"GetServerInfo", "GetSourceInfoList", "GetSinkInfoList"}
	if !reflect.DeepEqual(kinds, expected) {
		t.Errorf("Expected requests %v, got %v", expected, kinds)
	}
}
