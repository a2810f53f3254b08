// Package controltest provides an in-memory audio server for tests.
package controltest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jfreymuth/pulse/proto"

	"github.com/kc2g-flex-tools/audioselect/control"
)

// Device is a source or sink as the fake server reports it.
type Device struct {
	Name        string
	Description string
}

// Server answers the requests the facade sends. Field changes made while
// requests are in flight must hold Lock.
type Server struct {
	sync.Mutex

	Sources       []Device
	Sinks         []Device
	DefaultSource string
	DefaultSink   string

	// FailOn, if set, is consulted before each request; a non-nil error is
	// returned instead of a reply.
	FailOn func(req proto.RequestArgs) error

	requests []proto.RequestArgs
	dials    int
	closes   int
}

// Dialer returns a dialer that connects to s.
func (s *Server) Dialer() control.Dialer {
	return func() (control.Conn, error) {
		s.Lock()
		defer s.Unlock()
		s.dials++
		return &conn{server: s}, nil
	}
}

// FailingDialer returns a dialer whose open always fails with err.
func FailingDialer(err error) control.Dialer {
	return func() (control.Conn, error) {
		return nil, err
	}
}

// Requests returns every request received so far, in order.
func (s *Server) Requests() []proto.RequestArgs {
	s.Lock()
	defer s.Unlock()
	return append([]proto.RequestArgs(nil), s.requests...)
}

// Dials returns how many connections were opened.
func (s *Server) Dials() int {
	s.Lock()
	defer s.Unlock()
	return s.dials
}

// Closes returns how many connections were closed.
func (s *Server) Closes() int {
	s.Lock()
	defer s.Unlock()
	return s.closes
}

type conn struct {
	server *Server
	closed bool
}

var errClosed = errors.New("controltest: connection closed")

func (c *conn) RawRequest(req proto.RequestArgs, rpl proto.Reply) error {
	s := c.server
	s.Lock()
	defer s.Unlock()
	if c.closed {
		return errClosed
	}
	s.requests = append(s.requests, req)
	if s.FailOn != nil {
		if err := s.FailOn(req); err != nil {
			return err
		}
	}

	switch r := req.(type) {
	case *proto.GetSourceInfoList:
		out := rpl.(*proto.GetSourceInfoListReply)
		for i, d := range s.Sources {
			*out = append(*out, &proto.GetSourceInfoReply{
				SourceIndex: uint32(i),
				SourceName:  d.Name,
				Properties:  description(d.Description),
			})
		}
	case *proto.GetSinkInfoList:
		out := rpl.(*proto.GetSinkInfoListReply)
		for i, d := range s.Sinks {
			*out = append(*out, &proto.GetSinkInfoReply{
				SinkIndex:  uint32(i),
				SinkName:   d.Name,
				Properties: description(d.Description),
			})
		}
	case *proto.GetServerInfo:
		out := rpl.(*proto.GetServerInfoReply)
		out.PackageName = "controltest"
		out.DefaultSourceName = s.DefaultSource
		out.DefaultSinkName = s.DefaultSink
	case *proto.SetDefaultSource:
		s.DefaultSource = r.SourceName
	case *proto.SetDefaultSink:
		s.DefaultSink = r.SinkName
	default:
		return fmt.Errorf("controltest: unsupported request %T", req)
	}
	return nil
}

func (c *conn) Close() {
	s := c.server
	s.Lock()
	defer s.Unlock()
	if !c.closed {
		c.closed = true
		s.closes++
	}
}

func description(desc string) proto.PropList {
	if desc == "" {
		return proto.PropList{}
	}
	return proto.PropList{
		"device.description": proto.PropListEntry(append([]byte(desc), 0)),
	}
}
