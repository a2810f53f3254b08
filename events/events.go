package events

import (
	"sync"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
)

// Event is a marker interface for all session events
type Event interface {
	isEvent()
}

// Base implementation for all events
type baseEvent struct{}

func (baseEvent) isEvent() {}

// SessionReady is fired when the device registry has been (re)built
type SessionReady struct {
	baseEvent
	Sources int
	Sinks   int
}

// SessionFailed is fired when the audio server could not be reached
type SessionFailed struct {
	baseEvent
	Reason string
}

// RestartStarted is fired when a restart begins; commands are disabled until
// SessionReady or SessionFailed follows
type RestartStarted struct {
	baseEvent
	Reason string
}

// DefaultChanged is fired after a default device was switched
type DefaultChanged struct {
	baseEvent
	Kind audioshim.Kind
	Name string
}

// ConfigSaved is fired after the configuration was written
type ConfigSaved struct {
	baseEvent
	Path string
}

// ConfigSaveFailed is fired when the configuration could not be written
type ConfigSaveFailed struct {
	baseEvent
	Error string
}

// Bus provides simple event publish/subscribe
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe creates a new event channel for receiving events
func (b *Bus) Subscribe(bufferSize int) chan Event {
	ch := make(chan Event, bufferSize)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Publish sends an event to all subscribers (non-blocking)
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Skip slow subscribers so a stalled UI never blocks the session
		}
	}
}
