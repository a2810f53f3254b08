package events

import (
	"testing"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(1)
	b := bus.Subscribe(1)

	bus.Publish(SessionFailed{Reason: "refused"})

	for i, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			failed, ok := ev.(SessionFailed)
			if !ok || failed.Reason != "refused" {
				t.Errorf("Subscriber %d got %#v", i, ev)
			}
		default:
			t.Errorf("Subscriber %d got nothing", i)
		}
	}
}

func TestPublishSkipsFullSubscribers(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(1)

	bus.Publish(ConfigSaved{Path: "first"})
	bus.Publish(ConfigSaved{Path: "second"})

	if ev := (<-ch).(ConfigSaved); ev.Path != "first" {
		t.Errorf("Expected first event to be kept, got %q", ev.Path)
	}
	select {
	case ev := <-ch:
		t.Errorf("Expected second event to be dropped, got %#v", ev)
	default:
	}
}

func TestPublishOnNilBus(t *testing.T) {
	var bus *Bus
	bus.Publish(SessionReady{})
}
