// Package session holds the reconciled device list and runs the commands
// the UI issues against the audio server.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kc2g-flex-tools/audioselect/audio"
	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/control"
	"github.com/kc2g-flex-tools/audioselect/errutil"
	"github.com/kc2g-flex-tools/audioselect/events"
	"github.com/kc2g-flex-tools/audioselect/persistence"
	"github.com/kc2g-flex-tools/audioselect/reconcile"
)

var ErrPersistenceFailed = errors.New("could not save configuration")

// Phase is where the session is in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseReady
	PhaseFailed
	PhaseRestarting
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

const (
	reasonUninitialized = "Not connected to the audio server yet"
	reasonConnecting    = "Connecting to the audio server..."
	reasonRestarting    = "Restarting the audio server..."
)

// ConfigStore loads and saves the persisted configuration.
type ConfigStore interface {
	Load() (persistence.Config, error)
	Store(persistence.Config) error
}

// Restarter bounces the audio server process. It is best effort.
type Restarter interface {
	Restart()
}

type Option func(*Session)

// WithEventBus publishes lifecycle and command events on bus.
func WithEventBus(bus *events.Bus) Option {
	return func(s *Session) {
		s.eventBus = bus
	}
}

// WithRestartSettle waits d after the restart command before reconnecting.
func WithRestartSettle(d time.Duration) Option {
	return func(s *Session) {
		s.settle = d
	}
}

// Session is the state the UI renders and the commands it can run.
//
// The registry is rebuilt from nothing on every Initialize and Restart. Label
// and hidden edits live only in memory until SaveConfig.
type Session struct {
	// opMu serializes everything that talks to the audio server.
	opMu sync.Mutex

	mu           sync.RWMutex
	phase        Phase
	reason       string
	channel      *control.Channel
	facade       *audio.Facade
	registry     reconcile.Registry
	defaults     audioshim.DefaultPointers
	useDarkTheme bool

	dial      control.Dialer
	store     ConfigStore
	restarter Restarter
	eventBus  *events.Bus
	settle    time.Duration
}

var _ audioshim.Shim = (*Session)(nil)

func New(dial control.Dialer, store ConfigStore, restarter Restarter, opts ...Option) *Session {
	s := &Session{
		phase:        PhaseUninitialized,
		reason:       reasonUninitialized,
		useDarkTheme: persistence.DefaultConfig().UseDarkTheme,
		dial:         dial,
		store:        store,
		restarter:    restarter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the saved configuration, connects to the server and
// builds the registry. On connection failure the session is left in
// PhaseFailed with an empty registry and a reason for the UI to show.
func (s *Session) Initialize() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.initialize()
}

func (s *Session) initialize() {
	s.mu.Lock()
	s.phase = PhaseInitializing
	s.reason = reasonConnecting
	s.registry = reconcile.Registry{}
	s.defaults = audioshim.DefaultPointers{}
	s.mu.Unlock()

	cfg, err := s.store.Load()
	if err != nil {
		errutil.LogError("load config", err)
		cfg = persistence.DefaultConfig()
	}

	ch := control.NewChannel(s.dial)
	if err := ch.Connect(); err != nil {
		ch.Disconnect()
		reason := fmt.Sprintf("Could not connect to the audio server: %v", err)
		log.Println(reason)

		s.mu.Lock()
		s.phase = PhaseFailed
		s.reason = reason
		s.channel = nil
		s.facade = nil
		s.useDarkTheme = cfg.UseDarkTheme
		s.mu.Unlock()

		s.eventBus.Publish(events.SessionFailed{Reason: reason})
		return
	}

	facade := audio.NewFacade(ch)
	source, sink := facade.GetDefaults()
	liveSources := facade.Enumerate(audioshim.Source)
	liveSinks := facade.Enumerate(audioshim.Sink)
	registry := reconcile.MergeAll(cfg, liveSources, liveSinks)

	s.mu.Lock()
	s.phase = PhaseReady
	s.reason = ""
	s.channel = ch
	s.facade = facade
	s.registry = registry
	s.defaults = audioshim.DefaultPointers{Source: source, Sink: sink}
	s.useDarkTheme = cfg.UseDarkTheme
	s.mu.Unlock()

	log.Printf("session ready: %d sources, %d sinks (default source %q, default sink %q)",
		len(registry.Sources), len(registry.Sinks), source, sink)
	s.eventBus.Publish(events.SessionReady{
		Sources: len(registry.Sources),
		Sinks:   len(registry.Sinks),
	})
}

// SelectDefault makes name the default device of its kind. Nothing is sent
// if the session is not ready or name is already the default. The pointer
// is updated once the request completes, without asking the server again.
func (s *Session) SelectDefault(kind audioshim.Kind, name string) {
	if !s.Ready() {
		return
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.RLock()
	ready := s.phase == PhaseReady
	current := s.defaults.Get(kind)
	facade := s.facade
	s.mu.RUnlock()
	if !ready || facade == nil || name == current {
		return
	}

	facade.SetDefault(kind, name)

	s.mu.Lock()
	if s.phase != PhaseReady || s.facade != facade {
		// A restart began while the request was in flight.
		s.mu.Unlock()
		return
	}
	s.defaults.Set(kind, name)
	s.mu.Unlock()
	s.eventBus.Publish(events.DefaultChanged{Kind: kind, Name: name})
}

// SetLabel changes a device's display label in memory.
func (s *Session) SetLabel(kind audioshim.Kind, name, label string) {
	s.edit(kind, name, func(d *audioshim.Device) {
		d.Label = label
	})
}

// SetHidden changes whether a device is shown, in memory.
func (s *Session) SetHidden(kind audioshim.Kind, name string, hidden bool) {
	s.edit(kind, name, func(d *audioshim.Device) {
		d.Hidden = hidden
	})
}

func (s *Session) edit(kind audioshim.Kind, name string, apply func(*audioshim.Device)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseReady {
		return
	}
	devices := s.registry.Sources
	if kind == audioshim.Sink {
		devices = s.registry.Sinks
	}
	for i := range devices {
		if devices[i].Name == name {
			apply(&devices[i])
			return
		}
	}
}

// SetDarkTheme changes the theme preference in memory.
func (s *Session) SetDarkTheme(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useDarkTheme = dark
}

// SaveConfig writes every device's label and hidden flag, in registry order,
// plus the theme preference. It does nothing unless the session is ready.
// A failed write leaves the registry as it was.
func (s *Session) SaveConfig() error {
	s.mu.RLock()
	if s.phase != PhaseReady {
		s.mu.RUnlock()
		return nil
	}
	cfg := persistence.Config{
		UseDarkTheme: s.useDarkTheme,
		Sources:      reconcile.Records(s.registry.Sources),
		Sinks:        reconcile.Records(s.registry.Sinks),
	}
	s.mu.RUnlock()

	if err := s.store.Store(cfg); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
		errutil.LogError("save config", err)
		s.eventBus.Publish(events.ConfigSaveFailed{Error: err.Error()})
		return err
	}

	var path string
	if p, ok := s.store.(interface{ Path() string }); ok {
		path = p.Path()
	}
	log.Printf("saved configuration %s", path)
	s.eventBus.Publish(events.ConfigSaved{Path: path})
	return nil
}

// Restart drops the connection, asks the OS to restart the audio server and
// initializes again from scratch. Unsaved edits are lost.
func (s *Session) Restart() {
	if s.beginRestart() {
		s.finishRestart()
	}
}

// RestartAsync is Restart on a background goroutine. The session is in
// PhaseRestarting when it returns; completion is announced with
// events.SessionReady or events.SessionFailed.
func (s *Session) RestartAsync() {
	if s.beginRestart() {
		go s.finishRestart()
	}
}

func (s *Session) beginRestart() bool {
	s.mu.Lock()
	if s.phase == PhaseRestarting {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseRestarting
	s.reason = reasonRestarting
	s.registry = reconcile.Registry{}
	s.defaults = audioshim.DefaultPointers{}
	s.mu.Unlock()

	s.eventBus.Publish(events.RestartStarted{Reason: reasonRestarting})
	return true
}

func (s *Session) finishRestart() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	ch := s.channel
	s.channel = nil
	s.facade = nil
	s.mu.Unlock()
	if ch != nil {
		ch.Disconnect()
	}

	if s.restarter != nil {
		s.restarter.Restart()
	}
	if s.settle > 0 {
		time.Sleep(s.settle)
	}
	s.initialize()
}

func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Session) Ready() bool {
	return s.Phase() == PhaseReady
}

// NotReadyReason explains why commands are disabled, or is empty when ready.
func (s *Session) NotReadyReason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Registry returns a copy of the devices of one kind, in display order.
func (s *Session) Registry(kind audioshim.Kind) []audioshim.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audioshim.Device{}, s.registry.Get(kind)...)
}

func (s *Session) Defaults() audioshim.DefaultPointers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

func (s *Session) UseDarkTheme() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.useDarkTheme
}

// Close drops the server connection.
func (s *Session) Close() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	ch := s.channel
	s.channel = nil
	s.facade = nil
	s.mu.Unlock()
	if ch != nil {
		ch.Disconnect()
	}
}
