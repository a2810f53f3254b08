package audioshim

// Kind says whether a device records (source) or plays (sink).
type Kind int

const (
	Source Kind = iota
	Sink
)

// Kinds lists every device kind in display order.
var Kinds = []Kind{Source, Sink}

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Sink:
		return "sink"
	default:
		return "unknown"
	}
}

// Device is an audio source or sink as the user sees it. Name is the
// server's stable identifier; Label is the user's display text for it.
type Device struct {
	Name      string
	Label     string
	Kind      Kind
	Connected bool
	Hidden    bool
}

// DefaultPointers names the server's current default devices.
type DefaultPointers struct {
	Source string
	Sink   string
}

// Get returns the default device name for kind.
func (d DefaultPointers) Get(kind Kind) string {
	if kind == Sink {
		return d.Sink
	}
	return d.Source
}

// Set records name as the default device for kind.
func (d *DefaultPointers) Set(kind Kind, name string) {
	if kind == Sink {
		d.Sink = name
		return
	}
	d.Source = name
}

// Shim is an interface that abstracts device control for the UI layer.
// Every method that talks to the audio server blocks; the UI calls those
// from a goroutine and hands the result back to its own update loop.
type Shim interface {
	Registry(kind Kind) []Device
	Defaults() DefaultPointers
	Ready() bool
	NotReadyReason() string
	UseDarkTheme() bool

	SelectDefault(kind Kind, name string)
	SetLabel(kind Kind, name, label string)
	SetHidden(kind Kind, name string, hidden bool)
	SetDarkTheme(dark bool)
	SaveConfig() error
	RestartAsync()
}
