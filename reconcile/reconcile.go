// Package reconcile merges the saved device configuration with the devices
// the server reports right now.
//
// The result lists saved devices first, in saved order, whether or not they
// are connected, followed by devices seen for the first time in the order the
// server listed them. Running the merge again on the same input gives the
// same result.
package reconcile

import (
	"github.com/kc2g-flex-tools/audioselect/audio"
	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/persistence"
)

// Registry is the merged device list for both kinds.
type Registry struct {
	Sources []audioshim.Device
	Sinks   []audioshim.Device
}

// Get returns the devices of kind.
func (r Registry) Get(kind audioshim.Kind) []audioshim.Device {
	if kind == audioshim.Sink {
		return r.Sinks
	}
	return r.Sources
}

// MergeAll merges both kinds of cfg with the live enumerations.
func MergeAll(cfg persistence.Config, liveSources, liveSinks []audio.Entry) Registry {
	return Registry{
		Sources: Merge(cfg.Sources, liveSources, audioshim.Source),
		Sinks:   Merge(cfg.Sinks, liveSinks, audioshim.Sink),
	}
}

// Merge merges saved records with one live enumeration of kind.
func Merge(records []persistence.DeviceRecord, live []audio.Entry, kind audioshim.Kind) []audioshim.Device {
	descriptions := make(map[string]string, len(live))
	order := make([]string, 0, len(live))
	for _, e := range live {
		if _, dup := descriptions[e.Name]; dup {
			continue
		}
		descriptions[e.Name] = e.Description
		order = append(order, e.Name)
	}

	devices := make([]audioshim.Device, 0, len(records)+len(order))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true

		_, connected := descriptions[rec.Name]
		delete(descriptions, rec.Name)
		devices = append(devices, audioshim.Device{
			Name:      rec.Name,
			Label:     rec.Label,
			Kind:      kind,
			Connected: connected,
			Hidden:    rec.Hidden,
		})
	}

	for _, name := range order {
		desc, ok := descriptions[name]
		if !ok {
			continue
		}
		devices = append(devices, audioshim.Device{
			Name:      name,
			Label:     desc,
			Kind:      kind,
			Connected: true,
			Hidden:    false,
		})
	}
	return devices
}

// Records converts devices back into what gets saved, keeping their order.
func Records(devices []audioshim.Device) []persistence.DeviceRecord {
	records := make([]persistence.DeviceRecord, 0, len(devices))
	for _, d := range devices {
		records = append(records, persistence.DeviceRecord{
			Name:   d.Name,
			Label:  d.Label,
			Hidden: d.Hidden,
		})
	}
	return records
}
