package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
)

type registryView interface {
	Registry(kind audioshim.Kind) []audioshim.Device
	Defaults() audioshim.DefaultPointers
	Ready() bool
	NotReadyReason() string
}

// printRegistry writes one line per device in display order, marking the
// current defaults with '*'.
func printRegistry(w io.Writer, s registryView) error {
	if !s.Ready() {
		_, err := fmt.Fprintln(w, s.NotReadyReason())
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defaults := s.Defaults()
	for _, kind := range audioshim.Kinds {
		for _, d := range s.Registry(kind) {
			mark := " "
			if d.Name == defaults.Get(kind) {
				mark = "*"
			}
			var flags string
			switch {
			case !d.Connected && d.Hidden:
				flags = "hidden,disconnected"
			case !d.Connected:
				flags = "disconnected"
			case d.Hidden:
				flags = "hidden"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, kind, d.Name, d.Label, flags)
		}
	}
	return tw.Flush()
}
