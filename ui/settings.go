package ui

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
)

type SettingsView struct {
	Container   *widget.Container
	ThemeToggle *widget.Button
	SaveButton  *widget.Button
	Lists       map[audioshim.Kind]*widget.List
}

// settingsLabel is how a device appears in the settings lists, with its
// server name and any flags the main page acts on.
func settingsLabel(d audioshim.Device) string {
	label := fmt.Sprintf("%s (%s)", DisplayLabel(d.Label), DisplayLabel(d.Name))
	if d.Hidden {
		label += " [hidden]"
	}
	if !d.Connected {
		label += " [not connected]"
	}
	return label
}

func kindTitle(kind audioshim.Kind) string {
	for _, s := range sections {
		if s.kind == kind {
			return s.title
		}
	}
	return kind.String()
}

func (u *UI) MakeSettingsView() *SettingsView {
	sv := &SettingsView{
		Lists: make(map[audioshim.Kind]*widget.List),
		Container: widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			)),
		),
	}

	sv.ThemeToggle = u.MakeToggleButton("Go-16", "Dark theme", func(args *widget.ButtonChangedEventArgs) {
		dark := args.State == widget.WidgetChecked
		if dark == u.Shim.UseDarkTheme() {
			return
		}
		u.Shim.SetDarkTheme(dark)
		u.Defer(u.Rebuild)
	}, widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}))
	if u.Shim.UseDarkTheme() {
		sv.ThemeToggle.SetState(widget.WidgetChecked)
	}
	sv.Container.AddChild(sv.ThemeToggle)

	if !u.Shim.Ready() {
		reason := u.MakeText("Go-16", u.theme.Text)
		reason.Label = u.Shim.NotReadyReason()
		sv.Container.AddChild(reason)
		return sv
	}

	for _, section := range sections {
		heading := u.MakeText("Go-Bold-18", u.theme.Heading,
			widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			})),
		)
		heading.Label = section.title
		sv.Container.AddChild(heading)

		kind := section.kind
		list := u.MakeList("Go-14", func(e any) string {
			return settingsLabel(e.(audioshim.Device))
		})
		list.GetWidget().LayoutData = widget.RowLayoutData{
			Stretch:   true,
			MaxHeight: 160,
		}
		for _, d := range u.Shim.Registry(kind) {
			list.AddEntry(d)
		}
		list.EntrySelectedEvent.AddHandler(func(e any) {
			args := e.(*widget.ListEntrySelectedEventArgs)
			u.ShowWindow(u.MakeDeviceWindow(args.Entry.(audioshim.Device)))
		})
		sv.Lists[kind] = list
		sv.Container.AddChild(list)
	}

	sv.SaveButton = u.MakeButton("Go-16", "Save", func(args *widget.ButtonClickedEventArgs) {
		u.SetStatus("Saving...")
		// ConfigSaved or ConfigSaveFailed reports the outcome.
		u.Run(func() { u.Shim.SaveConfig() })
	}, widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}))
	sv.Container.AddChild(sv.SaveButton)
	return sv
}

// MakeDeviceWindow edits one device's label and hidden flag. Changes stay in
// memory until Save.
func (u *UI) MakeDeviceWindow(d audioshim.Device) *Window {
	var window *Window
	contents := u.windowContents()

	name := u.MakeText("Go-14", u.theme.TextDisabled)
	name.Label = d.Name
	contents.AddChild(name)

	label := u.MakeText("Go-16", u.theme.Text)
	label.Label = DisplayLabel(d.Label)
	contents.AddChild(label)

	buttons := buttonRow()
	buttons.AddChild(u.MakeButton("Go-16", "Rename...", func(args *widget.ButtonClickedEventArgs) {
		window.Close()
		u.ShowWindow(u.MakeEntryWindow("Rename", "Go-Bold-16", d.Name, "Go-16", d.Label, func(text string, ok bool) {
			if !ok {
				return
			}
			u.Shim.SetLabel(d.Kind, d.Name, text)
			u.SetStatus("Unsaved changes")
			u.Defer(u.Rebuild)
		}))
	}))

	hidden := u.MakeToggleButton("Go-16", "Hide", func(args *widget.ButtonChangedEventArgs) {
		hide := args.State == widget.WidgetChecked
		if hide == d.Hidden {
			return
		}
		d.Hidden = hide
		u.Shim.SetHidden(d.Kind, d.Name, hide)
		u.SetStatus("Unsaved changes")
		u.Defer(u.Rebuild)
	})
	if d.Hidden {
		hidden.SetState(widget.WidgetChecked)
	}
	buttons.AddChild(hidden)

	buttons.AddChild(u.MakeButton("Go-16", "Close", func(args *widget.ButtonClickedEventArgs) {
		window.Close()
	}))
	contents.AddChild(buttons)

	window = u.MakeWindow(kindTitle(d.Kind), "Go-Bold-16", contents)
	return window
}
