package ui

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
)

const (
	maxLabelLen  = 35
	labelHeadLen = 20
	labelTailLen = 15
)

// DisplayLabel shortens long labels to their first 20 and last 15
// characters so a device button keeps a fixed width.
func DisplayLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxLabelLen {
		return label
	}
	return string(r[:labelHeadLen]) + "..." + string(r[len(r)-labelTailLen:])
}

// visibleDevices returns the devices that get a button on the main page.
func visibleDevices(devices []audioshim.Device) []audioshim.Device {
	var out []audioshim.Device
	for _, d := range devices {
		if d.Connected && !d.Hidden {
			out = append(out, d)
		}
	}
	return out
}

var sections = []struct {
	title string
	kind  audioshim.Kind
}{
	{"Input", audioshim.Source},
	{"Output", audioshim.Sink},
}

type DevicesView struct {
	Container *widget.Container
}

func (u *UI) MakeDevicesView() *DevicesView {
	v := &DevicesView{
		Container: widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			)),
		),
	}

	if !u.Shim.Ready() {
		reason := u.MakeText("Go-16", u.theme.Text,
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			})),
		)
		reason.Label = u.Shim.NotReadyReason()
		v.Container.AddChild(reason)
		return v
	}

	defaults := u.Shim.Defaults()
	for _, section := range sections {
		heading := u.MakeText("Go-Bold-18", u.theme.Heading,
			widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			})),
		)
		heading.Label = section.title
		v.Container.AddChild(heading)

		current := defaults.Get(section.kind)
		for _, dev := range visibleDevices(u.Shim.Registry(section.kind)) {
			kind, name := section.kind, dev.Name
			b := u.MakeButton("Go-16", DisplayLabel(dev.Label), func(args *widget.ButtonClickedEventArgs) {
				u.status = ""
				u.Run(func() {
					u.Shim.SelectDefault(kind, name)
				})
			}, widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			}))
			b.GetWidget().Disabled = name == current
			v.Container.AddChild(b)
		}
	}
	return v
}
