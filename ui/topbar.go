package ui

import (
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

type TopBar struct {
	Container      *widget.Container
	SettingsButton *widget.Button
	RestartButton  *widget.Button
	Status         *widget.Text
}

func (u *UI) MakeTopBar() *TopBar {
	tb := &TopBar{}
	tb.Container = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
		)),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(u.theme.Panel)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, 24),
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				HorizontalPosition: widget.GridLayoutPositionStart,
				VerticalPosition:   widget.GridLayoutPositionStart,
			}),
		),
	)

	tb.SettingsButton = u.MakeButton("Go-16", "Settings", func(args *widget.ButtonClickedEventArgs) {
		if u.page == SettingsPage {
			u.showPage(DevicesPage)
		} else {
			u.showPage(SettingsPage)
		}
	})
	tb.RestartButton = u.MakeButton("Go-16", "Restart", func(args *widget.ButtonClickedEventArgs) {
		u.status = ""
		u.Shim.RestartAsync()
		u.Defer(u.Rebuild)
	})
	tb.Container.AddChild(tb.SettingsButton)
	tb.Container.AddChild(tb.RestartButton)
	tb.Container.AddChild(u.MakeButton("Go-16", "Exit", func(args *widget.ButtonClickedEventArgs) {
		u.exit = true
	}))

	tb.Status = u.MakeText("Go-14", u.theme.TextDisabled,
		widget.TextOpts.Position(widget.TextPositionStart, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	)
	tb.Container.AddChild(tb.Status)
	return tb
}

// Update refreshes the page-dependent labels.
func (tb *TopBar) Update(u *UI) {
	if u.page == SettingsPage {
		tb.SettingsButton.Text().Label = "Back"
	} else {
		tb.SettingsButton.Text().Label = "Settings"
	}
	tb.Status.Label = u.status
}
