package ui

import (
	"image"

	ebimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

type Window struct {
	widget *widget.Window
}

func (w *Window) Close() {
	w.widget.Close()
}

func (u *UI) MakeWindow(title, titleFont string, content *widget.Container, opts ...widget.WindowOpt) *Window {
	titleBar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(ebimage.NewNineSliceColor(u.theme.Accent)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{
				Left:  4,
				Right: 4,
			}),
		)),
	)
	titleBar.AddChild(widget.NewText(
		widget.TextOpts.Text(title, u.Font(titleFont), u.theme.Text),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		}))))
	contentWrapper := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(NewNineSliceBorder(u.theme.Panel, u.theme.Accent, 2)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(8+2)),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			StretchHorizontal: true,
			StretchVertical:   true,
		})),
	)
	contentWrapper.AddChild(content)

	tbWidth, tbHeight := titleBar.PreferredSize()
	wOpts := append(
		[]widget.WindowOpt{
			widget.WindowOpts.TitleBar(titleBar, tbHeight),
			widget.WindowOpts.Contents(contentWrapper),
			widget.WindowOpts.Modal(),
			widget.WindowOpts.MinSize(tbWidth, 0),
		},
		opts...,
	)
	return &Window{
		widget: widget.NewWindow(wOpts...),
	}
}

func (u *UI) windowContents() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			StretchVertical:   true,
			StretchHorizontal: true,
		})),
	)
}

func buttonRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
}

// MakeEntryWindow asks for a line of text, starting from initial. cb gets
// ok=false on cancel.
func (u *UI) MakeEntryWindow(title, titleFont, prompt, mainFont, initial string, cb func(string, bool)) *Window {
	var window *Window
	mainFace := u.Font(mainFont)

	contents := u.windowContents()
	if prompt != "" {
		contents.AddChild(widget.NewText(
			widget.TextOpts.Text(prompt, mainFace, u.theme.Text),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}))))
	}
	input := widget.NewTextInput(
		widget.TextInputOpts.Face(mainFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          u.theme.Text,
			Disabled:      u.theme.TextDisabled,
			Caret:         u.theme.Text,
			DisabledCaret: u.theme.TextDisabled,
		}),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     ebimage.NewNineSliceColor(u.theme.Background),
			Disabled: ebimage.NewNineSliceColor(u.theme.Background),
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			cb(args.InputText, true)
			window.Close()
		}),
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch:  true,
				MaxWidth: 600,
			}),
		),
	)
	input.SetText(initial)
	contents.AddChild(input)

	buttons := buttonRow()
	buttons.AddChild(
		u.MakeButton(mainFont, "OK", func(_ *widget.ButtonClickedEventArgs) {
			cb(input.GetText(), true)
			window.Close()
		}, widget.WidgetOpts.LayoutData(
			widget.RowLayoutData{Stretch: true},
		)),
		u.MakeButton(mainFont, "Cancel", func(_ *widget.ButtonClickedEventArgs) {
			cb("", false)
			window.Close()
		}),
	)
	contents.AddChild(buttons)
	window = u.MakeWindow(title, titleFont, contents)
	return window
}

func (u *UI) ShowWindow(window *Window) {
	win := window.widget
	win.Contents.Validate()
	win.TitleBar.Validate()
	contentWidth, contentHeight := win.Contents.PreferredSize()
	tbWidth, tbHeight := win.TitleBar.PreferredSize()

	x := max(contentWidth, tbWidth)
	y := contentHeight + tbHeight

	if minSize := win.MinSize; minSize != nil {
		x, y = max(x, minSize.X), max(y, minSize.Y)
	}
	if maxSize := win.MaxSize; maxSize != nil {
		x, y = min(x, maxSize.X), min(y, maxSize.Y)
	}
	winX, winY := ebiten.WindowSize()
	x = min(x, winX)
	r := image.Rect(0, 0, x, y).Add(image.Point{max((winX-x)/2, 0), max((winY-y)/2, 0)})
	win.SetLocation(r)
	u.eui.AddWindow(win)
	u.Defer(func() {
		u.eui.ChangeFocus(widget.FOCUS_NEXT)
	})
}
