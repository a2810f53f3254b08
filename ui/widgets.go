package ui

import (
	"image/color"

	ebimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

func (u *UI) buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:         ebimage.NewNineSliceColor(u.theme.Button),
		Hover:        ebimage.NewNineSliceColor(u.theme.ButtonHover),
		Pressed:      ebimage.NewNineSliceColor(u.theme.ButtonActive),
		PressedHover: ebimage.NewNineSliceColor(u.theme.ButtonActive),
		Disabled:     ebimage.NewNineSliceColor(u.theme.ButtonIdle),
	}
}

func (u *UI) buttonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     u.theme.Text,
		Disabled: u.theme.TextDisabled,
		Hover:    u.theme.TextHover,
		Pressed:  u.theme.Text,
	}
}

func (u *UI) MakeButton(fontName string, text string, handler func(*widget.ButtonClickedEventArgs), wopts ...widget.WidgetOpt) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Text(text, u.Font(fontName), u.buttonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(6)),
		widget.ButtonOpts.Image(u.buttonImage()),
		widget.ButtonOpts.ClickedHandler(handler),
		widget.ButtonOpts.WidgetOpts(wopts...),
	)
}

func (u *UI) MakeToggleButton(fontName string, text string, handler func(*widget.ButtonChangedEventArgs), wopts ...widget.WidgetOpt) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Text(text, u.Font(fontName), u.buttonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(6)),
		widget.ButtonOpts.Image(u.buttonImage()),
		widget.ButtonOpts.ToggleMode(),
		widget.ButtonOpts.StateChangedHandler(handler),
		widget.ButtonOpts.WidgetOpts(wopts...),
	)
}

func (u *UI) MakeList(fontName string, labeler func(e any) string) *widget.List {
	return widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchVertical:   true,
				StretchHorizontal: true,
				Padding:           widget.NewInsetsSimple(10),
			}),
		)),
		widget.ListOpts.ScrollContainerOpts(
			widget.ScrollContainerOpts.Image(&widget.ScrollContainerImage{
				Idle:     ebimage.NewNineSliceColor(u.theme.Panel),
				Disabled: ebimage.NewNineSliceColor(u.theme.Panel),
				Mask:     ebimage.NewNineSliceColor(u.theme.Panel),
			}),
		),
		widget.ListOpts.SliderOpts(
			widget.SliderOpts.Images(&widget.SliderTrackImage{
				Idle:  ebimage.NewNineSliceColor(u.theme.Panel),
				Hover: ebimage.NewNineSliceColor(u.theme.Panel),
			}, u.sliderImage()),
			widget.SliderOpts.MinHandleSize(5),
			widget.SliderOpts.TrackPadding(widget.NewInsetsSimple(2))),
		widget.ListOpts.HideHorizontalSlider(),
		widget.ListOpts.EntryFontFace(u.Font(fontName)),
		widget.ListOpts.EntryColor(&widget.ListEntryColor{
			Selected:           u.theme.Text,
			SelectedBackground: u.theme.Accent,
			Unselected:         u.theme.Text,
			DisabledSelected:   u.theme.TextDisabled,
			DisabledUnselected: u.theme.TextDisabled,
			FocusedBackground:  u.theme.Accent,
		}),
		widget.ListOpts.EntryLabelFunc(labeler),
		widget.ListOpts.EntryTextPadding(widget.NewInsetsSimple(5)),
		widget.ListOpts.EntryTextPosition(widget.TextPositionStart, widget.TextPositionCenter),
	)
}

func (u *UI) MakeText(fontName string, fgColor color.Color, opts ...widget.TextOpt) *widget.Text {
	opts = append(
		[]widget.TextOpt{
			widget.TextOpts.Text("", u.Font(fontName), fgColor),
		},
		opts...,
	)
	return widget.NewText(opts...)
}

func (u *UI) sliderImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    ebimage.NewNineSliceColor(u.theme.Button),
		Hover:   ebimage.NewNineSliceColor(u.theme.ButtonHover),
		Pressed: ebimage.NewNineSliceColor(u.theme.ButtonActive),
	}
}

func NewNineSliceBorder(innerColor, borderColor color.Color, borderWidthHeight int) *ebimage.NineSlice {
	i := ebiten.NewImage(2*borderWidthHeight+1, 2*borderWidthHeight+1)
	i.Fill(borderColor)
	i.Set(borderWidthHeight, borderWidthHeight, innerColor)
	return ebimage.NewNineSliceSimple(i, borderWidthHeight, 1)
}
