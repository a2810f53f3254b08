package ui

import (
	"image/color"

	"github.com/tinne26/badcolor"
	"golang.org/x/image/colornames"
)

// Theme is the palette every widget is built from.
type Theme struct {
	Background   color.Color
	Panel        color.Color
	Text         color.Color
	TextDisabled color.Color
	TextHover    color.Color
	Button       color.Color
	ButtonHover  color.Color
	ButtonActive color.Color
	ButtonIdle   color.Color
	Accent       color.Color
	Heading      color.Color
}

// blend mixes a and b in Oklab space; t=0 is a, t=1 is b.
func blend(a, b color.Color, t float64) color.Color {
	return badcolor.ToOklab(a).Interpolate(badcolor.ToOklab(b), t).RGBA8()
}

func newTheme(bg, fg, button, accent color.Color) Theme {
	return Theme{
		Background:   bg,
		Panel:        blend(bg, fg, 0.06),
		Text:         fg,
		TextDisabled: blend(fg, bg, 0.55),
		TextHover:    blend(fg, accent, 0.5),
		Button:       button,
		ButtonHover:  blend(button, accent, 0.25),
		ButtonActive: blend(button, accent, 0.5),
		ButtonIdle:   blend(button, bg, 0.6),
		Accent:       accent,
		Heading:      blend(fg, accent, 0.35),
	}
}

var (
	DarkTheme  = newTheme(color.NRGBA{0x12, 0x23, 0x34, 0xff}, colornames.White, colornames.Dimgray, colornames.Darkcyan)
	LightTheme = newTheme(colornames.Whitesmoke, color.NRGBA{0x22, 0x22, 0x22, 0xff}, colornames.Lightsteelblue, colornames.Steelblue)
)

func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}
