package ui

import (
	"log"
	"sync"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/kc2g-flex-tools/audioselect/audioshim"
	"github.com/kc2g-flex-tools/audioselect/events"
)

type Page int

const (
	DevicesPage Page = iota
	SettingsPage
)

type widgets struct {
	Root     *widget.Container
	TopBar   *TopBar
	MainPage *widget.FlipBook
	Devices  *DevicesView
	Settings *SettingsView
}

type UI struct {
	mu       sync.RWMutex
	update   bool
	exit     bool
	page     Page
	cfg      *Config
	theme    Theme
	status   string
	Width    int
	Height   int
	eui      *ebitenui.UI
	Widgets  widgets
	Shim     audioshim.Shim
	eventBus *events.Bus
	deferred []func()
}

type Config struct {
	FPS        int  `dialsdesc:"Framerate" dialsflag:"fps"`
	Fullscreen bool `dialsdesc:"Start in fullscreen"`
	Width      int  `dialsdesc:"Initial window width"`
	Height     int  `dialsdesc:"Initial window height"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:    30,
		Width:  320,
		Height: 560,
	}
}

func NewUI(cfg *Config, shim audioshim.Shim, eventBus *events.Bus) *UI {
	u := &UI{
		page:     DevicesPage,
		cfg:      cfg,
		theme:    ThemeFor(shim.UseDarkTheme()),
		Shim:     shim,
		eventBus: eventBus,
		eui:      &ebitenui.UI{},
	}
	u.Rebuild()

	ebiten.SetTPS(cfg.FPS)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowSizeLimits(280, 320, -1, -1)
	ebiten.SetWindowTitle("AudioSelect")
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return u
}

// Rebuild recreates every widget from the shim's current state.
// NOTE: Must be called on the UI goroutine (directly or via u.Defer).
func (u *UI) Rebuild() {
	u.theme = ThemeFor(u.Shim.UseDarkTheme())

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(u.theme.Background)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true}),
		)),
	)
	u.Widgets.Root = root
	u.Widgets.TopBar = u.MakeTopBar()
	root.AddChild(u.Widgets.TopBar.Container)

	u.Widgets.MainPage = widget.NewFlipBook(widget.FlipBookOpts.Padding(widget.NewInsetsSimple(4)))
	root.AddChild(u.Widgets.MainPage)

	u.Widgets.Devices = u.MakeDevicesView()
	u.Widgets.Settings = u.MakeSettingsView()
	u.showPage(u.page)

	u.eui.Container = root
}

func (u *UI) showPage(page Page) {
	u.page = page
	switch page {
	case SettingsPage:
		u.Widgets.MainPage.SetPage(u.Widgets.Settings.Container)
	default:
		u.Widgets.MainPage.SetPage(u.Widgets.Devices.Container)
	}
	u.Widgets.TopBar.Update(u)
}

// SetStatus shows a transient message in the top bar.
// NOTE: Must be called on the UI goroutine.
func (u *UI) SetStatus(msg string) {
	u.status = msg
	u.Widgets.TopBar.Update(u)
}

// Run calls fn off the UI goroutine and rebuilds the widgets when it returns.
// Shim commands block on the audio server, so handlers go through here.
func (u *UI) Run(fn func()) {
	go func() {
		fn()
		u.Defer(u.Rebuild)
	}()
}

// HandleEvents applies session events to the UI until ch is closed.
func (u *UI) HandleEvents(ch chan events.Event) {
	for event := range ch {
		switch e := event.(type) {
		case events.SessionReady, events.SessionFailed, events.RestartStarted, events.DefaultChanged:
			u.Defer(u.Rebuild)
		case events.ConfigSaved:
			u.Defer(func() { u.SetStatus("Saved") })
		case events.ConfigSaveFailed:
			log.Println("UI: save failed:", e.Error)
			u.Defer(func() { u.SetStatus("Save failed") })
		}
	}
}

func (u *UI) Update() error {
	if u.exit || inpututil.IsKeyJustPressed(ebiten.KeyQ) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	u.runDeferred()
	u.eui.Update()
	u.update = true
	return nil
}

func (u *UI) runDeferred() {
	u.mu.Lock()
	deferred := u.deferred
	u.deferred = nil
	u.mu.Unlock()
	for _, cb := range deferred {
		cb()
	}
}

func (u *UI) Draw(screen *ebiten.Image) {
	if !u.update {
		return
	}
	u.update = false
	screen.Clear()

	u.eui.Draw(screen)
}

func (u *UI) Layout(width, height int) (int, int) {
	if u.Width != width || u.Height != height {
		u.Width = width
		u.Height = height
		log.Printf("layout %d x %d", width, height)
	}
	return width, height
}

func (u *UI) Defer(cb func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deferred = append(u.deferred, cb)
}
