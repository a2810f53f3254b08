package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vimeo/dials"
	"github.com/vimeo/dials/sources/env"
	"github.com/vimeo/dials/sources/flag"

	"github.com/kc2g-flex-tools/audioselect/control"
	"github.com/kc2g-flex-tools/audioselect/errutil"
	"github.com/kc2g-flex-tools/audioselect/events"
	"github.com/kc2g-flex-tools/audioselect/persistence"
	"github.com/kc2g-flex-tools/audioselect/restarter"
	"github.com/kc2g-flex-tools/audioselect/session"
	"github.com/kc2g-flex-tools/audioselect/ui"
)

type Config struct {
	Server         string        `dialsdesc:"PulseAudio server address (empty uses $PULSE_SERVER or the default socket)"`
	ConfigFile     string        `dialsdesc:"Saved device configuration (default under the XDG config directory)"`
	AppName        string        `dialsdesc:"Client name announced to the audio server"`
	RestartCommand []string      `dialsdesc:"Command that restarts the audio server"`
	RestartSettle  time.Duration `dialsdesc:"How long to wait after restarting before reconnecting"`
	List           bool          `dialsdesc:"Print the device list and exit"`
	UI             *ui.Config
}

var config *Config

func defaultConfig() *Config {
	return &Config{
		AppName:        "AudioSelect",
		RestartCommand: restarter.DefaultArgs,
		RestartSettle:  time.Second,
		UI:             ui.DefaultConfig(),
	}
}

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	config = defaultConfig()
	flagSrc, err := flag.NewCmdLineSet(flag.DefaultFlagNameConfig(), config)
	if err != nil {
		panic(err)
	}
	d, err := dials.Config(mainCtx, config, &env.Source{}, flagSrc)
	if err != nil {
		panic(err)
	}
	config = d.View()

	store, err := persistence.NewConfigStore(config.ConfigFile)
	if err != nil {
		errutil.FatalError("config file", err)
	}

	eventBus := events.NewBus()
	s := session.New(
		control.PulseDialer(config.AppName, config.Server),
		store,
		restarter.New(config.RestartCommand),
		session.WithEventBus(eventBus),
		session.WithRestartSettle(config.RestartSettle),
	)
	s.Initialize()
	defer s.Close()

	if config.List {
		err := printRegistry(os.Stdout, s)
		ready := s.Ready()
		s.Close()
		if err != nil {
			log.Fatal(err)
		}
		if !ready {
			os.Exit(1)
		}
		return
	}

	u := ui.NewUI(config.UI, s, eventBus)
	go u.HandleEvents(eventBus.Subscribe(100))

	if err := ebiten.RunGame(u); err != nil {
		log.Fatal(err)
	}
}
