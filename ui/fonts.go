package ui

import (
	"bytes"
	"log"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kc2g-flex-tools/audioselect/errutil"
)

var fontFiles = map[string][]byte{
	"Go":      goregular.TTF,
	"Go-Bold": gobold.TTF,
}

var sources sync.Map // map[string]*text.GoTextFaceSource

func loadFontSource(name string) *text.GoTextFaceSource {
	if cached, ok := sources.Load(name); ok {
		return cached.(*text.GoTextFaceSource)
	}
	ttf, ok := fontFiles[name]
	if !ok {
		log.Fatalf("font %q not found", name)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Fatal(err)
	}
	sources.Store(name, source)
	return source
}

var fontCache sync.Map // map[string]*text.Face

// Font returns the face for a spec like "Go-18" or "Go-Bold-20".
func (u *UI) Font(name string) *text.Face {
	if cached, ok := fontCache.Load(name); ok {
		return cached.(*text.Face)
	}

	idx := strings.LastIndex(name, "-")
	if idx == -1 {
		log.Fatalf("invalid font spec %q: no size", name)
	}
	size := errutil.MustParseFloat(name[idx+1:], "font spec "+name)
	if size == 0 {
		log.Fatalf("invalid font spec %q: size must be non-zero", name)
	}

	var face text.Face = &text.GoTextFace{Source: loadFontSource(name[:idx]), Size: size}
	fontCache.Store(name, &face)
	return &face
}
