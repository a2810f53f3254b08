package persistence

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.UseDarkTheme {
		t.Error("Expected dark theme by default")
	}
	if len(cfg.Sources) != 0 || len(cfg.Sinks) != 0 {
		t.Errorf("Expected no devices, got %v / %v", cfg.Sources, cfg.Sinks)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestStoreAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store, err := NewConfigStore(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		UseDarkTheme: false,
		Sources: []DeviceRecord{
			{Name: "alsa_input.usb", Label: "Desk Mic", Hidden: false},
			{Name: "alsa_input.pci", Label: "Laptop", Hidden: true},
		},
		Sinks: []DeviceRecord{
			{Name: "alsa_output.hdmi", Label: "TV", Hidden: true},
		},
	}

	if err := store.Store(cfg); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[sinks]]
name = "alsa_output.usb"
label = "Headphones"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	store, _ := NewConfigStore(path)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.UseDarkTheme {
		t.Error("Missing use_dark_theme should keep the default")
	}
	if cfg.Sources == nil || len(cfg.Sources) != 0 {
		t.Errorf("Expected empty sources, got %#v", cfg.Sources)
	}
	expected := []DeviceRecord{{Name: "alsa_output.usb", Label: "Headphones"}}
	if !reflect.DeepEqual(cfg.Sinks, expected) {
		t.Errorf("Expected sinks %v, got %v", expected, cfg.Sinks)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("sources = [[["), 0o644); err != nil {
		t.Fatal(err)
	}
	store, _ := NewConfigStore(path)

	cfg, err := store.Load()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults alongside the error, got %+v", cfg)
	}
}

func TestStoreUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	store, _ := NewConfigStore(filepath.Join(blocker, "config.toml"))

	if err := store.Store(DefaultConfig()); err == nil {
		t.Error("Expected error when the config directory cannot be created")
	}
}
