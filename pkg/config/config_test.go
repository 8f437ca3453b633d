package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Suggest.DefaultIntent != "productive day" {
		t.Errorf("Suggest.DefaultIntent = %q, want %q", cfg.Suggest.DefaultIntent, "productive day")
	}
	if cfg.UI.Mode != ModeApp {
		t.Errorf("UI.Mode = %q, want app", cfg.UI.Mode)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() is invalid: %v", errs)
	}
}

func TestInitWithoutFile(t *testing.T) {
	resetViper(t)

	if err := Init(""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Suggest.Model != Default().Suggest.Model {
		t.Errorf("Suggest.Model = %q", cfg.Suggest.Model)
	}
	if cfg.StorageDir() != ConfigDir() {
		t.Errorf("StorageDir() = %q, want %q", cfg.StorageDir(), ConfigDir())
	}
}

func TestInitReadsFileAndEnv(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"storage": {"backend": "bolt", "dir": "/tmp/ff"}, "ui": {"mode": "widget"}}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOCUSFLOW_SUGGEST_DEFAULT_INTENT", "calm evening")

	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "bolt" || cfg.StorageDir() != "/tmp/ff" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.UI.Mode != ModeWidget {
		t.Errorf("UI.Mode = %q, want widget", cfg.UI.Mode)
	}
	if cfg.Suggest.DefaultIntent != "calm evening" {
		t.Errorf("Suggest.DefaultIntent = %q, want env override", cfg.Suggest.DefaultIntent)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "s3"
	cfg.UI.Mode = "fullscreen"
	cfg.Logging.Level = "trace"
	cfg.Suggest.Model = " "

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Fatalf("Validate() returned %d errors, want 4: %v", len(errs), errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"storage.backend", "ui.mode", "logging.level", "suggest.model"} {
		if !fields[f] {
			t.Errorf("missing validation error for %s", f)
		}
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("ui.mode", "tablet")

	_, err := Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Load() error = %v, want ValidationErrors", err)
	}
}

func TestSetWritesFile(t *testing.T) {
	resetViper(t)
	SetDefaults()
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	if err := Set("ui.mode", "widget", path); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("config is not JSON: %v", err)
	}
	if saved.UI.Mode != "widget" {
		t.Errorf("saved UI.Mode = %q, want widget", saved.UI.Mode)
	}

	if err := Set("nope.key", "x", path); err == nil {
		t.Error("Set(unknown key) error = nil")
	}
	if err := Set("storage.backend", "s3", path); err == nil {
		t.Error("Set(storage.backend=s3) error = nil")
	}
}

func TestConfigDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigDir(); got != filepath.Join("/xdg", "focusflow") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigFile(); got != filepath.Join("/xdg", "focusflow", "config.json") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
