package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
	"github.com/arohiabhilasha/FocusFlow/pkg/storage"
)

const (
	ModeApp    = "app"
	ModeWidget = "widget"
)

// ValidationError is a single invalid field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidModes returns the accepted ui.mode values.
func ValidModes() []string {
	return []string{ModeApp, ModeWidget}
}

// Validate returns every invalid field in c.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	if !storage.ValidBackend(c.Storage.Backend) {
		errs = append(errs, ValidationError{"storage.backend", c.Storage.Backend, "must be one of file, bolt"})
	}
	if !slices.Contains(ValidModes(), c.UI.Mode) {
		errs = append(errs, ValidationError{"ui.mode", c.UI.Mode, "must be one of " + strings.Join(ValidModes(), ", ")})
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of debug, info, warn, error"})
	}
	if strings.TrimSpace(c.Suggest.Model) == "" {
		errs = append(errs, ValidationError{"suggest.model", c.Suggest.Model, "must not be empty"})
	}
	return errs
}

// SettableKeys lists the keys accepted by Set.
func SettableKeys() []string {
	return []string{
		"storage.backend",
		"storage.dir",
		"suggest.model",
		"suggest.api_key",
		"suggest.default_intent",
		"ui.mode",
		"logging.level",
		"logging.dir",
	}
}

// Set validates and applies one key, then writes the full configuration to path.
func Set(key, value, path string) error {
	if !slices.Contains(SettableKeys(), key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	viper.Set(key, value)
	cfg, err := Load()
	if err != nil {
		return err
	}
	return Save(cfg, path)
}
