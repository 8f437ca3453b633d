package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/arohiabhilasha/FocusFlow/pkg/config"
)

// ParseMode accepts "app", "widget", or a query string such as "mode=widget"
// or "?mode=widget". A query without a widget mode selects the app.
func ParseMode(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "=") {
		q, err := url.ParseQuery(strings.TrimPrefix(s, "?"))
		if err != nil {
			return "", fmt.Errorf("invalid mode %q: %w", s, err)
		}
		if q.Get("mode") == config.ModeWidget {
			return config.ModeWidget, nil
		}
		return config.ModeApp, nil
	}

	switch strings.ToLower(s) {
	case "", config.ModeApp:
		return config.ModeApp, nil
	case config.ModeWidget:
		return config.ModeWidget, nil
	}
	return "", fmt.Errorf("unknown mode %q (valid: %s)", s, strings.Join(config.ValidModes(), ", "))
}
