// Package auth finds credentials for the Gemini suggestion service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/arohiabhilasha/FocusFlow/pkg/config"
)

const (
	// CredentialsFile lives in the config directory and holds the Gemini API key:
	//
	//	[gemini]
	//	api_key = "..."
	CredentialsFile = "credentials.toml"

	// GenerativeLanguageScope is requested when falling back to Application
	// Default Credentials.
	GenerativeLanguageScope = "https://www.googleapis.com/auth/generative-language"
)

var (
	// ErrNoCredentials means no API key, credentials file, or default credentials were found.
	ErrNoCredentials = errors.New("no Gemini credentials found")

	// ErrInsecurePermissions is returned when the credentials file is readable by others.
	ErrInsecurePermissions = errors.New("credentials file has insecure permissions")
)

// apiKeyEnv is checked in order after an explicit key.
var apiKeyEnv = []string{"GEMINI_API_KEY", "API_KEY"}

// findDefaultCredentials is replaced in tests to avoid probing the metadata server.
var findDefaultCredentials = google.FindDefaultCredentials

type providerCreds struct {
	APIKey string `toml:"api_key"`
}

type credentialsFile struct {
	Gemini *providerCreds `toml:"gemini,omitempty"`
	LLM    *providerCreds `toml:"llm,omitempty"`
}

// CredentialsPath returns the path of the credentials file.
func CredentialsPath() string {
	return filepath.Join(config.ConfigDir(), CredentialsFile)
}

// ClientOptions resolves how to authenticate, in priority order: apiKey, the
// GEMINI_API_KEY / API_KEY environment variables, the credentials file, then
// Google Application Default Credentials.
func ClientOptions(ctx context.Context, apiKey string) ([]option.ClientOption, error) {
	if apiKey != "" {
		return []option.ClientOption{option.WithAPIKey(apiKey)}, nil
	}
	for _, env := range apiKeyEnv {
		if v := os.Getenv(env); v != "" {
			return []option.ClientOption{option.WithAPIKey(v)}, nil
		}
	}

	key, err := LoadAPIKey(CredentialsPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if key != "" {
		return []option.ClientOption{option.WithAPIKey(key)}, nil
	}

	creds, err := findDefaultCredentials(ctx, GenerativeLanguageScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	ts := oauth2.ReuseTokenSource(nil, creds.TokenSource)
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

// LoadAPIKey reads the Gemini key from a credentials file, preferring the
// [gemini] section over the generic [llm] one. The file must not be readable
// by group or others.
func LoadAPIKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		return "", fmt.Errorf("%w: %s has mode %04o, expected 0600", ErrInsecurePermissions, path, info.Mode().Perm())
	}

	var f credentialsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	switch {
	case f.Gemini != nil && f.Gemini.APIKey != "":
		return f.Gemini.APIKey, nil
	case f.LLM != nil && f.LLM.APIKey != "":
		return f.LLM.APIKey, nil
	}
	return "", nil
}

// SaveAPIKey writes key to the credentials file with owner-only permissions.
func SaveAPIKey(path, key string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open credentials file for writing: %w", err)
	}
	defer f.Close()
	if err := f.Chmod(0600); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(credentialsFile{Gemini: &providerCreds{APIKey: key}})
}
