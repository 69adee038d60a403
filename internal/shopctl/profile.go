package shopctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName = "shopctl"
	stateFile     = "state.json"

	DefaultBaseURL  = "http://localhost:8080"
	DefaultBasePath = "/api/v1"
)

// State is the saved login.
type State struct {
	BaseURL string `json:"base_url,omitempty"`
	Token   string `json:"token"`
	Email   string `json:"email,omitempty"`
}

// Settings is the resolved client configuration.
type Settings struct {
	BaseURL  string
	BasePath string
	Token    string
}

// configDir returns ~/.config/shopctl, honouring XDG_CONFIG_HOME.
func configDir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, configDirName), nil
}

// LoadState reads the saved login. A missing file yields an empty state.
func LoadState() (*State, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, stateFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &state, nil
}

func SaveState(state *State) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, stateFile), data, 0600)
}

// ClearState forgets the saved login.
func ClearState() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, stateFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

// ResolveSettings merges the environment with the saved state. SHOPCTL_TOKEN
// wins over the saved token, and an explicit SHOPCTL_BASE_URL over the URL
// the token was issued for.
func ResolveSettings() (Settings, error) {
	state, err := LoadState()
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		BaseURL:  DefaultBaseURL,
		BasePath: DefaultBasePath,
		Token:    state.Token,
	}
	if state.BaseURL != "" {
		s.BaseURL = state.BaseURL
	}
	if v := os.Getenv("SHOPCTL_BASE_URL"); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv("SHOPCTL_BASE_PATH"); v != "" {
		s.BasePath = v
	}
	if v := os.Getenv("SHOPCTL_TOKEN"); v != "" {
		s.Token = v
	}
	return s, nil
}
