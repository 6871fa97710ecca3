package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"moneytracker/internal/app/client/config"
)

const stateFileName = "state.json"

// AppState is what the command line client remembers between runs.
type AppState struct {
	UserName  string    `json:"user_name,omitempty"`
	LastLogin time.Time `json:"last_login,omitempty"`
}

func statePath(cfg *config.Config) string {
	return filepath.Join(cfg.ConfigDir, stateFileName)
}

func loadAppState(cfg *config.Config) (*AppState, error) {
	data, err := os.ReadFile(statePath(cfg))
	if errors.Is(err, fs.ErrNotExist) {
		return &AppState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.config.ConfigDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(statePath(a.config), data, 0600)
}

// CurrentUser returns the name of the logged in user, or "".
func (a *App) CurrentUser() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.UserName
}

func (a *App) setCurrentUser(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.UserName = name
	if name != "" {
		a.state.LastLogin = time.Now().UTC()
	}

	if err := a.saveAppState(); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	return nil
}
