package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"tgsheet/log"
)

// StateFileName is kept in the state directory, next to the dialog cache.
const StateFileName = "state.json"

// State is what tgsheet remembers between runs that is not a preference.
type State struct {
	// LastPage is the title of the sheet page focused on exit.
	LastPage string `json:"last_page,omitempty"`

	path string
}

// LoadState loads the state from stateDir. If it cannot be done, we return
// an empty state that still saves to stateDir.
func LoadState(stateDir string) *State {
	return LoadStateFrom(filepath.Join(stateDir, StateFileName))
}

// LoadStateFrom loads the state file at path.
func LoadStateFrom(path string) *State {
	state := &State{path: path}

	var data []byte
	err := withReadLock(path, func() (err error) {
		data, err = os.ReadFile(path)
		return err
	})
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read state file: %v", err)
		}
		return state
	}

	if err := json.Unmarshal(data, state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return &State{path: path}
	}
	return state
}

// Save writes the state back to the file it was loaded from.
func (s *State) Save() error {
	if s.path == "" {
		return errors.New("state has no file")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create state directory")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}
	return withLock(s.path, func() error {
		if err := os.WriteFile(s.path, data, 0o600); err != nil {
			return errors.Wrap(err, "write state file")
		}
		return nil
	})
}

// SetLastPage records the focused page and saves.
func (s *State) SetLastPage(title string) error {
	if s.LastPage == title {
		return nil
	}
	s.LastPage = title
	return s.Save()
}
