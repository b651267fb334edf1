package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/username/holidays-picker/internal/datepicker"
	"go.uber.org/zap"
)

// PickerState is the saved picker session
type PickerState struct {
	Window    *datepicker.WindowSnapshot   `json:"window,omitempty"`
	Selection *datepicker.SelectionSnapshot `json:"selection,omitempty"`
	SavedAt   string                        `json:"saved_at,omitempty"`
}

// Store persists picker state as a JSON file
type Store struct {
	stateFile string
	logger    *zap.Logger
}

// NewStore creates a new state store
func NewStore(stateFile string, logger *zap.Logger) *Store {
	return &Store{
		stateFile: stateFile,
		logger:    logger,
	}
}

// Path returns the state file location
func (s *Store) Path() string {
	return s.stateFile
}

// Load loads the picker state from file
func (s *Store) Load() (*PickerState, error) {
	data, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			return &PickerState{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state PickerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	months := 0
	if state.Window != nil {
		months = len(state.Window.Months)
	}
	s.logger.Debug("Picker state loaded",
		zap.String("file", s.stateFile),
		zap.Int("months", months),
		zap.Bool("has_selection", state.Selection != nil))

	return &state, nil
}

// Save saves the picker state to file
func (s *Store) Save(state *PickerState) error {
	state.SavedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if dir := filepath.Dir(s.stateFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	// Replace atomically via a temp file in the same directory.
	tmp := s.stateFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.stateFile); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.logger.Debug("Picker state saved", zap.String("file", s.stateFile))

	return nil
}

// Clear removes the state file
func (s *Store) Clear() error {
	if err := os.Remove(s.stateFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	s.logger.Info("Picker state cleared", zap.String("file", s.stateFile))
	return nil
}
