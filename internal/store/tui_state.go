package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"setgrid/internal/logger"
	"setgrid/internal/model"
)

const tuiStateFileName = "tui_state.json"

// TUIState is small UI state restored on relaunch. It is best effort: a missing or corrupt
// file reads as empty.
type TUIState struct {
	Version int `json:"version"`

	// LastDays maps a program source (its file path, or "built-in") to the day last open.
	LastDays map[string]string `json:"lastDays,omitempty"`
}

// ProgramSource is the LastDays key for a program path.
func ProgramSource(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "built-in"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func LoadTUIState(dir string) *TUIState {
	empty := &TUIState{Version: 1}
	if strings.TrimSpace(dir) == "" {
		return empty
	}
	b, err := os.ReadFile(filepath.Join(dir, tuiStateFileName))
	if err != nil {
		return empty
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		return empty
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st
}

func SaveTUIState(dir string, st *TUIState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, tuiStateFileName), b)
}

// SaveProgram writes p back to path as indented JSON.
func SaveProgram(path string, p *model.Program) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("save program: no path")
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, append(b, '\n')); err != nil {
		return err
	}
	logger.Info("program saved", "path", path, "days", len(p.Days))
	return nil
}

// writeFileAtomic writes to a sibling temp file and renames it over path.
func writeFileAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
