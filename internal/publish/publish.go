// Package publish writes a program out as a tree of markdown pages.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"setgrid/internal/logger"
	"setgrid/internal/model"
)

type WriteOptions struct {
	IncludeNotes bool
	Overwrite    bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteDay writes <toDir>/days/<day>.md.
func WriteDay(p *model.Program, dayID string, toDir string, opt WriteOptions) (WriteResult, error) {
	if p == nil {
		return WriteResult{}, errors.New("missing program")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	md, err := RenderDayMarkdown(p, dayID, RenderOptions{IncludeNotes: opt.IncludeNotes})
	if err != nil {
		return WriteResult{}, err
	}
	outDir := filepath.Join(filepath.Clean(toDir), "days")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	path := filepath.Join(outDir, strings.TrimSpace(dayID)+".md")
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

// WriteProgram writes an index page plus one page per day, stopping at the first error.
func WriteProgram(p *model.Program, toDir string, opt WriteOptions) (WriteResult, error) {
	if p == nil {
		return WriteResult{}, errors.New("missing program")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderProgramIndexMarkdown(p)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, d := range p.Days {
		res, err := WriteDay(p, d.ID, toDir, opt)
		if err != nil {
			return WriteResult{}, err
		}
		written = append(written, res.Written...)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	logger.Debug("page written", "path", path, "bytes", len(b))
	return nil
}
