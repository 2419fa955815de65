// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site persists generated pages into the output tree.
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/docforge/pkg/types"
)

// ErrWrite classifies a filesystem failure during directory creation or
// file write.
var ErrWrite = errors.New("write failed")

// EnsureSectionDirs creates the output root and one subdirectory per
// configured section. It runs before any job executes and covers every
// section regardless of restricted-mode filtering, so a filtered run may
// leave empty directories behind. MkdirAll makes repeated runs idempotent.
func EnsureSectionDirs(root string, sections []types.Section) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrWrite, root, err)
	}
	for _, section := range sections {
		dir := filepath.Join(root, section.Directory)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrWrite, dir, err)
		}
	}
	return nil
}

// Write persists content to the job's output path, creating the directory
// if needed and overwriting any existing file unconditionally.
func Write(job types.Job, content string) error {
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrWrite, job.OutputDir, err)
	}
	path := filepath.Join(job.OutputDir, job.Topic.Filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrWrite, path, err)
	}
	return nil
}
