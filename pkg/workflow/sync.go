// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FS is the filesystem capability the syncer works through
type FS interface {
	// ListDirectory returns the names of the files directly inside dir.
	ListDirectory(ctx context.Context, dir string) ([]string, error)
	// EnsureDirectory creates dir and any missing parents.
	EnsureDirectory(ctx context.Context, dir string) error
	// CopyFile copies src to dst, replacing dst if it exists.
	CopyFile(ctx context.Context, src, dst string) error
}

// 🗺️ Layout locates workflow templates and their destination inside a project
type Layout struct {
	Source  string // template directory, relative to the project root
	Target  string // agent workflow directory, relative to the project root
	Include string // glob a file name must match to be synced
}

// DefaultLayout returns the antigravity workflow layout.
func DefaultLayout() Layout {
	return Layout{
		Source:  filepath.Join(".aios-core", "product", "templates", "ide-rules", "antigravity", "workflows"),
		Target:  filepath.Join(".agent", "workflows"),
		Include: "*.md",
	}
}

// ⚙️ Options control a single sync
type Options struct {
	DryRun  bool // report what would be copied without touching the filesystem
	Verbose bool // emit diagnostics to the context logger
}

// 🔄 Syncer copies workflow templates into the agent workflow directory
type Syncer struct {
	fs     FS
	layout Layout
}

// 🏭 NewSyncer creates a syncer using the default layout
func NewSyncer(fs FS) *Syncer {
	return NewSyncerWithLayout(fs, DefaultLayout())
}

// 🏭 NewSyncerWithLayout creates a syncer for a custom layout
func NewSyncerWithLayout(fs FS, layout Layout) *Syncer {
	if layout.Include == "" {
		layout.Include = DefaultLayout().Include
	}
	return &Syncer{fs: fs, layout: layout}
}

// Layout returns the layout the syncer resolves paths with.
func (s *Syncer) Layout() Layout {
	return s.layout
}

// SourceDir returns the template directory for projectRoot.
func (s *Syncer) SourceDir(projectRoot string) string {
	return filepath.Join(projectRoot, s.layout.Source)
}

// TargetDir returns the agent workflow directory for projectRoot.
func (s *Syncer) TargetDir(projectRoot string) string {
	return filepath.Join(projectRoot, s.layout.Target)
}

// 🏃 Sync copies every matching template of projectRoot and appends one record
// per file to results. Failures never escape as errors: a failed listing
// appends a single error record and nothing else.
func (s *Syncer) Sync(ctx context.Context, projectRoot string, opts Options, results *[]Result) {
	logger := s.logger(ctx, opts.Verbose)
	sourceDir := s.SourceDir(projectRoot)
	targetDir := s.TargetDir(projectRoot)

	entries, err := s.fs.ListDirectory(ctx, sourceDir)
	if err != nil {
		logger.Error().Err(err).Str("source", sourceDir).Msg("listing workflow templates")
		*results = append(*results, newError("", "", err))
		return
	}

	files := s.filter(entries)
	logger.Info().
		Str("source", sourceDir).
		Int("entries", len(entries)).
		Int("workflows", len(files)).
		Bool("dry_run", opts.DryRun).
		Msg("found workflow templates")

	if len(files) > 0 && !opts.DryRun {
		if err := s.fs.EnsureDirectory(ctx, targetDir); err != nil {
			logger.Error().Err(err).Str("target", targetDir).Msg("creating workflow directory")
			*results = append(*results, newError("", "", errors.Errorf("creating %s: %w", targetDir, err)))
			return
		}
	}

	for _, name := range files {
		if opts.DryRun {
			logger.Info().Str("file", name).Msg("would sync workflow")
			*results = append(*results, newSuccess(name, ""))
			continue
		}

		dst := filepath.Join(targetDir, name)
		if err := s.fs.CopyFile(ctx, filepath.Join(sourceDir, name), dst); err != nil {
			logger.Error().Err(err).Str("file", name).Msg("copying workflow")
			*results = append(*results, newError(name, dst, err))
			continue
		}
		logger.Info().Str("file", name).Str("path", dst).Msg("synced workflow")
		*results = append(*results, newSuccess(name, dst))
	}
}

// filter keeps the entries matching the include glob, in listing order.
func (s *Syncer) filter(entries []string) []string {
	files := make([]string, 0, len(entries))
	for _, name := range entries {
		// an invalid pattern never matches
		if ok, _ := doublestar.Match(s.layout.Include, name); ok {
			files = append(files, name)
		}
	}
	return files
}

func (s *Syncer) logger(ctx context.Context, verbose bool) *zerolog.Logger {
	if !verbose {
		nop := zerolog.Nop()
		return &nop
	}
	return zerolog.Ctx(ctx)
}
