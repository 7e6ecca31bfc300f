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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/idesync/pkg/workflow"
	"gitlab.com/tozd/go/errors"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".idesync.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🗺️ LayoutArgs overrides parts of the workflow layout
type LayoutArgs struct {
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`   // Template directory relative to the project
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`   // Destination directory relative to the project
	Include string `json:"include,omitempty" yaml:"include,omitempty"` // Glob matched against file names
}

// 📚 Config represents the complete configuration
type Config struct {
	Project string      `json:"project,omitempty" yaml:"project,omitempty"`
	DryRun  bool        `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Verbose bool        `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	JSON    bool        `json:"json,omitempty" yaml:"json,omitempty"`
	LogFile string      `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Layout  *LayoutArgs `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, returning an empty config when the file does not exist
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return &Config{}, nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Project != "" {
		cfg.Project = filepath.Clean(cfg.Project)
	}

	if cfg.Layout == nil {
		return nil
	}

	for field, value := range map[string]*string{"layout.source": &cfg.Layout.Source, "layout.target": &cfg.Layout.Target} {
		if *value == "" {
			continue
		}
		if filepath.IsAbs(*value) {
			return errors.Errorf("%s must be relative to the project: %s", field, *value)
		}
		*value = filepath.Clean(*value)
	}

	if cfg.Layout.Include != "" && !doublestar.ValidatePattern(cfg.Layout.Include) {
		return errors.Errorf("layout.include is not a valid glob: %s", cfg.Layout.Include)
	}

	return nil
}

// 🗺️ WorkflowLayout returns the default workflow layout with any configured overrides applied
func (cfg *Config) WorkflowLayout() workflow.Layout {
	layout := workflow.DefaultLayout()
	if cfg.Layout == nil {
		return layout
	}
	if cfg.Layout.Source != "" {
		layout.Source = cfg.Layout.Source
	}
	if cfg.Layout.Target != "" {
		layout.Target = cfg.Layout.Target
	}
	if cfg.Layout.Include != "" {
		layout.Include = cfg.Layout.Include
	}
	return layout
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	layout := cfg.WorkflowLayout()
	project := cfg.Project
	if project == "" {
		project = "."
	}
	return fmt.Sprintf("%s: %s/%s -> %s", project, layout.Source, layout.Include, layout.Target)
}
