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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/idesync/pkg/workflow"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "config.yaml",
			config: `
project: ./app/
dry_run: true
verbose: true
log_file: idesync.log
layout:
  source: templates/workflows/
  include: "*.markdown"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "app", cfg.Project, "project should be cleaned")
				assert.True(t, cfg.DryRun, "dry run should be true")
				assert.True(t, cfg.Verbose, "verbose should be true")
				assert.Equal(t, "idesync.log", cfg.LogFile, "log file should match")
				require.NotNil(t, cfg.Layout, "layout should not be nil")
				assert.Equal(t, "templates/workflows", cfg.Layout.Source, "source should be cleaned")

				layout := cfg.WorkflowLayout()
				assert.Equal(t, "templates/workflows", layout.Source, "source override should apply")
				assert.Equal(t, workflow.DefaultLayout().Target, layout.Target, "target should keep default")
				assert.Equal(t, "*.markdown", layout.Include, "include override should apply")
			},
		},
		{
			name:     "empty_yaml",
			filename: "config.yml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.Layout, "layout should be nil")
				assert.Equal(t, workflow.DefaultLayout(), cfg.WorkflowLayout(), "default layout should apply")
			},
		},
		{
			name:     "valid_json",
			filename: "config.json",
			config:   `{"project": "/srv/app", "json": true, "layout": {"target": ".agents/flows"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/app", cfg.Project, "project should match")
				assert.True(t, cfg.JSON, "json should be true")
				assert.Equal(t, ".agents/flows", cfg.WorkflowLayout().Target, "target override should apply")
			},
		},
		{
			name:     "valid_hcl",
			filename: "config.hcl",
			config: `
project = "/srv/app"
verbose = true

layout {
  include = "aios-*.md"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/app", cfg.Project, "project should match")
				assert.True(t, cfg.Verbose, "verbose should be true")
				assert.False(t, cfg.DryRun, "dry run should default to false")
				assert.Equal(t, "aios-*.md", cfg.WorkflowLayout().Include, "include override should apply")
				assert.Equal(t, workflow.DefaultLayout().Source, cfg.WorkflowLayout().Source, "source should keep default")
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "config.json",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			filename:    "config.hcl",
			config:      `project = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "absolute_layout_target",
			filename:    "config.yaml",
			config:      "layout:\n  target: /etc/workflows\n",
			wantErr:     true,
			errContains: "layout.target must be relative",
		},
		{
			name:        "invalid_include_glob",
			filename:    "config.yaml",
			config:      "layout:\n  include: \"[*.md\"\n",
			wantErr:     true,
			errContains: "layout.include is not a valid glob",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.toml",
			config:      "project = 'x'",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config should succeed")

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "loading should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should mention the cause")
				return
			}
			require.NoError(t, err, "loading should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()

	cfg, err := LoadOrDefault(ctx, filepath.Join(t.TempDir(), DefaultPath))
	require.NoError(t, err, "missing file should not be an error")
	assert.Equal(t, &Config{}, cfg)

	_, err = Load(ctx, filepath.Join(t.TempDir(), DefaultPath))
	require.Error(t, err, "Load should still fail on a missing file")
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfigString(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, ".: .aios-core/product/templates/ide-rules/antigravity/workflows/*.md -> .agent/workflows", cfg.String())

	cfg = &Config{Project: "/p", Layout: &LayoutArgs{Source: "t", Target: "o", Include: "*.txt"}}
	assert.Equal(t, "/p: t/*.txt -> o", cfg.String())
}
