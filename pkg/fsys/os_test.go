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

package fsys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel)
	return logger.WithContext(context.Background())
}

func TestListDirectory(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		want    []string
		wantErr string
	}{
		{
			name:  "empty_directory",
			setup: func(t *testing.T, dir string) {},
			want:  []string{},
		},
		{
			name: "files_sorted_subdirs_skipped",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b"), 0644))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.md"), 0755))
			},
			want: []string{"a.json", "b.md"},
		},
		{
			name: "missing_directory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.RemoveAll(dir))
			},
			wantErr: "reading directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "src")
			require.NoError(t, os.Mkdir(dir, 0755))
			tt.setup(t, dir)

			names, err := NewOS().ListDirectory(testContext(t), dir)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEnsureDirectory(t *testing.T) {
	ctx := testContext(t)
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, NewOS().EnsureDirectory(ctx, dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directories are fine
	require.NoError(t, NewOS().EnsureDirectory(ctx, dir))
}

func TestEnsureDirectoryOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := NewOS().EnsureDirectory(testContext(t), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating directory")
}

func TestCopyFile(t *testing.T) {
	ctx := testContext(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.md")
	dst := filepath.Join(tmpDir, "dst.md")

	require.NoError(t, os.WriteFile(src, []byte("# first"), 0600))
	require.NoError(t, NewOS().CopyFile(ctx, src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# first", string(content))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "source permissions should be kept")

	_, err = os.Stat(dst + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone")

	// overwrite
	require.NoError(t, os.WriteFile(src, []byte("# second"), 0600))
	require.NoError(t, NewOS().CopyFile(ctx, src, dst))
	content, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# second", string(content))
}

func TestCopyFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) (src, dst string)
		wantErr string
	}{
		{
			name: "missing_source",
			setup: func(t *testing.T, dir string) (string, string) {
				return filepath.Join(dir, "missing.md"), filepath.Join(dir, "dst.md")
			},
			wantErr: "opening source file",
		},
		{
			name: "source_is_directory",
			setup: func(t *testing.T, dir string) (string, string) {
				src := filepath.Join(dir, "dir.md")
				require.NoError(t, os.Mkdir(src, 0755))
				return src, filepath.Join(dir, "dst.md")
			},
			wantErr: "is a directory",
		},
		{
			name: "missing_target_directory",
			setup: func(t *testing.T, dir string) (string, string) {
				src := filepath.Join(dir, "src.md")
				require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
				return src, filepath.Join(dir, "nope", "dst.md")
			},
			wantErr: "creating temp file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := tt.setup(t, t.TempDir())
			err := NewOS().CopyFile(testContext(t), src, dst)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
