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
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/idesync/pkg/workflow"
	"gitlab.com/tozd/go/errors"
)

var _ workflow.FS = (*OS)(nil)

// 💾 OS implements workflow.FS on the local filesystem
type OS struct {
	dirMode os.FileMode
}

// 🏭 NewOS creates an OS filesystem that creates directories with mode 0755
func NewOS() *OS {
	return &OS{dirMode: 0755}
}

// 📂 ListDirectory returns the regular file names directly inside dir, sorted by name.
// Subdirectories are skipped.
func (o *OS) ListDirectory(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			zerolog.Ctx(ctx).Trace().Str("dir", dir).Str("name", entry.Name()).Msg("skipping subdirectory")
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// 📁 EnsureDirectory creates dir and any missing parents
func (o *OS) EnsureDirectory(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, o.dirMode); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

// 📋 CopyFile copies src over dst atomically, keeping the source permissions
func (o *OS) CopyFile(ctx context.Context, src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("source %s is a directory", src)
	}

	tempPath := dst + ".tmp"
	tmpFile, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		tmpFile.Close()
		os.Remove(tempPath)
		return errors.Errorf("copying file content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, dst); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", filepath.Clean(dst)).Msg("copied file")
	return nil
}
