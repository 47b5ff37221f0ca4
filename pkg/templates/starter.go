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

package templates

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// starterFS contains the canonical template set: run script, gitignore,
// workspace manifest, cargo config, CI workflow and the two
// placeholder-bearing day templates.
//
//go:embed starter
var starterFS embed.FS

// 🌱 WriteStarter materializes the embedded starter template set into
// dir so a new year's workspace can be scaffolded without assembling
// templates by hand. Existing files are never overwritten.
func WriteStarter(ctx context.Context, dir string) error {
	logger := zerolog.Ctx(ctx)

	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		return errors.Errorf("opening embedded templates: %w", err)
	}

	return fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking embedded templates: %w", err)
		}
		if path == "." {
			return os.MkdirAll(dir, 0755)
		}

		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}

		data, err := fs.ReadFile(sub, path)
		if err != nil {
			return errors.Errorf("reading embedded template %s: %w", path, err)
		}

		mode := os.FileMode(0644)
		if strings.HasSuffix(path, ".sh") {
			mode = 0755
		}

		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
		if err != nil {
			return errors.Errorf("creating %s: %w", target, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return errors.Errorf("writing %s: %w", target, err)
		}
		if err := f.Close(); err != nil {
			return errors.Errorf("closing %s: %w", target, err)
		}

		logger.Debug().Str("path", target).Msg("wrote starter template")
		return nil
	})
}
