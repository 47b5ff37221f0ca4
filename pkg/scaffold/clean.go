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

package scaffold

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/aocgen/pkg/config"
	"github.com/walteh/aocgen/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Clean removes exactly the paths a scaffold run creates: the day
// directories, the fixed top-level files, the cargo config directory and
// the workflow directory. Paths that are already gone are fine; nothing
// outside the scaffold output is touched.
func Clean(ctx context.Context, cfg *config.Config, console *log.Logger) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("target", cfg.Target).Msg("cleaning scaffold output")

	console.Header("cleaning " + cfg.Target)

	outputs := []string{
		outRunScript,
		outIgnore,
		outManifest,
		outCargoDir,
		outWorkflowsDir,
	}
	for day := 1; day <= cfg.Days; day++ {
		outputs = append(outputs, dayName(day))
	}

	removed := 0
	for _, out := range outputs {
		target := filepath.Join(cfg.Target, filepath.FromSlash(out))

		if _, err := os.Lstat(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Errorf("inspecting %s: %w", out, err)
		}

		if err := os.RemoveAll(target); err != nil {
			return errors.Errorf("removing %s: %w", out, err)
		}

		console.LogOperation(ctx, log.Operation{Path: out, Kind: log.KindRemoved})
		removed++
	}

	// .github itself is only removed when the workflow dir was the sole
	// content; other tooling may own files in there.
	_ = os.Remove(filepath.Join(cfg.Target, outGithubDir))

	console.Successf("removed %d paths from %s", removed, cfg.Target)
	return nil
}
