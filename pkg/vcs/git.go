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

package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// GitStager implements Stager by shelling out to the git binary.
type GitStager struct {
	dir string
}

// NewGitStager creates a stager rooted at dir. The directory does not
// need to be the repository root, only inside one.
func NewGitStager(dir string) *GitStager {
	return &GitStager{dir: dir}
}

// IsRepository implements Stager.IsRepository
func (s *GitStager) IsRepository(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "-C", s.dir, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// Stage implements Stager.Stage
func (s *GitStager) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Strs("paths", paths).Str("dir", s.dir).Msg("staging files")

	args := append([]string{"-C", s.dir, "add", "--"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "not a git repository") {
			return errors.Errorf("staging %d paths in %s: %w", len(paths), s.dir, ErrNoRepository)
		}
		return errors.Errorf("git add in %s: %s: %w", s.dir, strings.TrimSpace(stderr.String()), err)
	}

	return nil
}
