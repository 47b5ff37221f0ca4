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
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// Failure categories. Every error Run returns wraps one of these (or,
// for plain filesystem trouble, the underlying error itself) so callers
// can match with errors.Is. The first failure aborts the run; nothing is
// rolled back.
var (
	// ErrSourceMissing indicates a required template file or directory
	// is absent from the template root.
	ErrSourceMissing = errors.New("template source missing")

	// ErrTargetConflict indicates a path the scaffolder wanted to create
	// already exists. Re-running against a scaffolded target is expected
	// to fail this way; there is no overwrite or merge policy.
	ErrTargetConflict = errors.New("target path already exists")

	// ErrVCSUnavailable indicates the staging mechanism is not
	// initialized in the target. Files written before the staging call
	// stay on disk.
	ErrVCSUnavailable = errors.New("version control unavailable")
)

// classify maps a filesystem error to the failure taxonomy, keeping the
// original error text in the message.
func classify(err error, op, path string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.Errorf("%s %s: %v: %w", op, path, err, ErrSourceMissing)
	case errors.Is(err, fs.ErrExist):
		return errors.Errorf("%s %s: %v: %w", op, path, err, ErrTargetConflict)
	default:
		return errors.Errorf("%s %s: %w", op, path, err)
	}
}
