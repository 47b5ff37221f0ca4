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

// Package vcs registers generated files with the version control staging
// area so they land in the next commit.
package vcs

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// ErrNoRepository indicates the target directory is not inside an
// initialized repository.
var ErrNoRepository = errors.New("no repository found")

// 🔌 Stager is the interface for version control staging
type Stager interface {
	// Stage registers the given paths (relative to the stager's working
	// directory) for the next commit
	Stage(ctx context.Context, paths ...string) error

	// IsRepository reports whether the working directory is inside an
	// initialized repository
	IsRepository(ctx context.Context) bool
}

// NopStager discards staging requests. Used when staging is disabled.
type NopStager struct{}

// NewNopStager creates a new NopStager
func NewNopStager() *NopStager {
	return &NopStager{}
}

// Stage implements Stager.Stage
func (s *NopStager) Stage(ctx context.Context, paths ...string) error {
	return nil
}

// IsRepository implements Stager.IsRepository
func (s *NopStager) IsRepository(ctx context.Context) bool {
	return true
}
