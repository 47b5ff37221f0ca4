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

// Package templates resolves a template root into a readable filesystem.
// A root is either a local directory or a GitHub repository reference of
// the form github.com/owner/repo[/sub/dir][@ref].
package templates

import (
	"context"
	"io/fs"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Source is a resolved template root
type Source interface {
	// FS returns the template files as a read-only filesystem
	FS() fs.FS

	// String describes the source for logging
	String() string

	// Close releases any resources held by the source
	Close() error
}

// 🎯 Resolve turns a template root string into a Source. GitHub
// references are downloaded; anything else is treated as a local
// directory path.
func Resolve(ctx context.Context, root string) (Source, error) {
	if strings.HasPrefix(root, "github.com/") {
		src, err := NewGitHubSource(ctx, root)
		if err != nil {
			return nil, errors.Errorf("resolving remote template root %s: %w", root, err)
		}
		return src, nil
	}

	src, err := NewLocalSource(root)
	if err != nil {
		return nil, errors.Errorf("resolving template root %s: %w", root, err)
	}
	return src, nil
}
