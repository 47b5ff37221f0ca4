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
	"io/fs"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📁 LocalSource serves templates from a directory on disk
type LocalSource struct {
	dir string
}

// 🏭 NewLocalSource creates a source for the given directory. The
// directory must exist.
func NewLocalSource(dir string) (*LocalSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("template root %s is not a directory", dir)
	}
	return &LocalSource{dir: dir}, nil
}

// FS implements Source.FS
func (s *LocalSource) FS() fs.FS {
	return os.DirFS(s.dir)
}

// String implements Source.String
func (s *LocalSource) String() string {
	return s.dir
}

// Close implements Source.Close
func (s *LocalSource) Close() error {
	return nil
}
