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
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 GitHubSource serves templates from a repository tarball extracted
// to a temporary directory.
type GitHubSource struct {
	ref     string
	dir     string // extracted template directory
	tmpRoot string // temp dir removed on Close
}

// 🔍 parseRef splits github.com/owner/repo[/sub/dir][@ref] into parts
func parseRef(root string) (owner, repo, subdir, ref string, err error) {
	spec := strings.TrimPrefix(root, "github.com/")

	ref = "main"
	if at := strings.LastIndex(spec, "@"); at >= 0 {
		ref = spec[at+1:]
		spec = spec[:at]
	}

	parts := strings.Split(spec, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", "", errors.Errorf("invalid repository reference: %s", root)
	}

	owner = parts[0]
	repo = parts[1]
	subdir = strings.Join(parts[2:], "/")
	return owner, repo, subdir, ref, nil
}

// 🏭 NewGitHubSource downloads the repository tarball for the given
// reference and extracts it. GITHUB_TOKEN is used when set; public
// repositories work without it.
func NewGitHubSource(ctx context.Context, root string) (*GitHubSource, error) {
	logger := zerolog.Ctx(ctx)

	owner, repo, subdir, ref, err := parseRef(root)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	url, _, err := client.Repositories.GetArchiveLink(ctx, owner, repo, github.Tarball, &github.RepositoryContentGetOptions{
		Ref: ref,
	}, 10)
	if err != nil {
		return nil, errors.Errorf("getting archive link for %s/%s@%s: %w", owner, repo, ref, err)
	}

	logger.Debug().Str("url", url.String()).Msg("downloading template archive")

	body, err := download(ctx, url.String())
	if err != nil {
		return nil, errors.Errorf("downloading archive: %w", err)
	}
	defer body.Close()

	tmpRoot, err := os.MkdirTemp("", "aocgen-templates-*")
	if err != nil {
		return nil, errors.Errorf("creating temp dir: %w", err)
	}

	stripped, err := extractTarball(body, tmpRoot)
	if err != nil {
		os.RemoveAll(tmpRoot)
		return nil, errors.Errorf("extracting archive: %w", err)
	}

	dir := filepath.Join(tmpRoot, stripped)
	if subdir != "" {
		dir = filepath.Join(dir, filepath.FromSlash(subdir))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		os.RemoveAll(tmpRoot)
		return nil, errors.Errorf("template directory %s not present in %s/%s@%s", subdir, owner, repo, ref)
	}

	return &GitHubSource{
		ref:     root,
		dir:     dir,
		tmpRoot: tmpRoot,
	}, nil
}

// 📥 download fetches a URL, failing on non-200 responses
func download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Errorf("downloading file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// 📂 extractTarball unpacks a gzipped tarball into dst and returns the
// name of the single top-level directory GitHub archives carry
// (owner-repo-sha).
func extractTarball(r io.Reader, dst string) (string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return "", errors.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	var topLevel string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Errorf("reading tar entry: %w", err)
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if name == "." || strings.HasPrefix(name, "..") {
			continue
		}
		if topLevel == "" {
			topLevel = strings.SplitN(name, string(filepath.Separator), 2)[0]
		}

		target := filepath.Join(dst, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", errors.Errorf("creating directory %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return "", errors.Errorf("creating parent of %s: %w", name, err)
			}
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode)&0777)
			if err != nil {
				return "", errors.Errorf("creating file %s: %w", name, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return "", errors.Errorf("writing file %s: %w", name, err)
			}
			if err := f.Close(); err != nil {
				return "", errors.Errorf("closing file %s: %w", name, err)
			}
		default:
			// symlinks and other special entries have no place in a
			// template set
			continue
		}
	}

	if topLevel == "" {
		return "", errors.Errorf("archive contained no entries")
	}
	return topLevel, nil
}

// FS implements Source.FS
func (s *GitHubSource) FS() fs.FS {
	return os.DirFS(s.dir)
}

// String implements Source.String
func (s *GitHubSource) String() string {
	return fmt.Sprintf("%s (extracted to %s)", s.ref, s.dir)
}

// Close implements Source.Close
func (s *GitHubSource) Close() error {
	return os.RemoveAll(s.tmpRoot)
}
