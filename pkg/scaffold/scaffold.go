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

// Package scaffold materializes a yearly contest workspace from a
// template set: fixed top-level files, CI workflow definitions and one
// numbered crate per day, rendered by literal placeholder substitution
// and registered with the version control staging area.
package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/aocgen/pkg/config"
	"github.com/walteh/aocgen/pkg/log"
	"github.com/walteh/aocgen/pkg/text"
	"github.com/walteh/aocgen/pkg/vcs"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📍 Paths written under the target root
const (
	outRunScript    = "run.sh"
	outIgnore       = ".gitignore"
	outManifest     = "Cargo.toml"
	outCargoDir     = ".cargo"
	outToolConfig   = ".cargo/config.toml"
	outGithubDir    = ".github"
	outWorkflowsDir = ".github/workflows"

	dayManifestName = "Cargo.toml"
	daySourceDir    = "src"
	daySourceName   = "main.rs"
)

// asyncDayLimit caps the fan-out when day generation runs concurrently.
const asyncDayLimit = 8

// 🔧 Options contains configuration for the scaffolder
type Options struct {
	// Config is the aocgen configuration
	Config *config.Config
	// Source is the resolved template root
	Source fs.FS
	// Stager registers generated paths with version control
	Stager vcs.Stager
	// Console receives user-facing progress output
	Console *log.Logger
}

// 🏭 New creates a new scaffolder with the given options
func New(opts Options) (*Scaffolder, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Source == nil {
		return nil, errors.New("template source is required")
	}
	if opts.Stager == nil {
		return nil, errors.New("stager is required")
	}
	if opts.Console == nil {
		return nil, errors.New("console logger is required")
	}
	return &Scaffolder{
		cfg:      opts.Config,
		src:      opts.Source,
		stager:   opts.Stager,
		console:  opts.Console,
		renderer: text.NewTokenRenderer(),
	}, nil
}

// 🎮 Scaffolder assembles one workspace, then is done. Re-running
// against the same target fails on the first existing path; there is no
// merge or overwrite policy.
type Scaffolder struct {
	cfg      *config.Config
	src      fs.FS
	stager   vcs.Stager
	console  *log.Logger
	renderer text.Renderer
}

// 🏃 Run executes the scaffold sequence: validate the template set, copy
// the fixed top-level files, copy the workflow definitions, then
// generate the numbered day workspaces. The first failure aborts the
// run; already-created paths are left in place.
func (s *Scaffolder) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("config", s.cfg.String()).Msg("starting scaffold")

	s.console.Header("scaffolding " + s.cfg.Target)

	if err := s.validateSource(); err != nil {
		return errors.Errorf("validating template set: %w", err)
	}

	if err := s.copyTopLevel(ctx); err != nil {
		return errors.Errorf("copying top-level files: %w", err)
	}

	if err := s.copyWorkflows(ctx); err != nil {
		return errors.Errorf("copying workflow definitions: %w", err)
	}

	if err := s.generateDays(ctx); err != nil {
		return err
	}

	s.console.Successf("scaffolded %d day workspaces in %s", s.cfg.Days, s.cfg.Target)
	return nil
}

// 🔍 validateSource checks every required template path up front so a
// broken template set fails before anything is created.
func (s *Scaffolder) validateSource() error {
	l := s.cfg.Layout

	for _, p := range []string{l.RunScript, l.Ignore, l.Manifest, l.ToolConfig, l.DayManifest, l.DaySource} {
		info, err := fs.Stat(s.src, p)
		if err != nil {
			return errors.Errorf("template file %s: %w", p, ErrSourceMissing)
		}
		if info.IsDir() {
			return errors.Errorf("template file %s is a directory: %w", p, ErrSourceMissing)
		}
	}

	info, err := fs.Stat(s.src, l.WorkflowsDir)
	if err != nil {
		return errors.Errorf("workflow template directory %s: %w", l.WorkflowsDir, ErrSourceMissing)
	}
	if !info.IsDir() {
		return errors.Errorf("workflow template path %s is not a directory: %w", l.WorkflowsDir, ErrSourceMissing)
	}

	return nil
}

// 📄 copyTopLevel copies the fixed files and stages the workspace
// manifest and the cargo config. The run script and the ignore file are
// copied but only staged under stage.all, matching the observed flow.
func (s *Scaffolder) copyTopLevel(ctx context.Context) error {
	l := s.cfg.Layout

	if err := s.copyFile(ctx, l.RunScript, outRunScript); err != nil {
		return err
	}
	if err := s.copyFile(ctx, l.Ignore, outIgnore); err != nil {
		return err
	}
	if err := s.copyFile(ctx, l.Manifest, outManifest); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(s.cfg.Target, outCargoDir), 0755); err != nil {
		return classify(err, "creating directory", outCargoDir)
	}
	if err := s.copyFile(ctx, l.ToolConfig, outToolConfig); err != nil {
		return err
	}

	staged := []string{outManifest, outToolConfig}
	if s.cfg.Stage.All {
		staged = append(staged, outRunScript, outIgnore)
	}
	return s.stage(ctx, 0, staged...)
}

// 📂 copyWorkflows recursively copies the CI workflow templates into
// .github/workflows, honoring the configured ignore patterns.
func (s *Scaffolder) copyWorkflows(ctx context.Context) error {
	root := s.cfg.Layout.WorkflowsDir

	if err := os.MkdirAll(filepath.Join(s.cfg.Target, filepath.FromSlash(outWorkflowsDir)), 0755); err != nil {
		return classify(err, "creating directory", outWorkflowsDir)
	}

	var staged []string
	err := fs.WalkDir(s.src, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return classify(err, "walking template directory", p)
		}
		if p == root {
			return nil
		}

		rel := p[len(root)+1:]
		target := path.Join(outWorkflowsDir, rel)

		if d.IsDir() {
			if err := os.MkdirAll(filepath.Join(s.cfg.Target, filepath.FromSlash(target)), 0755); err != nil {
				return classify(err, "creating directory", target)
			}
			return nil
		}

		if s.ignored(rel) {
			s.console.LogOperation(ctx, log.Operation{Path: target, Kind: log.KindSkipped})
			return nil
		}

		if err := s.copyFile(ctx, p, target); err != nil {
			return err
		}
		staged = append(staged, target)
		return nil
	})
	if err != nil {
		return err
	}

	if s.cfg.Stage.Workflows || s.cfg.Stage.All {
		return s.stage(ctx, 0, staged...)
	}
	return nil
}

// 🔁 generateDays creates day1..dayN. The async path renders days
// concurrently but stages in day order so the staged-path set matches
// the sequential run exactly.
func (s *Scaffolder) generateDays(ctx context.Context) error {
	if s.cfg.Async {
		return s.generateDaysAsync(ctx)
	}

	for day := 1; day <= s.cfg.Days; day++ {
		s.console.StartDay(ctx, day)
		paths, err := s.writeDay(ctx, day)
		if err != nil {
			return errors.Errorf("scaffolding day %d: %w", day, err)
		}
		if err := s.stage(ctx, day, paths...); err != nil {
			return errors.Errorf("scaffolding day %d: %w", day, err)
		}
	}
	return nil
}

func (s *Scaffolder) generateDaysAsync(ctx context.Context) error {
	staged := make([][]string, s.cfg.Days+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(asyncDayLimit)
	for day := 1; day <= s.cfg.Days; day++ {
		g.Go(func() error {
			paths, err := s.writeDay(gctx, day)
			if err != nil {
				return errors.Errorf("scaffolding day %d: %w", day, err)
			}
			staged[day] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for day := 1; day <= s.cfg.Days; day++ {
		if err := s.stage(ctx, day, staged[day]...); err != nil {
			return errors.Errorf("scaffolding day %d: %w", day, err)
		}
	}
	return nil
}

// ✍️ writeDay creates day{N} and day{N}/src and renders the two day
// templates into them. Returns the paths to stage.
func (s *Scaffolder) writeDay(ctx context.Context, day int) ([]string, error) {
	name := dayName(day)

	dir := filepath.Join(s.cfg.Target, name)
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, classify(err, "creating day directory", name)
	}
	if err := os.Mkdir(filepath.Join(dir, daySourceDir), 0755); err != nil {
		return nil, classify(err, "creating day source directory", path.Join(name, daySourceDir))
	}

	rules := []text.Rule{{Token: s.cfg.Placeholder, Value: name}}
	if err := s.renderer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("building replacement rules: %w", err)
	}

	manifestOut := path.Join(name, dayManifestName)
	if err := s.renderFile(ctx, s.cfg.Layout.DayManifest, manifestOut, day, rules); err != nil {
		return nil, err
	}

	sourceOut := path.Join(name, daySourceDir, daySourceName)
	if err := s.renderFile(ctx, s.cfg.Layout.DaySource, sourceOut, day, rules); err != nil {
		return nil, err
	}

	return []string{manifestOut, sourceOut}, nil
}

// 🔄 renderFile renders one placeholder-bearing template into the target.
func (s *Scaffolder) renderFile(ctx context.Context, from, to string, day int, rules []text.Rule) error {
	f, err := s.src.Open(from)
	if err != nil {
		return classify(err, "reading template", from)
	}
	defer f.Close()

	result, err := s.renderer.Render(ctx, f, rules)
	if err != nil {
		return errors.Errorf("rendering template %s: %w", from, err)
	}

	if err := s.writeFile(to, result.Rendered, 0644); err != nil {
		return err
	}

	s.console.LogOperation(ctx, log.Operation{
		Path:         to,
		Kind:         log.KindRendered,
		Day:          day,
		Replacements: result.Count,
	})
	return nil
}

// 📄 copyFile copies one template verbatim, preserving the executable
// bit so the run script keeps working.
func (s *Scaffolder) copyFile(ctx context.Context, from, to string) error {
	data, err := fs.ReadFile(s.src, from)
	if err != nil {
		return classify(err, "reading template", from)
	}

	mode := os.FileMode(0644)
	if info, err := fs.Stat(s.src, from); err == nil && info.Mode()&0111 != 0 {
		mode = 0755
	}

	if err := s.writeFile(to, data, mode); err != nil {
		return err
	}

	s.console.LogOperation(ctx, log.Operation{Path: to, Kind: log.KindCopied})
	return nil
}

// writeFile creates the target exclusively: an existing file is a
// conflict, never silently overwritten.
func (s *Scaffolder) writeFile(to string, data []byte, mode os.FileMode) error {
	target := filepath.Join(s.cfg.Target, filepath.FromSlash(to))

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return classify(err, "creating", to)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return classify(err, "writing", to)
	}
	if err := f.Close(); err != nil {
		return classify(err, "closing", to)
	}
	return nil
}

// 🏷️ stage registers paths with the staging area and logs each one.
func (s *Scaffolder) stage(ctx context.Context, day int, paths ...string) error {
	if s.cfg.Stage.Disabled || len(paths) == 0 {
		return nil
	}

	if err := s.stager.Stage(ctx, paths...); err != nil {
		if errors.Is(err, vcs.ErrNoRepository) {
			return errors.Errorf("staging %d paths: %w", len(paths), ErrVCSUnavailable)
		}
		return errors.Errorf("staging %d paths: %w", len(paths), err)
	}

	for _, p := range paths {
		s.console.LogOperation(ctx, log.Operation{Path: p, Kind: log.KindStaged, Day: day})
	}
	return nil
}

// 🔍 ignored checks a workflow file against the ignore patterns.
func (s *Scaffolder) ignored(rel string) bool {
	for _, pattern := range s.cfg.IgnorePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// dayName derives the directory name for a day index: day1, day17,
// never zero padded.
func dayName(day int) string {
	return "day" + strconv.Itoa(day)
}
