package scaffold

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/aocgen/pkg/config"
	"github.com/walteh/aocgen/pkg/log"
	"github.com/walteh/aocgen/pkg/vcs"
)

// fakeStager records staged paths, optionally failing every call.
type fakeStager struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeStager) Stage(ctx context.Context, paths ...string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, paths...)
	return nil
}

func (f *fakeStager) IsRepository(ctx context.Context) bool {
	return f.err == nil
}

func (f *fakeStager) staged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.paths))
	copy(out, f.paths)
	return out
}

// writeTemplateSet lays out a complete template root on disk.
func writeTemplateSet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"run.sh":                 "#!/bin/sh\nexec cargo run -p \"day$1\"\n",
		"gitignore":              "target/\n",
		"Cargo.toml":             "[workspace]\nmembers = [\"day*\"]\n",
		"config.toml":            "[build]\ntarget-dir = \"target\"\n",
		"workflows/ci.yaml":      "name: ci\n",
		"workflows/release.yaml": "name: release\n",
		"day/Cargo.toml":         "[package]\nname = \"dayXX\"\nversion = \"0.1.0\"\n",
		"day/main.rs":            "// solution for dayXX\nfn main() {}\n",
	}
	for p, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
		mode := os.FileMode(0644)
		if strings.HasSuffix(p, ".sh") {
			mode = 0755
		}
		require.NoError(t, os.WriteFile(target, []byte(content), mode))
	}
	return dir
}

func newTestConfig(t *testing.T, templateRoot, target string, days int) *config.Config {
	t.Helper()
	cfg := &config.Config{
		TemplateRoot: templateRoot,
		Target:       target,
		Days:         days,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newScaffolder(t *testing.T, cfg *config.Config, stager vcs.Stager) *Scaffolder {
	t.Helper()
	s, err := New(Options{
		Config:  cfg,
		Source:  os.DirFS(cfg.TemplateRoot),
		Stager:  stager,
		Console: log.New(io.Discard, zerolog.Disabled),
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiredOptions(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestScaffolder_Run(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 25)
	stager := &fakeStager{}

	require.NoError(t, newScaffolder(t, cfg, stager).Run(context.Background()))

	// Fixed top-level files.
	for _, p := range []string{"run.sh", ".gitignore", "Cargo.toml", ".cargo/config.toml", ".github/workflows/ci.yaml", ".github/workflows/release.yaml"} {
		_, err := os.Stat(filepath.Join(target, filepath.FromSlash(p)))
		require.NoError(t, err, "expected %s", p)
	}

	// Run script keeps its executable bit.
	info, err := os.Stat(filepath.Join(target, "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111)

	// Exactly 25 day directories, numbered contiguously from 1.
	for day := 1; day <= 25; day++ {
		name := dayName(day)

		manifest, err := os.ReadFile(filepath.Join(target, name, "Cargo.toml"))
		require.NoError(t, err, "day %d manifest", day)
		source, err := os.ReadFile(filepath.Join(target, name, "src", "main.rs"))
		require.NoError(t, err, "day %d source", day)

		assert.NotContains(t, string(manifest), "dayXX")
		assert.NotContains(t, string(source), "dayXX")
		assert.Contains(t, string(manifest), name)
		assert.Contains(t, string(source), name)
	}
	_, err = os.Stat(filepath.Join(target, "day0"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(target, "day26"))
	assert.True(t, os.IsNotExist(err))

	// Staged set: manifest, tool config and the 50 day files. The run
	// script, ignore file and workflow files are copied but not staged.
	staged := stager.staged()
	assert.Len(t, staged, 52)
	assert.Contains(t, staged, "Cargo.toml")
	assert.Contains(t, staged, ".cargo/config.toml")
	assert.Contains(t, staged, "day1/Cargo.toml")
	assert.Contains(t, staged, "day25/src/main.rs")
	assert.NotContains(t, staged, "run.sh")
	assert.NotContains(t, staged, ".gitignore")
	assert.NotContains(t, staged, ".github/workflows/ci.yaml")
}

func TestScaffolder_Run_Substitution(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 7)

	require.NoError(t, newScaffolder(t, cfg, &fakeStager{}).Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(target, "day7", "src", "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, "// solution for day7\nfn main() {}\n", string(data))
}

func TestScaffolder_Run_StageAll(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 2)
	cfg.Stage.All = true
	stager := &fakeStager{}

	require.NoError(t, newScaffolder(t, cfg, stager).Run(context.Background()))

	staged := stager.staged()
	assert.Contains(t, staged, "run.sh")
	assert.Contains(t, staged, ".gitignore")
	assert.Contains(t, staged, ".github/workflows/ci.yaml")
	assert.Contains(t, staged, ".github/workflows/release.yaml")
}

func TestScaffolder_Run_StageWorkflows(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 2)
	cfg.Stage.Workflows = true
	stager := &fakeStager{}

	require.NoError(t, newScaffolder(t, cfg, stager).Run(context.Background()))

	staged := stager.staged()
	assert.Contains(t, staged, ".github/workflows/ci.yaml")
	assert.NotContains(t, staged, "run.sh")
}

func TestScaffolder_Run_StageDisabled(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 2)
	cfg.Stage.Disabled = true
	stager := &fakeStager{err: vcs.ErrNoRepository}

	// A broken stager is never called when staging is off.
	require.NoError(t, newScaffolder(t, cfg, stager).Run(context.Background()))
}

func TestScaffolder_Run_SecondRunConflicts(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 3)

	require.NoError(t, newScaffolder(t, cfg, &fakeStager{}).Run(context.Background()))

	err := newScaffolder(t, cfg, &fakeStager{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetConflict)
}

func TestScaffolder_Run_MissingDayTemplate(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 3)

	require.NoError(t, os.Remove(filepath.Join(templateRoot, "day", "main.rs")))

	err := newScaffolder(t, cfg, &fakeStager{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceMissing)
	assert.Contains(t, err.Error(), "day/main.rs")

	// Validation fails before anything is created.
	entries, readErr := os.ReadDir(target)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestScaffolder_Run_MissingWorkflowDir(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 3)

	require.NoError(t, os.RemoveAll(filepath.Join(templateRoot, "workflows")))

	err := newScaffolder(t, cfg, &fakeStager{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestScaffolder_Run_VCSUnavailable(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 3)
	stager := &fakeStager{err: vcs.ErrNoRepository}

	err := newScaffolder(t, cfg, stager).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVCSUnavailable)

	// Files written before the staging call stay on disk.
	_, statErr := os.Stat(filepath.Join(target, "Cargo.toml"))
	assert.NoError(t, statErr)
}

func TestScaffolder_Run_IgnorePatterns(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	require.NoError(t, os.WriteFile(filepath.Join(templateRoot, "workflows", "scratch.bak"), []byte("x"), 0644))

	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 1)
	cfg.IgnorePatterns = []string{"**/*.bak"}

	require.NoError(t, newScaffolder(t, cfg, &fakeStager{}).Run(context.Background()))

	_, err := os.Stat(filepath.Join(target, ".github", "workflows", "scratch.bak"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(target, ".github", "workflows", "ci.yaml"))
	assert.NoError(t, err)
}

func TestScaffolder_Run_Async(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 25)
	cfg.Async = true
	stager := &fakeStager{}

	require.NoError(t, newScaffolder(t, cfg, stager).Run(context.Background()))

	// Same observable state as the sequential run.
	for day := 1; day <= 25; day++ {
		_, err := os.Stat(filepath.Join(target, dayName(day), "src", "main.rs"))
		require.NoError(t, err)
	}
	staged := stager.staged()
	assert.Len(t, staged, 52)
	// Day files staged in day order even with concurrent rendering.
	assert.Equal(t, "day1/Cargo.toml", staged[2])
	assert.Equal(t, "day25/src/main.rs", staged[51])
}

func TestScaffolder_Run_AsyncFailureNamesDay(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 25)
	cfg.Async = true

	// Pre-create one day directory to force a conflict mid-flight.
	require.NoError(t, os.Mkdir(filepath.Join(target, "day13"), 0755))

	err := newScaffolder(t, cfg, &fakeStager{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTargetConflict)
	assert.Contains(t, err.Error(), "day 13")
}

func TestClean(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 3)
	console := log.New(io.Discard, zerolog.Disabled)

	require.NoError(t, newScaffolder(t, cfg, &fakeStager{}).Run(context.Background()))
	require.NoError(t, Clean(context.Background(), cfg, console))

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Cleaning an already-clean target is fine.
	require.NoError(t, Clean(context.Background(), cfg, console))
}

func TestClean_LeavesForeignFiles(t *testing.T) {
	templateRoot := writeTemplateSet(t)
	target := t.TempDir()
	cfg := newTestConfig(t, templateRoot, target, 2)
	console := log.New(io.Discard, zerolog.Disabled)

	require.NoError(t, newScaffolder(t, cfg, &fakeStager{}).Run(context.Background()))
	require.NoError(t, os.WriteFile(filepath.Join(target, "notes.md"), []byte("mine"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(target, ".github", "CODEOWNERS"), []byte("@walteh"), 0644))

	require.NoError(t, Clean(context.Background(), cfg, console))

	_, err := os.Stat(filepath.Join(target, "notes.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, ".github", "CODEOWNERS"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "day1"))
	assert.True(t, os.IsNotExist(err))
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "day1", dayName(1))
	assert.Equal(t, "day17", dayName(17))
	assert.Equal(t, "day25", dayName(25))
}
