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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🗂️ LayoutArgs names the files expected under the template root
type LayoutArgs struct {
	RunScript    string `json:"run_script,omitempty" yaml:"run_script,omitempty" hcl:"run_script,optional"`          // Run script copied verbatim
	Ignore       string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                      // Ignore file template (written as .gitignore)
	Manifest     string `json:"manifest,omitempty" yaml:"manifest,omitempty" hcl:"manifest,optional"`                // Workspace manifest template
	ToolConfig   string `json:"tool_config,omitempty" yaml:"tool_config,omitempty" hcl:"tool_config,optional"`       // Cargo config (written under .cargo/)
	WorkflowsDir string `json:"workflows_dir,omitempty" yaml:"workflows_dir,omitempty" hcl:"workflows_dir,optional"` // CI workflow directory, copied recursively
	DayManifest  string `json:"day_manifest,omitempty" yaml:"day_manifest,omitempty" hcl:"day_manifest,optional"`    // Per-day manifest template bearing the placeholder
	DaySource    string `json:"day_source,omitempty" yaml:"day_source,omitempty" hcl:"day_source,optional"`          // Per-day source template bearing the placeholder
}

// 🏷️ StageArgs controls which generated paths are registered with the
// version control staging area. The observed scaffold flow stages the
// workspace manifest, the cargo config and the per-day files but not the
// run script, the ignore file or the workflow files; Workflows and All
// exist to close that gap deliberately rather than silently.
type StageArgs struct {
	Disabled  bool `json:"disabled,omitempty" yaml:"disabled,omitempty" hcl:"disabled,optional"`    // Skip staging entirely
	Workflows bool `json:"workflows,omitempty" yaml:"workflows,omitempty" hcl:"workflows,optional"` // Also stage copied workflow files
	All       bool `json:"all,omitempty" yaml:"all,omitempty" hcl:"all,optional"`                   // Stage every file the scaffolder writes
}

// 📚 Config represents the complete configuration
type Config struct {
	TemplateRoot   string      `json:"template_root,omitempty" yaml:"template_root,omitempty" hcl:"template_root,optional"`
	Target         string      `json:"target,omitempty" yaml:"target,omitempty" hcl:"target,optional"`
	Days           int         `json:"days,omitempty" yaml:"days,omitempty" hcl:"days,optional"`
	Placeholder    string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty" hcl:"placeholder,optional"`
	Async          bool        `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	IgnorePatterns []string    `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Layout         *LayoutArgs `json:"layout,omitempty" yaml:"layout,omitempty" hcl:"layout,block"`
	Stage          *StageArgs  `json:"stage,omitempty" yaml:"stage,omitempty" hcl:"stage,block"`
}

// 🏭 Default returns the configuration used when no config file exists:
// templates read from ./templates, 25 days scaffolded into the current
// directory, placeholder token dayXX.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads the configuration from a file, falling back to
// Default when the file does not exist. Explicitly named but missing
// config files are still an error only for the caller to decide; here a
// missing file simply means "use defaults".
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	cfg, err := Load(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.TemplateRoot == "" {
		cfg.TemplateRoot = "templates"
	}
	if cfg.Target == "" {
		cfg.Target = "."
	}
	if cfg.Days == 0 {
		cfg.Days = 25
	}
	if cfg.Days < 1 {
		return errors.Errorf("days must be at least 1, got %d", cfg.Days)
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = "dayXX"
	}

	if cfg.Layout == nil {
		cfg.Layout = &LayoutArgs{}
	}
	if cfg.Layout.RunScript == "" {
		cfg.Layout.RunScript = "run.sh"
	}
	if cfg.Layout.Ignore == "" {
		cfg.Layout.Ignore = "gitignore"
	}
	if cfg.Layout.Manifest == "" {
		cfg.Layout.Manifest = "Cargo.toml"
	}
	if cfg.Layout.ToolConfig == "" {
		cfg.Layout.ToolConfig = "config.toml"
	}
	if cfg.Layout.WorkflowsDir == "" {
		cfg.Layout.WorkflowsDir = "workflows"
	}
	if cfg.Layout.DayManifest == "" {
		cfg.Layout.DayManifest = "day/Cargo.toml"
	}
	if cfg.Layout.DaySource == "" {
		cfg.Layout.DaySource = "day/main.rs"
	}

	if cfg.Stage == nil {
		cfg.Stage = &StageArgs{}
	}

	// Template roots that are not remote references are plain paths.
	if !strings.HasPrefix(cfg.TemplateRoot, "github.com/") {
		cfg.TemplateRoot = filepath.Clean(cfg.TemplateRoot)
	}
	cfg.Target = filepath.Clean(cfg.Target)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (%d days, token %q)", cfg.TemplateRoot, cfg.Target, cfg.Days, cfg.Placeholder)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
