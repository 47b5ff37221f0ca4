package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aocgen/cmd/aocgen/opts"
	"github.com/walteh/aocgen/pkg/config"
	"github.com/walteh/aocgen/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile     string
	debug          bool
	templateRoot   string
	target         string
	days           int
	async          bool
	noStage        bool
	stageWorkflows bool
	stageAll       bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".aocgen.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVarP(&templateRoot, "templates", "t", "", "template root (directory or github.com/owner/repo[@ref])")
	cmd.PersistentFlags().StringVarP(&target, "target", "C", "", "target directory to scaffold into")
	cmd.PersistentFlags().IntVarP(&days, "days", "n", 0, "number of day workspaces to generate")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "generate day workspaces concurrently")
	cmd.PersistentFlags().BoolVar(&noStage, "no-stage", false, "skip version control staging")
	cmd.PersistentFlags().BoolVar(&stageWorkflows, "stage-workflows", false, "also stage copied workflow files")
	cmd.PersistentFlags().BoolVar(&stageAll, "stage-all", false, "stage every file the scaffolder writes")
}

// initRootOpts loads config, applies flag overrides and wires the
// console logger. Runs after flag parsing, before any command.
func initRootOpts(ctx context.Context, ro *opts.RootOpts, cmd *cobra.Command) error {
	setupLogging()

	cfg, err := config.LoadOrDefault(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("templates") {
		cfg.TemplateRoot = templateRoot
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("async") {
		cfg.Async = async
	}
	if flags.Changed("no-stage") {
		cfg.Stage.Disabled = noStage
	}
	if flags.Changed("stage-workflows") {
		cfg.Stage.Workflows = stageWorkflows
	}
	if flags.Changed("stage-all") {
		cfg.Stage.All = stageAll
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	ro.Config = cfg
	ro.Console = log.New(os.Stdout, level)
	return nil
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
