package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/aocgen/cmd/aocgen/commands"
	"github.com/walteh/aocgen/cmd/aocgen/opts"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	rootOpts := &opts.RootOpts{}

	// Create root command. Running it bare scaffolds the workspace, so
	// a plain `aocgen` in a fresh repository is the whole invocation.
	rootCmd := &cobra.Command{
		Use:   "aocgen",
		Short: "Scaffold a yearly Advent of Code workspace",
		Long: `aocgen copies a template set (run script, gitignore, workspace
manifest, cargo config, CI workflows) into a target directory, generates
day1..day25 crates from placeholder-bearing templates and stages the
generated files for the next commit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRootOpts(cmd.Context(), rootOpts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunScaffold(cmd.Context(), rootOpts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewScaffoldCmd(rootOpts),
		commands.NewCleanCmd(rootOpts),
		commands.NewTemplatesCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println("Command failed")
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
