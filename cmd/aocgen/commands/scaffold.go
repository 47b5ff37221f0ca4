package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aocgen/cmd/aocgen/opts"
	"github.com/walteh/aocgen/pkg/scaffold"
	"github.com/walteh/aocgen/pkg/templates"
	"github.com/walteh/aocgen/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// NewScaffoldCmd creates a new scaffold command
func NewScaffoldCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scaffold",
		Aliases: []string{"new"},
		Short:   "Generate the yearly workspace from the template set",
		Long: `Scaffold assembles a new contest workspace. It will:
1. Copy the fixed top-level files from the template root
2. Copy the CI workflow definitions recursively
3. Generate one crate per day from the placeholder templates
4. Stage the generated files for the next commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunScaffold(cmd.Context(), ro)
		},
	}

	return cmd
}

// RunScaffold resolves the template source and executes the scaffold
// sequence. Shared between the bare root invocation and the scaffold
// subcommand.
func RunScaffold(ctx context.Context, ro *opts.RootOpts) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", "scaffold").Logger().WithContext(ctx)

	src, err := templates.Resolve(ctx, ro.Config.TemplateRoot)
	if err != nil {
		return errors.Errorf("resolving templates: %w", err)
	}
	defer src.Close()

	var stager vcs.Stager = vcs.NewGitStager(ro.Config.Target)
	if ro.Config.Stage.Disabled {
		stager = vcs.NewNopStager()
	}

	s, err := scaffold.New(scaffold.Options{
		Config:  ro.Config,
		Source:  src.FS(),
		Stager:  stager,
		Console: ro.Console,
	})
	if err != nil {
		return errors.Errorf("creating scaffolder: %w", err)
	}

	if err := s.Run(ctx); err != nil {
		return errors.Errorf("scaffolding workspace: %w", err)
	}

	return nil
}
