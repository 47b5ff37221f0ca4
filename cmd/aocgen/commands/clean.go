package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aocgen/cmd/aocgen/opts"
	"github.com/walteh/aocgen/pkg/scaffold"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove scaffold output from the target directory",
		Long: `Clean deletes exactly the paths a scaffold run creates: the day
directories, the fixed top-level files, the cargo config directory and
the workflow directory. Files the scaffolder did not write are left
alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "clean").Logger().WithContext(ctx)

			if err := scaffold.Clean(ctx, ro.Config, ro.Console); err != nil {
				return errors.Errorf("cleaning workspace: %w", err)
			}

			return nil
		},
	}

	return cmd
}
