package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/aocgen/cmd/aocgen/opts"
	"github.com/walteh/aocgen/pkg/templates"
	"gitlab.com/tozd/go/errors"
)

// NewTemplatesCmd creates the templates command group
func NewTemplatesCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the template set",
	}

	cmd.AddCommand(newTemplatesInitCmd(ro))

	return cmd
}

// newTemplatesInitCmd creates the templates init command
func newTemplatesInitCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write the embedded starter template set to a directory",
		Long: `Init materializes the built-in template set (run script, gitignore,
workspace manifest, cargo config, CI workflow and the two dayXX
templates) so a new year can start without assembling templates by
hand. Defaults to the configured template root; never overwrites
existing files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "templates init").Logger().WithContext(ctx)

			dir := ro.Config.TemplateRoot
			if len(args) == 1 {
				dir = args[0]
			}

			if err := templates.WriteStarter(ctx, dir); err != nil {
				return errors.Errorf("writing starter templates: %w", err)
			}

			ro.Console.Successf("wrote starter template set to %s", dir)
			return nil
		},
	}
}
