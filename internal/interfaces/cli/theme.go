package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbt-notepad/internal/domain/entity"
)

func newThemeCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the preferred theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd.Context(), func(deps *Deps) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()
				hint := themeHint(deps)

				if len(args) == 0 {
					res := deps.Themes.Resolve(ctx, "", hint)
					_, _ = fmt.Fprintf(out, "%s (%s)\n", res.Theme, res.Source)
					return nil
				}

				if args[0] == "toggle" {
					next, err := deps.Themes.Toggle(ctx, "", hint)
					if err != nil {
						return err
					}
					writeln(out, next)
					return nil
				}

				theme, err := entity.ParseTheme(args[0])
				if err != nil {
					return err
				}
				if err := deps.Themes.Set(ctx, "", theme); err != nil {
					return err
				}
				writeln(out, theme)
				return nil
			})
		},
	}
}
