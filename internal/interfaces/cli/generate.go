package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"rbt-notepad/internal/domain/entity"
)

func newGenerateCmd(r *runner) *cobra.Command {
	var (
		sessionPath string
		outPath     string
		raw         bool
		wrap        int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a session note from a session file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadValidSession(cmd, sessionPath)
			if err != nil {
				return err
			}

			return r.with(cmd.Context(), func(deps *Deps) error {
				note, err := deps.Generator.Generate(cmd.Context(), data)
				if err != nil {
					return err
				}

				if outPath != "" {
					if err := os.WriteFile(outPath, []byte(note), 0o644); err != nil {
						return fmt.Errorf("write note: %w", err)
					}
				}

				if raw {
					if wrap > 0 {
						note = wordwrap.String(note, wrap)
					}
					writeln(cmd.OutOrStdout(), note)
					return nil
				}

				theme := deps.Themes.Resolve(cmd.Context(), "", themeHint(deps)).Theme
				rendered, err := renderMarkdown(note, theme, wrap)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&sessionPath, "session", "s", "", "session file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the raw note to this file")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown source instead of rendering it")
	cmd.Flags().IntVar(&wrap, "wrap", 80, "wrap width, 0 disables wrapping")
	return cmd
}

// renderMarkdown 按主题在终端渲染 Markdown
func renderMarkdown(src string, theme entity.Theme, wrap int) (string, error) {
	style := "light"
	if theme == entity.ThemeDark {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
