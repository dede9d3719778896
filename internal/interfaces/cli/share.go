package cli

import (
	"github.com/spf13/cobra"

	"rbt-notepad/internal/application/export"
)

func newShareCmd(r *runner) *cobra.Command {
	var (
		notePath   string
		clientName string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Copy a note to the clipboard",
		Long: "Copies the note to the system clipboard. When no clipboard tool is available\n" +
			"(for example over SSH) the terminal is asked to copy it via OSC52.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := readNote(notePath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			return r.with(cmd.Context(), func(deps *Deps) error {
				payload := export.NotePayload(clientName, note)
				outcome, err := deps.Sharer.Share(cmd.Context(), payload)
				if err != nil {
					return err
				}
				switch outcome {
				case export.ShareCopied:
					writeln(cmd.ErrOrStderr(), "Copied to clipboard!")
				case export.ShareShared:
					writeln(cmd.ErrOrStderr(), "Shared.")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&notePath, "note", "n", "", "note file (- for stdin)")
	cmd.Flags().StringVar(&clientName, "client", "", "client name used in the share title")
	return cmd
}
