package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rbt-notepad/internal/application/export"
	"rbt-notepad/internal/domain/entity"
)

// readNote 读取笔记文件，"-" 表示标准输入
func readNote(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", errors.New("--note is required")
	}
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}

func newExportCmd(r *runner) *cobra.Command {
	var (
		sessionPath string
		notePath    string
		format      string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a note as TXT, DOCX or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := readNote(notePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			// 抬头只需要元数据，不要求表单完整
			var data *entity.SessionData
			if sessionPath != "" {
				if data, err = readSession(sessionPath, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			return r.with(cmd.Context(), func(deps *Deps) error {
				file, err := deps.Exports.Export(cmd.Context(), format, export.NewDocument(data, note))
				if err != nil {
					return err
				}

				path := file.Name
				if out != "" {
					path = out
					if info, err := os.Stat(out); err == nil && info.IsDir() {
						path = filepath.Join(out, file.Name)
					}
				}
				if err := os.WriteFile(path, file.Content, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				writeln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&sessionPath, "session", "s", "", "session file supplying client, date and time")
	cmd.Flags().StringVarP(&notePath, "note", "n", "", "note file (- for stdin)")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatPDF, "export format: txt|docx|pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory (default: generated name in the current directory)")
	return cmd
}
