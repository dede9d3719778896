package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rbt-notepad/internal/application/ideas"
	apperrors "rbt-notepad/pkg/errors"
)

// 交互模式下结束对话的输入
var quitWords = map[string]bool{"exit": true, "quit": true, "/q": true}

func newIdeasCmd(r *runner) *cobra.Command {
	var (
		sessionPath string
		once        bool
	)

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Brainstorm session enhancement ideas and ask follow-up questions",
		Long: "Streams suggestions for the session, then reads follow-up questions from stdin\n" +
			"one line at a time. An empty line, EOF, or \"exit\" ends the conversation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadValidSession(cmd, sessionPath)
			if err != nil {
				return err
			}
			if sessionPath == "-" {
				once = true
			}

			return r.with(cmd.Context(), func(deps *Deps) error {
				out := cmd.OutOrStdout()
				b := ideas.NewBrainstorm(deps.Models)
				echo := func(u ideas.Update) {
					_, _ = io.WriteString(out, u.Chunk)
				}

				if _, err := b.Start(cmd.Context(), data, echo); err != nil {
					writeln(out)
					return err
				}
				writeln(out)
				if once {
					return nil
				}

				return followUps(cmd, b, echo)
			})
		},
	}
	cmd.Flags().StringVarP(&sessionPath, "session", "s", "", "session file (YAML or JSON, - for stdin)")
	cmd.Flags().BoolVar(&once, "once", false, "print the initial suggestions and exit")
	return cmd
}

// followUps 逐行读取追问；单次失败只提示，会话保留
func followUps(cmd *cobra.Command, b *ideas.Brainstorm, echo ideas.Observer) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "\n> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		msg := strings.TrimSpace(scanner.Text())
		if msg == "" || quitWords[strings.ToLower(msg)] {
			return nil
		}

		if _, err := b.FollowUp(cmd.Context(), msg, echo); err != nil {
			writeln(out)
			writeln(cmd.ErrOrStderr(), "error:", ErrorMessage(err))
			continue
		}
		writeln(out)
	}
}

// ErrorMessage 面向用户的错误信息
func ErrorMessage(err error) string {
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err).Message
	}
	return err.Error()
}
