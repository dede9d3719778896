package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rbt-notepad/internal/domain/entity"
)

// readSession 读取 YAML 或 JSON 会话文件，"-" 表示标准输入
func readSession(path string, stdin io.Reader) (*entity.SessionData, error) {
	if path == "" {
		return nil, errors.New("--session is required")
	}

	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	data := &entity.SessionData{}
	if err := yaml.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return data, nil
}

// loadValidSession 读取并校验会话，校验失败时列出全部字段错误
func loadValidSession(cmd *cobra.Command, path string) (*entity.SessionData, error) {
	data, err := readSession(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if ferrs := data.Validate(); ferrs != nil {
		return nil, ferrs
	}
	return data, nil
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example session file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(entity.ExampleSessionData(time.Now())); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newValidateCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a session file without calling the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadValidSession(cmd, sessionPath); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), "session is valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&sessionPath, "session", "s", "", "session file (YAML or JSON, - for stdin)")
	return cmd
}
