// Package entity 定义领域实体
package entity

import (
	"errors"
	"strings"
)

// ErrNoModelMessage 末尾消息不是模型消息时无法替换
var ErrNoModelMessage = errors.New("last message is not a model message")

// ChatRole 对话角色
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage 对话中的一条消息
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Transcript 按时间顺序排列的对话记录
type Transcript []ChatMessage

// Append 追加消息，返回其下标
func (t *Transcript) Append(role ChatRole, text string) int {
	*t = append(*t, ChatMessage{Role: role, Text: text})
	return len(*t) - 1
}

// ReplaceLastText 用累积文本替换末尾的模型消息
func (t Transcript) ReplaceLastText(text string) error {
	if len(t) == 0 || t[len(t)-1].Role != ChatRoleModel {
		return ErrNoModelMessage
	}
	t[len(t)-1].Text = text
	return nil
}

// Clone 拷贝
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	return append(Transcript(nil), t...)
}

// ShareText 分享用的纯文本对话
func (t Transcript) ShareText() string {
	blocks := make([]string, 0, len(t))
	for _, m := range t {
		speaker := "You"
		if m.Role == ChatRoleModel {
			speaker = "AI Assistant"
		}
		blocks = append(blocks, speaker+":\n"+m.Text)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}
