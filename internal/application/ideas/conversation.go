// Package ideas 头脑风暴对话：多轮会话、流式累积与状态机
package ideas

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrStale 流已被更新的调用取代，停止读取
var ErrStale = errors.New("stream superseded by a newer call")

// Conversation 会话句柄：绑定一个模型，保存共享的消息历史
type Conversation struct {
	model     model.BaseChatModel
	modelName string

	mu      sync.Mutex
	history []*schema.Message
	pending bool
}

// NewConversation 创建会话句柄
func NewConversation(m model.BaseChatModel, modelName string) *Conversation {
	return &Conversation{model: m, modelName: modelName}
}

// ModelName 会话绑定的模型标识
func (c *Conversation) ModelName() string {
	return c.modelName
}

// Send 追加用户消息并以完整历史发起流式请求
// 流打开失败时回滚该用户消息
func (c *Conversation) Send(ctx context.Context, text string) (*schema.StreamReader[*schema.Message], error) {
	c.mu.Lock()
	if c.pending {
		c.history = c.history[:len(c.history)-1]
	}
	c.history = append(c.history, schema.UserMessage(text))
	c.pending = true
	input := append([]*schema.Message(nil), c.history...)
	c.mu.Unlock()

	reader, err := c.model.Stream(ctx, input)
	if err != nil {
		c.Rollback()
		return nil, err
	}
	return reader, nil
}

// Commit 将完整的模型回复写入历史，后续消息复用该上下文
func (c *Conversation) Commit(reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, schema.AssistantMessage(reply, nil))
	c.pending = false
}

// Rollback 撤销尚未得到回复的用户消息
func (c *Conversation) Rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		c.history = c.history[:len(c.history)-1]
		c.pending = false
	}
}

// History 历史消息副本
func (c *Conversation) History() []*schema.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*schema.Message(nil), c.history...)
}

// Accumulate 按到达顺序读取流，每个非空片段后以累积文本回调 apply
// apply 返回错误时停止读取并返回该错误；总是关闭 reader
func Accumulate(reader *schema.StreamReader[*schema.Message], apply func(chunk, text string) error) (string, error) {
	defer reader.Close()

	var b strings.Builder
	for {
		msg, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		if msg == nil || msg.Content == "" {
			continue
		}
		b.WriteString(msg.Content)
		if apply != nil {
			if err := apply(msg.Content, b.String()); err != nil {
				return b.String(), err
			}
		}
	}
}
