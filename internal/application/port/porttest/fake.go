// Package porttest 提供 port 接口的测试替身
package porttest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"rbt-notepad/internal/application/port"
)

// ChatModel 可编程的 model.BaseChatModel
type ChatModel struct {
	GenerateFunc func(ctx context.Context, input []*schema.Message) (*schema.Message, error)
	StreamFunc   func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error)

	mu    sync.Mutex
	calls [][]*schema.Message
}

var _ model.BaseChatModel = (*ChatModel)(nil)

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.record(input)
	if m.GenerateFunc == nil {
		return schema.AssistantMessage("", nil), nil
	}
	return m.GenerateFunc(ctx, input)
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.record(input)
	if m.StreamFunc == nil {
		return Chunks(), nil
	}
	return m.StreamFunc(ctx, input)
}

// Calls 返回每次调用收到的消息列表
func (m *ChatModel) Calls() [][]*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]*schema.Message(nil), m.calls...)
}

func (m *ChatModel) record(input []*schema.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]*schema.Message(nil), input...))
}

// Chunks 由文本片段构造流
func Chunks(parts ...string) *schema.StreamReader[*schema.Message] {
	msgs := make([]*schema.Message, 0, len(parts))
	for _, p := range parts {
		msgs = append(msgs, schema.AssistantMessage(p, nil))
	}
	return schema.StreamReaderFromArray(msgs)
}

// FailingStream 先发送 parts，再返回 err
func FailingStream(err error, parts ...string) *schema.StreamReader[*schema.Message] {
	sr, sw := schema.Pipe[*schema.Message](len(parts) + 1)
	go func() {
		defer sw.Close()
		for _, p := range parts {
			sw.Send(schema.AssistantMessage(p, nil), nil)
		}
		sw.Send(nil, err)
	}()
	return sr
}

// Factory 对所有角色返回同一个模型
type Factory struct {
	Model model.BaseChatModel
	Err   error
	Names map[port.ModelRole]string
}

var _ port.ChatModelFactory = (*Factory)(nil)

func (f *Factory) Get(_ context.Context, _ port.ModelRole) (model.BaseChatModel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Model, nil
}

func (f *Factory) ModelName(role port.ModelRole) string {
	if name, ok := f.Names[role]; ok {
		return name
	}
	return "fake-" + string(role)
}
