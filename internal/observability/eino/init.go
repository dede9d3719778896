package eino

import (
	"context"
	"sync"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"

	"rbt-notepad/internal/domain/service"
)

var initOnce sync.Once

// Init 注册 Eino 全局 callbacks（进程级一次）。
func Init() {
	initOnce.Do(func() {
		handler := cbtemplate.NewHandlerHelper().
			ChatModel(newChatModelCallbackHandler()).
			Handler()
		einocallbacks.AppendGlobalHandlers(handler)
	})
}

// Instrument 为直接调用（不经过 graph/chain）的模型请求初始化回调上下文，
// 使全局 handler 生效，同时写入 workflow 与模型标签。
func Instrument(ctx context.Context, workflow, modelName string) context.Context {
	ctx = service.WithWorkflowModel(ctx, workflow, modelName)
	return einocallbacks.InitCallbacks(ctx, &einocallbacks.RunInfo{
		Name:      workflow,
		Type:      "OpenAI",
		Component: components.ComponentOfChatModel,
	})
}
