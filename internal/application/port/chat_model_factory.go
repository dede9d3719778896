package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ModelRole 模型角色：同一凭据下按用途选择不同能力的模型
type ModelRole string

const (
	// ModelRoleNote 笔记生成，使用快速模型
	ModelRoleNote ModelRole = "note"
	// ModelRoleIdeas 头脑风暴对话，使用能力更强的模型
	ModelRoleIdeas ModelRole = "ideas"
)

// ChatModelFactory 定义应用层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, role ModelRole) (model.BaseChatModel, error)
	// ModelName 返回角色对应的模型标识，用于指标与日志
	ModelName(role ModelRole) string
}
