package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/config"
)

// EinoFactory 按模型角色管理 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	models map[port.ModelRole]model.BaseChatModel
	mu     sync.RWMutex
}

var _ port.ChatModelFactory = (*EinoFactory)(nil)

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[port.ModelRole]model.BaseChatModel),
	}
}

// ModelName 返回角色对应的模型标识
func (f *EinoFactory) ModelName(role port.ModelRole) string {
	switch role {
	case port.ModelRoleNote:
		return f.config.Models.Note
	case port.ModelRoleIdeas:
		return f.config.Models.Ideas
	default:
		return ""
	}
}

// Get 获取角色对应的 ChatModel，首次使用时创建
func (f *EinoFactory) Get(ctx context.Context, role port.ModelRole) (model.BaseChatModel, error) {
	f.mu.RLock()
	m, ok := f.models[role]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[role]; ok {
		return m, nil
	}

	modelName := f.ModelName(role)
	if modelName == "" {
		return nil, fmt.Errorf("model role %q not configured", role)
	}

	maxTokens := f.config.MaxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      f.config.APIKey,
		BaseURL:     f.config.BaseURL,
		Model:       modelName,
		MaxTokens:   &maxTokens,
		Temperature: ptrFloat32(float32(f.config.Temperature)),
		Timeout:     f.config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", role, err)
	}

	f.models[role] = chatModel
	return chatModel, nil
}

func ptrFloat32(f float32) *float32 {
	return &f
}
