package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyModel    llmCtxKey = "llm_model"
)

// 模型调用所属的业务流程
const (
	WorkflowNote  = "note"
	WorkflowIdeas = "ideas"
)

func WithWorkflow(ctx context.Context, workflow string) context.Context {
	if ctx == nil {
		return nil
	}
	w := strings.TrimSpace(workflow)
	if w == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyWorkflow, w)
}

// WithModel 记录本次调用使用的模型标识，供回调在输出缺少模型名时兜底
func WithModel(ctx context.Context, modelName string) context.Context {
	if ctx == nil {
		return nil
	}
	m := strings.TrimSpace(modelName)
	if m == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyModel, m)
}

func WithWorkflowModel(ctx context.Context, workflow, modelName string) context.Context {
	return WithModel(WithWorkflow(ctx, workflow), modelName)
}

func WorkflowFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyWorkflow)
}

func ModelFromContext(ctx context.Context) string {
	return stringFromContext(ctx, llmCtxKeyModel)
}

func stringFromContext(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return "unknown"
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
