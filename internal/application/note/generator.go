// Package note 调用语言模型生成会话笔记
package note

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"

	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/application/prompt"
	"rbt-notepad/internal/domain/entity"
	"rbt-notepad/internal/domain/service"
	einoobs "rbt-notepad/internal/observability/eino"
	apperrors "rbt-notepad/pkg/errors"
	"rbt-notepad/pkg/logger"
	"rbt-notepad/pkg/metrics"
	"rbt-notepad/pkg/tracer"
)

// Generator 笔记生成器
type Generator struct {
	models port.ChatModelFactory
}

// NewGenerator 创建笔记生成器
func NewGenerator(models port.ChatModelFactory) *Generator {
	return &Generator{models: models}
}

// Generate 以单条用户消息请求快速模型，原样返回生成文本；不重试
func (g *Generator) Generate(ctx context.Context, data *entity.SessionData) (string, error) {
	ctx, span := tracer.Start(ctx, "note.generate")
	defer span.End()

	start := time.Now()
	text, err := g.generate(ctx, data)
	metrics.NoteGenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		appErr := ClassifyLLMError(err)
		status := "unavailable"
		if errors.Is(appErr, ErrInvalidCredential) {
			status = "invalid_credential"
		}
		metrics.NoteGenerationTotal.WithLabelValues(status).Inc()
		tracer.Fail(span, err)
		logger.Error(ctx, "note generation failed", err, "status", status)
		return "", appErr
	}

	metrics.NoteGenerationTotal.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("note.length", len(text)))
	logger.Info(ctx, "note generated", "length", len(text))
	return text, nil
}

func (g *Generator) generate(ctx context.Context, data *entity.SessionData) (string, error) {
	chatModel, err := g.models.Get(ctx, port.ModelRoleNote)
	if err != nil {
		return "", err
	}

	ctx = einoobs.Instrument(ctx, service.WorkflowNote, g.models.ModelName(port.ModelRoleNote))
	msg, err := chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt.BuildNotePrompt(data)),
	})
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", apperrors.New(apperrors.CodeLLMUnavailable, "empty model response")
	}
	return msg.Content, nil
}
