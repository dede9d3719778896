package eino

import (
	"context"
	"errors"
	"io"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rbt-notepad/internal/domain/service"
	"rbt-notepad/pkg/metrics"
	"rbt-notepad/pkg/tracer"
)

// startTimeKey 用于在 Context 中存储调用开始时间
type startTimeKey struct{}

// newChatModelCallbackHandler 创建模型调用的回调处理器
//
// 记录调用次数、耗时、Token 消耗，并为每次调用开启一个 Span。
// 流式输出在回调侧的副本读完后才结束 Span。
func newChatModelCallbackHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			ctx = context.WithValue(ctx, startTimeKey{}, time.Now())

			attrs := []attribute.KeyValue{
				attribute.String("eino.workflow", service.WorkflowFromContext(ctx)),
				attribute.String("llm.model", modelName(ctx, input)),
			}
			if info != nil {
				attrs = append(attrs,
					attribute.String("eino.node_name", info.Name),
					attribute.String("eino.type", info.Type),
				)
			}

			ctx, _ = tracer.Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
			return ctx
		},

		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			finish(ctx, output, nil)
			return ctx
		},

		OnEndWithStreamOutput: func(ctx context.Context, info *einocb.RunInfo, output *schema.StreamReader[*model.CallbackOutput]) context.Context {
			go func() {
				defer output.Close()

				var last *model.CallbackOutput
				for {
					chunk, err := output.Recv()
					if errors.Is(err, io.EOF) {
						break
					}
					if err != nil {
						finish(ctx, last, err)
						return
					}
					if chunk != nil && chunk.TokenUsage != nil {
						last = chunk
					}
				}
				finish(ctx, last, nil)
			}()
			return ctx
		},

		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			finish(ctx, nil, err)
			return ctx
		},
	}
}

// finish 上报指标并结束 Span
func finish(ctx context.Context, output *model.CallbackOutput, err error) {
	workflow := service.WorkflowFromContext(ctx)
	name := service.ModelFromContext(ctx)
	if output != nil && output.Config != nil && output.Config.Model != "" {
		name = output.Config.Model
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.LLMCallTotal.WithLabelValues(workflow, name, status).Inc()
	if d := elapsedSeconds(ctx); d > 0 {
		metrics.LLMCallDuration.WithLabelValues(workflow, name).Observe(d)
	}

	span := trace.SpanFromContext(ctx)
	if output != nil && output.TokenUsage != nil {
		metrics.LLMTokensUsed.WithLabelValues(workflow, name, "prompt").Add(float64(output.TokenUsage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(workflow, name, "completion").Add(float64(output.TokenUsage.CompletionTokens))
		span.SetAttributes(
			attribute.Int("llm.prompt_tokens", output.TokenUsage.PromptTokens),
			attribute.Int("llm.completion_tokens", output.TokenUsage.CompletionTokens),
		)
	}
	tracer.Fail(span, err)
	span.End()
}

// elapsedSeconds 计算从 OnStart 到当前的秒数，取不到开始时间时返回 0
func elapsedSeconds(ctx context.Context) float64 {
	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok || start.IsZero() {
		return 0
	}
	return time.Since(start).Seconds()
}

func modelName(ctx context.Context, in *model.CallbackInput) string {
	if in != nil && in.Config != nil && in.Config.Model != "" {
		return in.Config.Model
	}
	return service.ModelFromContext(ctx)
}
