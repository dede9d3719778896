package ideas

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

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

// State 对话状态
type State string

const (
	StateNoSession         State = "no_session"
	StateStreamingInitial  State = "streaming_initial"
	StateIdle              State = "idle"
	StateStreamingFollowUp State = "streaming_follow_up"
)

// Streaming 是否处于流式状态
func (s State) Streaming() bool {
	return s == StateStreamingInitial || s == StateStreamingFollowUp
}

var (
	ErrNoConversation     = apperrors.New(apperrors.CodeNoConversation, "no brainstorming conversation is open")
	ErrStreamInProgress   = apperrors.New(apperrors.CodeStreamInProgress, "a response is still streaming")
	ErrEmptyMessage       = apperrors.New(apperrors.CodeEmptyMessage, "message must not be empty")
	ErrInvalidCredential  = apperrors.New(apperrors.CodeInvalidCredential, "Invalid API Key. Please check your configuration.")
	ErrServiceUnavailable = apperrors.New(apperrors.CodeLLMUnavailable, "Failed to generate ideas. The AI service may be experiencing issues or the request may have been blocked.")
)

// classify 将流式调用错误翻译为面向用户的错误
func classify(err error) *apperrors.AppError {
	if service.IsCredentialError(err) {
		return ErrInvalidCredential.WithError(err)
	}
	return ErrServiceUnavailable.WithError(err)
}

// Update 一次片段投递，供传输层转发
type Update struct {
	Seq   uint64 `json:"seq"`
	Index int    `json:"index"`
	Chunk string `json:"chunk"`
	Text  string `json:"text"`
}

// Observer 接收片段投递；在持有锁之外调用
type Observer func(Update)

// Snapshot 只读视图
type Snapshot struct {
	State      State             `json:"state"`
	Seq        uint64            `json:"seq"`
	Transcript entity.Transcript `json:"transcript"`
	Error      string            `json:"error,omitempty"`
	HasSession bool              `json:"hasSession"`
}

// Brainstorm 单个会话句柄上的对话状态机
//
// 每次流式调用分配递增的序号；片段写入前在锁内核对序号，
// 被新调用取代的流所投递的片段直接丢弃。
type Brainstorm struct {
	models port.ChatModelFactory

	mu         sync.Mutex
	state      State
	seq        uint64
	conv       *Conversation
	transcript entity.Transcript
	errMsg     string
}

// NewBrainstorm 创建状态机
func NewBrainstorm(models port.ChatModelFactory) *Brainstorm {
	return &Brainstorm{models: models, state: StateNoSession}
}

// Start 新建会话并流式获取建议；取代任何进行中的流
func (b *Brainstorm) Start(ctx context.Context, data *entity.SessionData, observe Observer) (string, error) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.state = StateStreamingInitial
	b.conv = nil
	b.errMsg = ""
	b.transcript = entity.Transcript{}
	index := b.transcript.Append(entity.ChatRoleModel, "")
	b.mu.Unlock()

	ctx, span := tracer.Start(ctx, "ideas.start", traceAttrs(seq))
	defer span.End()

	modelName := b.models.ModelName(port.ModelRoleIdeas)
	chatModel, err := b.models.Get(ctx, port.ModelRoleIdeas)
	if err != nil {
		return "", b.fail(ctx, span, seq, "initial", err, true)
	}

	conv := NewConversation(chatModel, modelName)
	text, err := b.stream(ctx, conv, seq, index, prompt.BuildIdeasPrompt(data), observe)
	if err != nil {
		if errors.Is(err, ErrStale) {
			return text, err
		}
		return text, b.fail(ctx, span, seq, "initial", err, true)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		return text, ErrStale
	}
	b.conv = conv
	b.state = StateIdle
	metrics.IdeasStreamTotal.WithLabelValues("initial", "success").Inc()
	logger.Info(ctx, "ideas stream completed", "seq", seq, "length", len(text))
	return text, nil
}

// FollowUp 在已有会话上发送追问
func (b *Brainstorm) FollowUp(ctx context.Context, message string, observe Observer) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}

	b.mu.Lock()
	if b.conv == nil {
		b.mu.Unlock()
		return "", ErrNoConversation
	}
	if b.state.Streaming() {
		b.mu.Unlock()
		return "", ErrStreamInProgress
	}
	b.seq++
	seq := b.seq
	conv := b.conv
	b.state = StateStreamingFollowUp
	b.errMsg = ""
	b.transcript.Append(entity.ChatRoleUser, message)
	index := b.transcript.Append(entity.ChatRoleModel, "")
	b.mu.Unlock()

	ctx, span := tracer.Start(ctx, "ideas.follow_up", traceAttrs(seq))
	defer span.End()

	text, err := b.stream(ctx, conv, seq, index, message, observe)
	if err != nil {
		if errors.Is(err, ErrStale) {
			return text, err
		}
		return text, b.fail(ctx, span, seq, "follow_up", err, false)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		return text, ErrStale
	}
	b.state = StateIdle
	metrics.IdeasStreamTotal.WithLabelValues("follow_up", "success").Inc()
	logger.Info(ctx, "ideas follow-up completed", "seq", seq, "length", len(text))
	return text, nil
}

// stream 发送消息并将累积文本写入末尾的模型消息；成功时提交回复到会话历史
func (b *Brainstorm) stream(ctx context.Context, conv *Conversation, seq uint64, index int, text string, observe Observer) (string, error) {
	ctx = einoobs.Instrument(ctx, service.WorkflowIdeas, conv.ModelName())
	reader, err := conv.Send(ctx, text)
	if err != nil {
		return "", err
	}

	reply, err := Accumulate(reader, func(chunk, cumulative string) error {
		b.mu.Lock()
		if b.seq != seq {
			b.mu.Unlock()
			metrics.IdeasStaleChunksTotal.Inc()
			return ErrStale
		}
		if err := b.transcript.ReplaceLastText(cumulative); err != nil {
			b.mu.Unlock()
			return err
		}
		b.mu.Unlock()

		metrics.IdeasChunksTotal.Inc()
		if observe != nil {
			observe(Update{Seq: seq, Index: index, Chunk: chunk, Text: cumulative})
		}
		return nil
	})
	if err != nil {
		conv.Rollback()
		return reply, err
	}
	conv.Commit(reply)
	return reply, nil
}

// fail 记录错误；初始流失败时丢弃会话句柄，追问失败时保留
func (b *Brainstorm) fail(ctx context.Context, span trace.Span, seq uint64, kind string, err error, discard bool) error {
	appErr := classify(err)
	tracer.Fail(span, err)
	metrics.IdeasStreamTotal.WithLabelValues(kind, "error").Inc()
	logger.Error(ctx, "ideas stream failed", err, "seq", seq, "kind", kind)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		return ErrStale
	}
	if discard {
		b.conv = nil
		b.state = StateNoSession
	} else {
		b.state = StateIdle
	}
	b.errMsg = appErr.Message
	return appErr
}

// Reset 清空会话与记录；进行中的流随之失效
func (b *Brainstorm) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.state = StateNoSession
	b.conv = nil
	b.transcript = nil
	b.errMsg = ""
}

// DismissError 清除错误提示
func (b *Brainstorm) DismissError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = ""
}

// Snapshot 返回当前状态的副本
func (b *Brainstorm) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		State:      b.state,
		Seq:        b.seq,
		Transcript: b.transcript.Clone(),
		Error:      b.errMsg,
		HasSession: b.conv != nil,
	}
}

func traceAttrs(seq uint64) trace.SpanStartOption {
	return trace.WithAttributes(attribute.Int64("ideas.seq", int64(seq)))
}
