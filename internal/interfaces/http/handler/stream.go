package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/interfaces/http/dto"
	apperrors "rbt-notepad/pkg/errors"
	"rbt-notepad/pkg/logger"
)

// streamRun 运行一次流式调用，片段通过 observe 投递
type streamRun func(ctx context.Context, observe ideas.Observer) (string, error)

type streamEvent struct {
	name  string
	data  any
	err   error
	final bool
}

// streamSSE 以 SSE 转发流式调用
//
// 调用在首个事件前失败（前置条件不满足、模型不可用）时返回普通 JSON 错误；
// 一旦开始写出，后续错误以 error 事件发送。模型流与连接解耦：
// 浏览器断开后流继续写入工作区，刷新页面即可看到结果。
func streamSSE(c *gin.Context, renderer MarkdownRenderer, run streamRun) {
	reqCtx := c.Request.Context()
	runCtx := context.WithoutCancel(reqCtx)

	events := make(chan streamEvent, 32)
	send := func(ev streamEvent) {
		select {
		case events <- ev:
		case <-reqCtx.Done():
		}
	}

	go func() {
		defer close(events)
		text, err := run(runCtx, func(u ideas.Update) {
			send(streamEvent{name: "content", data: u})
		})
		if err != nil {
			send(streamEvent{name: "error", err: err, final: true})
			return
		}
		send(streamEvent{name: "done", data: text, final: true})
	}()

	started := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !started && ev.err != nil {
				writeStreamError(c, ev.err)
				return
			}
			if !started {
				startSSE(c)
				started = true
			}
			switch {
			case ev.err != nil:
				c.SSEvent("error", streamErrorPayload(ev.err))
			case ev.name == "done":
				text, _ := ev.data.(string)
				c.SSEvent("done", &dto.StreamDoneEvent{
					Seq:  lastSeq(c),
					Text: text,
					HTML: renderHTML(reqCtx, renderer, text),
				})
			default:
				u, _ := ev.data.(ideas.Update)
				c.Set("sse_seq", u.Seq)
				c.SSEvent(ev.name, u)
			}
			c.Writer.Flush()
			if ev.final {
				return
			}
		case <-reqCtx.Done():
			logger.Debug(reqCtx, "sse client disconnected; stream continues in workspace")
			return
		}
	}
}

func startSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
}

func lastSeq(c *gin.Context) uint64 {
	v, _ := c.Get("sse_seq")
	seq, _ := v.(uint64)
	return seq
}

func writeStreamError(c *gin.Context, err error) {
	if errors.Is(err, ideas.ErrStale) {
		dto.Error(c, http.StatusConflict, staleMessage)
		return
	}
	dto.FromAppError(c, err)
}

const staleMessage = "This response was replaced by a newer request."

func streamErrorPayload(err error) gin.H {
	if errors.Is(err, ideas.ErrStale) {
		return gin.H{"message": staleMessage, "stale": true}
	}
	appErr := apperrors.AsAppError(err)
	return gin.H{"message": appErr.Message, "code": appErr.Code}
}
