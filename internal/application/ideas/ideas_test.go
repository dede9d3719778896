package ideas

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbt-notepad/internal/application/port/porttest"
	"rbt-notepad/internal/domain/entity"
)

func sample() *entity.SessionData {
	return entity.ExampleSessionData(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
}

func TestAccumulate_ConcatenatesInArrivalOrder(t *testing.T) {
	var seen []string
	text, err := Accumulate(porttest.Chunks("Hel", "", "lo", " world"), func(chunk, cumulative string) error {
		seen = append(seen, cumulative)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
	assert.Equal(t, []string{"Hel", "Hello", "Hello world"}, seen)
}

func TestAccumulate_StopsOnApplyError(t *testing.T) {
	calls := 0
	text, err := Accumulate(porttest.Chunks("a", "b", "c"), func(chunk, cumulative string) error {
		calls++
		if calls == 2 {
			return ErrStale
		}
		return nil
	})
	require.ErrorIs(t, err, ErrStale)
	assert.Equal(t, "ab", text)
	assert.Equal(t, 2, calls)
}

func TestAccumulate_ReturnsPartialOnStreamError(t *testing.T) {
	boom := errors.New("stream broken")
	text, err := Accumulate(porttest.FailingStream(boom, "part", "ial"), nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", text)
}

func TestConversation_HistoryReusedAcrossSends(t *testing.T) {
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			return porttest.Chunks("reply"), nil
		},
	}
	conv := NewConversation(m, "fake")

	r, err := conv.Send(context.Background(), "first")
	require.NoError(t, err)
	reply, err := Accumulate(r, nil)
	require.NoError(t, err)
	conv.Commit(reply)

	_, err = conv.Send(context.Background(), "second")
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1], 3)
	assert.Equal(t, "first", calls[1][0].Content)
	assert.Equal(t, schema.Assistant, calls[1][1].Role)
	assert.Equal(t, "second", calls[1][2].Content)

	conv.Rollback()
	assert.Len(t, conv.History(), 2)
}

func TestConversation_SendFailureRollsBack(t *testing.T) {
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			return nil, errors.New("unavailable")
		},
	}
	conv := NewConversation(m, "fake")
	_, err := conv.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Empty(t, conv.History())
}

func TestBrainstorm_StartThenFollowUp(t *testing.T) {
	var n atomic.Int32
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			if n.Add(1) == 1 {
				return porttest.Chunks("Idea ", "one."), nil
			}
			return porttest.Chunks("Sure, ", "more."), nil
		},
	}
	b := NewBrainstorm(&porttest.Factory{Model: m})
	assert.Equal(t, StateNoSession, b.Snapshot().State)

	var updates []Update
	text, err := b.Start(context.Background(), sample(), func(u Update) { updates = append(updates, u) })
	require.NoError(t, err)
	assert.Equal(t, "Idea one.", text)
	require.Len(t, updates, 2)
	assert.Equal(t, Update{Seq: 1, Index: 0, Chunk: "Idea ", Text: "Idea "}, updates[0])
	assert.Equal(t, "Idea one.", updates[1].Text)

	snap := b.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.True(t, snap.HasSession)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, entity.ChatRoleModel, snap.Transcript[0].Role)

	text, err = b.FollowUp(context.Background(), "More?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sure, more.", text)

	snap = b.Snapshot()
	require.Len(t, snap.Transcript, 3)
	assert.Equal(t, entity.ChatMessage{Role: entity.ChatRoleUser, Text: "More?"}, snap.Transcript[1])
	assert.Equal(t, entity.ChatMessage{Role: entity.ChatRoleModel, Text: "Sure, more."}, snap.Transcript[2])

	// 追问携带首轮提示与回复
	calls := m.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1], 3)
	assert.Contains(t, calls[1][0].Content, "Board Certified Behavior Analyst")
	assert.Equal(t, "Idea one.", calls[1][1].Content)
}

func TestBrainstorm_FollowUpWithoutConversation(t *testing.T) {
	b := NewBrainstorm(&porttest.Factory{Model: &porttest.ChatModel{}})
	_, err := b.FollowUp(context.Background(), "hi", nil)
	require.ErrorIs(t, err, ErrNoConversation)

	_, err = b.FollowUp(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestBrainstorm_StartErrorDiscardsHandleKeepsPartial(t *testing.T) {
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			return porttest.FailingStream(errors.New("quota exceeded"), "Partial"), nil
		},
	}
	b := NewBrainstorm(&porttest.Factory{Model: m})

	_, err := b.Start(context.Background(), sample(), nil)
	require.ErrorIs(t, err, ErrServiceUnavailable)

	snap := b.Snapshot()
	assert.Equal(t, StateNoSession, snap.State)
	assert.False(t, snap.HasSession)
	assert.Equal(t, ErrServiceUnavailable.Message, snap.Error)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, "Partial", snap.Transcript[0].Text)

	b.DismissError()
	assert.Empty(t, b.Snapshot().Error)
}

func TestBrainstorm_FollowUpErrorKeepsHandle(t *testing.T) {
	var n atomic.Int32
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			if n.Add(1) == 1 {
				return porttest.Chunks("ok"), nil
			}
			return nil, errors.New("API key not valid")
		},
	}
	b := NewBrainstorm(&porttest.Factory{Model: m})
	_, err := b.Start(context.Background(), sample(), nil)
	require.NoError(t, err)

	_, err = b.FollowUp(context.Background(), "again", nil)
	require.ErrorIs(t, err, ErrInvalidCredential)

	snap := b.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.True(t, snap.HasSession)
	assert.Equal(t, ErrInvalidCredential.Message, snap.Error)
	require.Len(t, snap.Transcript, 3)
	assert.Empty(t, snap.Transcript[2].Text)
}

func TestBrainstorm_StaleStreamDiscarded(t *testing.T) {
	sr, sw := schema.Pipe[*schema.Message](4)
	var n atomic.Int32
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			if n.Add(1) == 1 {
				return sr, nil
			}
			return porttest.Chunks("new"), nil
		},
	}
	b := NewBrainstorm(&porttest.Factory{Model: m})

	updates := make(chan Update, 4)
	firstDone := make(chan error, 1)
	go func() {
		_, err := b.Start(context.Background(), sample(), func(u Update) { updates <- u })
		firstDone <- err
	}()

	sw.Send(schema.AssistantMessage("old", nil), nil)
	first := <-updates
	assert.Equal(t, uint64(1), first.Seq)

	text, err := b.Start(context.Background(), sample(), nil)
	require.NoError(t, err)
	assert.Equal(t, "new", text)

	sw.Send(schema.AssistantMessage(" stale", nil), nil)
	sw.Close()
	require.ErrorIs(t, <-firstDone, ErrStale)

	snap := b.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, uint64(2), snap.Seq)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, "new", snap.Transcript[0].Text)
	assert.Len(t, updates, 0)
}

func TestBrainstorm_ResetInvalidatesSession(t *testing.T) {
	m := &porttest.ChatModel{
		StreamFunc: func(ctx context.Context, input []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
			return porttest.Chunks("x"), nil
		},
	}
	b := NewBrainstorm(&porttest.Factory{Model: m})
	_, err := b.Start(context.Background(), sample(), nil)
	require.NoError(t, err)

	b.Reset()
	snap := b.Snapshot()
	assert.Equal(t, StateNoSession, snap.State)
	assert.Empty(t, snap.Transcript)
	_, err = b.FollowUp(context.Background(), "hi", nil)
	require.ErrorIs(t, err, ErrNoConversation)
}
