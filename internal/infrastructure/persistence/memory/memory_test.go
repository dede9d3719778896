package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbt-notepad/internal/domain/repository"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPreferenceRepository(t *testing.T) {
	repo := NewPreferenceRepository(0)
	ctx := context.Background()

	_, err := repo.Get(ctx, "theme")
	require.ErrorIs(t, err, repository.ErrPreferenceNotFound)

	require.NoError(t, repo.Set(ctx, "theme", "dark"))
	v, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestPreferenceRepository_ExpiresAndSweeps(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	repo := NewPreferenceRepository(time.Hour)
	repo.now = clock.now
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "theme:a", "dark"))
	clock.advance(30 * time.Minute)
	require.NoError(t, repo.Set(ctx, "theme:b", "light"))

	clock.advance(45 * time.Minute)
	_, err := repo.Get(ctx, "theme:a")
	require.ErrorIs(t, err, repository.ErrPreferenceNotFound)
	v, err := repo.Get(ctx, "theme:b")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	// 下一次写入时清理过期项
	require.NoError(t, repo.Set(ctx, "theme:c", "dark"))
	assert.Equal(t, 2, repo.Len())
}

func TestRateLimiter_Burst(t *testing.T) {
	l := NewRateLimiter(1, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestRateLimiter_EvictsIdleLimiters(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewRateLimiter(60, 2)
	l.now = clock.now
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		ok, err := l.Allow(ctx, fmt.Sprintf("ip-%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 100, l.Len())

	// 耗尽令牌的桶在回满之前同样会被保留
	ok, _ := l.Allow(ctx, "busy")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "busy")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "busy")
	assert.False(t, ok)

	// 每秒回一个令牌：一分钟后空闲桶已满，busy 也已回满
	clock.advance(time.Minute)
	ok, _ = l.Allow(ctx, "busy")
	assert.True(t, ok)
	assert.Equal(t, 1, l.Len())

	// 被清理的键重新出现时按全新的桶处理
	for i := 0; i < 2; i++ {
		ok, _ = l.Allow(ctx, "ip-0")
		assert.True(t, ok)
	}
	ok, _ = l.Allow(ctx, "ip-0")
	assert.False(t, ok)
}

func TestRateLimiter_SweepKeepsDrainedBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	// 每分钟一个令牌，一分钟后只回 1 个，桶未满
	l := NewRateLimiter(1, 2)
	l.now = clock.now
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow(ctx, "a")
		assert.True(t, ok)
	}

	clock.advance(time.Minute)
	ok, _ := l.Allow(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Len())

	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)
}
