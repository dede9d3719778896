package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/application/note"
	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/config"
	"rbt-notepad/pkg/logger"
	"rbt-notepad/pkg/metrics"
)

// Store 进程内工作区表，按空闲时长淘汰
type Store struct {
	models    port.ChatModelFactory
	generator NoteGenerator
	idleTTL   time.Duration
	interval  time.Duration
	now       func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewStore 创建工作区表
func NewStore(cfg *config.Config, models port.ChatModelFactory, generator *note.Generator) *Store {
	ttl := cfg.Workspace.IdleTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	interval := cfg.Workspace.JanitorInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Store{
		models:     models,
		generator:  generator,
		idleTTL:    ttl,
		interval:   interval,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// GetOrCreate 返回 id 对应的工作区；id 为空或已过期时新建
func (s *Store) GetOrCreate(id string) (*Workspace, bool) {
	now := s.now()
	if id != "" {
		s.mu.RLock()
		w, ok := s.workspaces[id]
		s.mu.RUnlock()
		if ok {
			w.touch(now)
			return w, false
		}
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workspaces[id]; ok {
		w.touch(now)
		return w, false
	}
	w := New(id, s.generator, ideas.NewBrainstorm(s.models))
	w.touch(now)
	s.workspaces[id] = w
	metrics.WorkspacesActive.Set(float64(len(s.workspaces)))
	return w, true
}

// Get 查找工作区
func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workspaces[id]
	return w, ok
}

// Len 工作区数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// Evict 移除空闲超过 TTL 的工作区，返回移除数量
func (s *Store) Evict() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, w := range s.workspaces {
		if w.idleSince(now) > s.idleTTL {
			w.Brainstorm().Reset()
			delete(s.workspaces, id)
			removed++
		}
	}
	metrics.WorkspacesActive.Set(float64(len(s.workspaces)))
	return removed
}

// Run 周期性清理，直到 ctx 结束
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				logger.Debug(ctx, "evicted idle workspaces", "count", n, "remaining", s.Len())
			}
		}
	}
}
