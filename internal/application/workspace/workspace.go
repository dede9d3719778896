// Package workspace 每个浏览器对应的表单/结果控制器
package workspace

import (
	"context"
	"sync"
	"time"

	"rbt-notepad/internal/application/ideas"
	"rbt-notepad/internal/domain/entity"
	apperrors "rbt-notepad/pkg/errors"
)

// MainTab 主标签页
type MainTab string

const (
	MainTabForm    MainTab = "form"
	MainTabResults MainTab = "results"
)

// ResultsTab 结果标签页
type ResultsTab string

const (
	ResultsTabNote  ResultsTab = "note"
	ResultsTabIdeas ResultsTab = "ideas"
)

var (
	// ErrSuperseded 结果已被更新的生成请求取代
	ErrSuperseded = apperrors.New(apperrors.CodeSuperseded, "a newer note generation replaced this request")
	// ErrNoNote 尚未生成笔记
	ErrNoNote = apperrors.New(apperrors.CodeNotFound, "no note has been generated yet")
	// ErrNoSession 尚未提交表单
	ErrNoSession = apperrors.New(apperrors.CodeNotFound, "no session data has been submitted yet")
	// ErrResultsUnavailable 结果页尚不可用
	ErrResultsUnavailable = apperrors.New(apperrors.CodeConflict, "results are not available yet")
	// ErrNotEditing 不在编辑模式
	ErrNotEditing = apperrors.New(apperrors.CodeConflict, "note is not in edit mode")
)

// NoteGenerator 笔记生成能力
type NoteGenerator interface {
	Generate(ctx context.Context, data *entity.SessionData) (string, error)
}

// Snapshot 渲染用的只读视图
type Snapshot struct {
	ID               string              `json:"id"`
	Session          *entity.SessionData `json:"session,omitempty"`
	Note             entity.NoteState    `json:"note"`
	NoteError        string              `json:"noteError,omitempty"`
	NoteLoading      bool                `json:"noteLoading"`
	Ideas            ideas.Snapshot      `json:"ideas"`
	ResultsAvailable bool                `json:"resultsAvailable"`
	MainTab          MainTab             `json:"mainTab"`
	ResultsTab       ResultsTab          `json:"resultsTab"`
}

// Workspace 持有一次浏览会话的全部界面状态
type Workspace struct {
	id         string
	generator  NoteGenerator
	brainstorm *ideas.Brainstorm

	mu               sync.Mutex
	session          *entity.SessionData
	note             entity.NoteState
	noteErr          string
	noteSeq          uint64
	noteLoading      bool
	resultsAvailable bool
	mainTab          MainTab
	resultsTab       ResultsTab
	lastSeen         time.Time
}

// New 创建工作区
func New(id string, generator NoteGenerator, brainstorm *ideas.Brainstorm) *Workspace {
	return &Workspace{
		id:         id,
		generator:  generator,
		brainstorm: brainstorm,
		mainTab:    MainTabForm,
		resultsTab: ResultsTabNote,
		lastSeen:   time.Now(),
	}
}

// ID 工作区标识
func (w *Workspace) ID() string {
	return w.id
}

// Brainstorm 头脑风暴状态机
func (w *Workspace) Brainstorm() *ideas.Brainstorm {
	return w.brainstorm
}

// GenerateNote 清空旧笔记与对话后生成新笔记
// 只有最新一次请求的结果会被采用，较早的请求返回 ErrSuperseded
func (w *Workspace) GenerateNote(ctx context.Context, data *entity.SessionData) (string, error) {
	data = data.Clone()

	w.mu.Lock()
	w.noteSeq++
	seq := w.noteSeq
	w.session = data
	w.note.Reset("")
	w.noteErr = ""
	w.noteLoading = true
	w.mu.Unlock()

	w.brainstorm.Reset()

	text, err := w.generator.Generate(ctx, data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.noteSeq != seq {
		return "", ErrSuperseded
	}
	w.noteLoading = false
	w.resultsAvailable = true
	w.mainTab = MainTabResults
	w.resultsTab = ResultsTabNote
	if err != nil {
		w.noteErr = apperrors.AsAppError(err).Message
		return "", err
	}
	w.note.Reset(text)
	return text, nil
}

// StartIdeas 以最近提交的会话数据开始头脑风暴，并切换到建议标签页
func (w *Workspace) StartIdeas(ctx context.Context, observe ideas.Observer) (string, error) {
	w.mu.Lock()
	data := w.session
	if data == nil {
		w.mu.Unlock()
		return "", ErrNoSession
	}
	w.resultsAvailable = true
	w.mainTab = MainTabResults
	w.resultsTab = ResultsTabIdeas
	w.mu.Unlock()

	return w.brainstorm.Start(ctx, data, observe)
}

// SendFollowUp 追问
func (w *Workspace) SendFollowUp(ctx context.Context, message string, observe ideas.Observer) (string, error) {
	return w.brainstorm.FollowUp(ctx, message, observe)
}

// BeginEdit 进入编辑模式
func (w *Workspace) BeginEdit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.note.Empty() {
		return ErrNoNote
	}
	w.note.BeginEdit()
	return nil
}

// UpdateDraft 修改草稿
func (w *Workspace) UpdateDraft(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.note.SetDraft(text); err != nil {
		return ErrNotEditing
	}
	return nil
}

// SaveEdit 保存草稿
func (w *Workspace) SaveEdit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.note.Editing {
		return ErrNotEditing
	}
	w.note.Save()
	return nil
}

// CancelEdit 放弃草稿
func (w *Workspace) CancelEdit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.note.Editing {
		return ErrNotEditing
	}
	w.note.Cancel()
	return nil
}

// DismissNoteError 关闭笔记错误提示
func (w *Workspace) DismissNoteError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.noteErr = ""
}

// DismissChatError 关闭对话错误提示
func (w *Workspace) DismissChatError() {
	w.brainstorm.DismissError()
}

// SetTabs 切换标签页；结果不可用时不能进入结果页
func (w *Workspace) SetTabs(main MainTab, results ResultsTab) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if main == MainTabResults && !w.resultsAvailable {
		return ErrResultsUnavailable
	}
	switch main {
	case MainTabForm, MainTabResults:
		w.mainTab = main
	case "":
	default:
		return apperrors.ErrInvalidParam.WithDetail("unknown main tab: " + string(main))
	}
	switch results {
	case ResultsTabNote, ResultsTabIdeas:
		w.resultsTab = results
	case "":
	default:
		return apperrors.ErrInvalidParam.WithDetail("unknown results tab: " + string(results))
	}
	return nil
}

// ExportSource 导出与分享使用的会话数据与当前笔记文本
func (w *Workspace) ExportSource() (*entity.SessionData, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.note.Empty() {
		return nil, "", ErrNoNote
	}
	return w.session.Clone(), w.note.Current(), nil
}

// Snapshot 返回当前状态副本
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	snap := Snapshot{
		ID:               w.id,
		Session:          w.session.Clone(),
		Note:             w.note,
		NoteError:        w.noteErr,
		NoteLoading:      w.noteLoading,
		ResultsAvailable: w.resultsAvailable,
		MainTab:          w.mainTab,
		ResultsTab:       w.resultsTab,
	}
	w.mu.Unlock()

	snap.Ideas = w.brainstorm.Snapshot()
	return snap
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}
