// Package prompt 构建笔记生成与头脑风暴的提示词
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/schema"

	"rbt-notepad/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type ID string

const (
	IDNoteV1  ID = "note_v1"
	IDIdeasV1 ID = "ideas_v1"
)

var (
	cacheMu sync.RWMutex
	cache   = map[ID]string{}
)

// BuildNotePrompt 构建笔记生成提示词
func BuildNotePrompt(data *entity.SessionData) string {
	return mustRender(IDNoteV1, noteVars(data))
}

// BuildIdeasPrompt 构建头脑风暴提示词
func BuildIdeasPrompt(data *entity.SessionData) string {
	return mustRender(IDIdeasV1, ideasVars(data))
}

// Render 以 FString 格式渲染模板
func Render(ctx context.Context, id ID, vars map[string]any) (string, error) {
	tpl, err := template(id)
	if err != nil {
		return "", err
	}
	msgs, err := schema.UserMessage(tpl).Format(ctx, vars, schema.FString)
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", id, err)
	}
	if len(msgs) != 1 {
		return "", fmt.Errorf("render prompt %s: unexpected %d messages", id, len(msgs))
	}
	return msgs[0].Content, nil
}

// 模板为内置文件，变量集合固定，渲染失败只可能是编码错误
func mustRender(id ID, vars map[string]any) string {
	out, err := Render(context.Background(), id, vars)
	if err != nil {
		panic(err)
	}
	return out
}

func template(id ID) (string, error) {
	cacheMu.RLock()
	if tpl, ok := cache[id]; ok {
		cacheMu.RUnlock()
		return tpl, nil
	}
	cacheMu.RUnlock()

	b, err := templatesFS.ReadFile("templates/" + string(id) + ".user.txt")
	if err != nil {
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
	tpl := strings.TrimSpace(string(b))

	cacheMu.Lock()
	cache[id] = tpl
	cacheMu.Unlock()
	return tpl, nil
}

func noteVars(data *entity.SessionData) map[string]any {
	if data == nil {
		data = &entity.SessionData{}
	}
	return map[string]any{
		"client_name":       data.ClientName,
		"session_date":      data.SessionDate,
		"start_time":        data.StartTime,
		"end_time":          data.EndTime,
		"venue":             data.Venue,
		"people_present":    data.PeoplePresent,
		"client_health":     data.ClientHealth,
		"goals":             noteGoalsBlock(data.Goals),
		"next_session_plan": data.NextSessionPlan,
	}
}

func ideasVars(data *entity.SessionData) map[string]any {
	if data == nil {
		data = &entity.SessionData{}
	}
	return map[string]any{
		"client_name":       data.ClientName,
		"venue":             data.Venue,
		"goals":             ideasGoalsBlock(data.Goals),
		"next_session_plan": data.NextSessionPlan,
	}
}

// noteGoalsBlock 目标按顺序编号（从 1 开始）
func noteGoalsBlock(goals []entity.Goal) string {
	var b strings.Builder
	for i, g := range goals {
		fmt.Fprintf(&b, "\nGoal %d: %s\nClient's Performance/Progress: %s\nInstructional Methods Used: %s\n",
			i+1, g.Name, g.Progress, g.Methods)
	}
	return b.String()
}

func ideasGoalsBlock(goals []entity.Goal) string {
	var b strings.Builder
	for _, g := range goals {
		fmt.Fprintf(&b, "\n  - **Goal:** \"%s\"\n    - **Client's Progress:** %s\n    - **Methods Used:** %s",
			g.Name, g.Progress, g.Methods)
	}
	return b.String()
}
