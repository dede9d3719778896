// Package entity 定义领域实体
package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrLastGoal 至少保留一个目标
	ErrLastGoal = errors.New("at least one goal is required")
	// ErrGoalIndex 目标下标越界
	ErrGoalIndex = errors.New("goal index out of range")
	// ErrGoalField 未知的目标字段
	ErrGoalField = errors.New("unknown goal field")
)

// GoalField 目标的可编辑字段
type GoalField string

const (
	GoalFieldName     GoalField = "name"
	GoalFieldProgress GoalField = "progress"
	GoalFieldMethods  GoalField = "methods"
)

// Goal 单个治疗目标
type Goal struct {
	Name     string `json:"name" yaml:"name"`
	Progress string `json:"progress" yaml:"progress"`
	Methods  string `json:"methods" yaml:"methods"`
}

func (g Goal) complete() bool {
	return strings.TrimSpace(g.Name) != "" &&
		strings.TrimSpace(g.Progress) != "" &&
		strings.TrimSpace(g.Methods) != ""
}

// SessionData 一次治疗会话的表单数据
// 日期格式 YYYY-MM-DD，时间格式 HH:MM
type SessionData struct {
	ClientName      string `json:"clientName" yaml:"clientName"`
	SessionDate     string `json:"sessionDate" yaml:"sessionDate"`
	StartTime       string `json:"startTime" yaml:"startTime"`
	EndTime         string `json:"endTime" yaml:"endTime"`
	Venue           string `json:"venue" yaml:"venue"`
	PeoplePresent   string `json:"peoplePresent" yaml:"peoplePresent"`
	ClientHealth    string `json:"clientHealth" yaml:"clientHealth"`
	Goals           []Goal `json:"goals" yaml:"goals"`
	NextSessionPlan string `json:"nextSessionPlan" yaml:"nextSessionPlan"`
}

// NewSessionData 返回重置后的空表单（仅含一个空目标）
func NewSessionData() *SessionData {
	return &SessionData{Goals: []Goal{{}}}
}

// ExampleSessionData 返回示例会话，日期取 today
func ExampleSessionData(today time.Time) *SessionData {
	return &SessionData{
		ClientName:    "Alex P.",
		SessionDate:   today.Format(time.DateOnly),
		StartTime:     "09:00",
		EndTime:       "11:00",
		Venue:         "Client's home",
		PeoplePresent: "Client, RBT, Mother",
		ClientHealth:  "Client was in good health, energetic, and ready to engage in activities.",
		Goals: []Goal{
			{
				Name:     "Manding for preferred items",
				Progress: "Client independently manded for 3 different preferred toys (car, ball, blocks) on 4 out of 5 opportunities presented.",
				Methods:  "Natural Environment Teaching (NET), Positive Reinforcement (praise and access to item).",
			},
			{
				Name:     "Following 2-step instructions",
				Progress: "Client followed 2-step instructions with gestural prompts on 60% of trials. For example, 'Get your shoes and sit down'.",
				Methods:  "Discrete Trial Training (DTT), gestural prompting, token economy system.",
			},
		},
		NextSessionPlan: "Continue working on manding with new items. Fade gestural prompts for 2-step instructions and introduce social story for sharing.",
	}
}

// AddGoal 在末尾追加一个空目标
func (s *SessionData) AddGoal() {
	s.Goals = append(s.Goals, Goal{})
}

// UpdateGoal 修改第 i 个目标的单个字段
func (s *SessionData) UpdateGoal(i int, field GoalField, value string) error {
	if i < 0 || i >= len(s.Goals) {
		return fmt.Errorf("%w: %d", ErrGoalIndex, i)
	}
	g := &s.Goals[i]
	switch field {
	case GoalFieldName:
		g.Name = value
	case GoalFieldProgress:
		g.Progress = value
	case GoalFieldMethods:
		g.Methods = value
	default:
		return fmt.Errorf("%w: %q", ErrGoalField, field)
	}
	return nil
}

// RemoveGoal 删除第 i 个目标，其余目标保持原有顺序
func (s *SessionData) RemoveGoal(i int) error {
	if i < 0 || i >= len(s.Goals) {
		return fmt.Errorf("%w: %d", ErrGoalIndex, i)
	}
	if len(s.Goals) <= 1 {
		return ErrLastGoal
	}
	goals := make([]Goal, 0, len(s.Goals)-1)
	goals = append(goals, s.Goals[:i]...)
	goals = append(goals, s.Goals[i+1:]...)
	s.Goals = goals
	return nil
}

// Clone 深拷贝
func (s *SessionData) Clone() *SessionData {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Goals = append([]Goal(nil), s.Goals...)
	return &cp
}

// FieldErrors 字段名到错误信息的映射
type FieldErrors map[string]string

// Error 实现 error 接口，按字段名排序输出
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid session data: " + strings.Join(parts, "; ")
}

// GoalsErrorKey 目标列表为空时的错误键
const GoalsErrorKey = "goals"

// GoalErrorKey 第 i 个目标的错误键
func GoalErrorKey(i int) string {
	return fmt.Sprintf("goal_%d", i)
}

// Validate 校验必填字段与时间先后，通过时返回 nil
func (s *SessionData) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(s.ClientName) == "" {
		errs["clientName"] = "Client name is required."
	}
	if s.SessionDate == "" {
		errs["sessionDate"] = "Session date is required."
	}
	if s.StartTime == "" {
		errs["startTime"] = "Start time is required."
	}
	if s.EndTime == "" {
		errs["endTime"] = "End time is required."
	}
	// HH:MM 等长，字符串比较即时间先后
	if s.StartTime != "" && s.EndTime != "" && s.StartTime >= s.EndTime {
		errs["endTime"] = "End time must be after start time."
	}

	if len(s.Goals) == 0 {
		errs[GoalsErrorKey] = "At least one goal is required."
	}
	for i, g := range s.Goals {
		if !g.complete() {
			errs[GoalErrorKey(i)] = fmt.Sprintf("All fields for Goal %d are required.", i+1)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
