package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() *SessionData {
	return ExampleSessionData(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
}

func TestNewSessionData_HasOneEmptyGoal(t *testing.T) {
	s := NewSessionData()
	require.Len(t, s.Goals, 1)
	assert.Equal(t, Goal{}, s.Goals[0])
	assert.Empty(t, s.ClientName)
}

func TestExampleSessionData(t *testing.T) {
	s := validSession()
	assert.Equal(t, "Alex P.", s.ClientName)
	assert.Equal(t, "2024-01-05", s.SessionDate)
	require.Len(t, s.Goals, 2)
	assert.Nil(t, s.Validate())
}

func TestValidate_EndBeforeStart(t *testing.T) {
	s := validSession()
	s.StartTime = "10:00"
	s.EndTime = "09:00"

	errs := s.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "End time must be after start time.", errs["endTime"])
	assert.Len(t, errs, 1)
}

func TestValidate_EqualTimesRejected(t *testing.T) {
	s := validSession()
	s.StartTime = "10:00"
	s.EndTime = "10:00"
	assert.Contains(t, s.Validate(), "endTime")
}

func TestValidate_RequiredFields(t *testing.T) {
	s := NewSessionData()
	s.ClientName = "   "

	errs := s.Validate()
	assert.Equal(t, "Client name is required.", errs["clientName"])
	assert.Equal(t, "Session date is required.", errs["sessionDate"])
	assert.Equal(t, "Start time is required.", errs["startTime"])
	assert.Equal(t, "End time is required.", errs["endTime"])
	assert.Equal(t, "All fields for Goal 1 are required.", errs["goal_0"])
}

func TestValidate_IncompleteSecondGoal(t *testing.T) {
	s := validSession()
	s.Goals[1].Methods = " "

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "All fields for Goal 2 are required.", errs[GoalErrorKey(1)])
	assert.Contains(t, errs.Error(), "goal_1")
}

func TestValidate_RequiresAtLeastOneGoal(t *testing.T) {
	s := validSession()
	s.Goals = nil

	errs := s.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "At least one goal is required.", errs[GoalsErrorKey])

	s.Goals = []Goal{}
	assert.Contains(t, s.Validate(), GoalsErrorKey)
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	s := validSession()
	s.Venue = ""
	s.PeoplePresent = ""
	s.ClientHealth = ""
	s.NextSessionPlan = ""
	assert.Nil(t, s.Validate())
}

func TestGoals_AddUpdateRemove(t *testing.T) {
	s := NewSessionData()
	s.AddGoal()
	s.AddGoal()
	require.Len(t, s.Goals, 3)

	require.NoError(t, s.UpdateGoal(0, GoalFieldName, "first"))
	require.NoError(t, s.UpdateGoal(1, GoalFieldProgress, "second"))
	require.NoError(t, s.UpdateGoal(2, GoalFieldMethods, "third"))
	require.ErrorIs(t, s.UpdateGoal(3, GoalFieldName, "x"), ErrGoalIndex)
	require.ErrorIs(t, s.UpdateGoal(0, GoalField("other"), "x"), ErrGoalField)

	require.NoError(t, s.RemoveGoal(1))
	require.Len(t, s.Goals, 2)
	assert.Equal(t, "first", s.Goals[0].Name)
	assert.Equal(t, "third", s.Goals[1].Methods)

	require.NoError(t, s.RemoveGoal(0))
	require.ErrorIs(t, s.RemoveGoal(0), ErrLastGoal)
	require.ErrorIs(t, s.RemoveGoal(5), ErrGoalIndex)
	assert.Len(t, s.Goals, 1)
}

func TestClone_DoesNotAlias(t *testing.T) {
	s := validSession()
	cp := s.Clone()
	cp.Goals[0].Name = "changed"
	cp.ClientName = "other"

	assert.Equal(t, "Manding for preferred items", s.Goals[0].Name)
	assert.Equal(t, "Alex P.", s.ClientName)
}

func TestTranscript_ShareText(t *testing.T) {
	var tr Transcript
	tr.Append(ChatRoleModel, "Idea one")
	tr.Append(ChatRoleUser, "More?")
	idx := tr.Append(ChatRoleModel, "")
	require.Equal(t, 2, idx)
	require.NoError(t, tr.ReplaceLastText("Idea two"))

	assert.Equal(t, "AI Assistant:\nIdea one\n\n---\n\nYou:\nMore?\n\n---\n\nAI Assistant:\nIdea two", tr.ShareText())
}

func TestTranscript_ReplaceLastTextRequiresModel(t *testing.T) {
	var tr Transcript
	require.ErrorIs(t, tr.ReplaceLastText("x"), ErrNoModelMessage)
	tr.Append(ChatRoleUser, "hi")
	require.ErrorIs(t, tr.ReplaceLastText("x"), ErrNoModelMessage)
}

func TestNoteState_EditLifecycle(t *testing.T) {
	var n NoteState
	assert.True(t, n.Empty())
	n.Reset("original")
	require.ErrorIs(t, n.SetDraft("nope"), ErrNotEditing)

	n.BeginEdit()
	require.NoError(t, n.SetDraft("edited"))
	assert.Equal(t, "edited", n.Current())
	n.Cancel()
	assert.Equal(t, "original", n.Current())
	assert.False(t, n.Editing)

	n.BeginEdit()
	require.NoError(t, n.SetDraft("edited again"))
	n.Save()
	assert.Equal(t, "edited again", n.Committed)
	assert.Equal(t, "edited again", n.Current())
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	assert.Equal(t, ThemeLight, th.Toggle())

	_, err = ParseTheme("sepia")
	require.Error(t, err)
}
