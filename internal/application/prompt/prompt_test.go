package prompt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbt-notepad/internal/domain/entity"
)

func sample() *entity.SessionData {
	return entity.ExampleSessionData(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
}

func TestBuildNotePrompt_ContainsSessionDetails(t *testing.T) {
	p := BuildNotePrompt(sample())

	assert.Contains(t, p, "Registered Behavior Technician (RBT)")
	assert.Contains(t, p, `"happy," "good," "well," or "struggled."`)
	assert.Contains(t, p, "- **Client Name:** Alex P.")
	assert.Contains(t, p, "- **Session Date:** 2024-01-05")
	assert.Contains(t, p, "- **Session Time:** 09:00 - 11:00")
	assert.Contains(t, p, "- **Venue:** Client's home")
	assert.Contains(t, p, "- **People Present:** Client, RBT, Mother")
	assert.Contains(t, p, "Goal 1: Manding for preferred items")
	assert.Contains(t, p, "Goal 2: Following 2-step instructions")
	assert.Contains(t, p, "Instructional Methods Used: Discrete Trial Training (DTT), gestural prompting, token economy system.")
	assert.Contains(t, p, "- **Plan for Next Session:** Continue working on manding")
	assert.True(t, strings.HasSuffix(p, "Now, generate the complete session note."))

	// 目标按输入顺序出现
	assert.Less(t, strings.Index(p, "Goal 1:"), strings.Index(p, "Goal 2:"))
}

func TestBuildNotePrompt_Idempotent(t *testing.T) {
	data := sample()
	assert.Equal(t, BuildNotePrompt(data), BuildNotePrompt(data))
	assert.Equal(t, BuildIdeasPrompt(data), BuildIdeasPrompt(data))
}

func TestBuildNotePrompt_EmptyFieldsKeepStructure(t *testing.T) {
	p := BuildNotePrompt(entity.NewSessionData())
	assert.Contains(t, p, "- **Client Name:** \n")
	assert.Contains(t, p, "- **Session Time:**  - \n")
	assert.Contains(t, p, "Goal 1: \n")
}

func TestBuildNotePrompt_BracesInValues(t *testing.T) {
	data := sample()
	data.ClientHealth = "noted {braces} in text"
	assert.Contains(t, BuildNotePrompt(data), "noted {braces} in text")
}

func TestBuildIdeasPrompt(t *testing.T) {
	p := BuildIdeasPrompt(sample())

	assert.Contains(t, p, "Board Certified Behavior Analyst (BCBA)")
	assert.Contains(t, p, "provide 3-5 concrete suggestions")
	assert.Contains(t, p, "typical session setting (Client's home)")
	assert.Contains(t, p, "- **Client:** Alex P.")
	assert.Contains(t, p, `- **Goal:** "Manding for preferred items"`)
	assert.Contains(t, p, "- **Methods Used:** Natural Environment Teaching (NET)")
	assert.Contains(t, p, "ask me a follow-up question")
}

func TestRender_UnknownID(t *testing.T) {
	_, err := Render(context.Background(), ID("missing"), nil)
	require.Error(t, err)
}
