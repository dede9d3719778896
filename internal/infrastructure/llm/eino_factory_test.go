package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbt-notepad/internal/application/port"
	"rbt-notepad/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{LLM: config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     "http://127.0.0.1:1/v1",
		Temperature: 0.7,
		MaxTokens:   256,
		Models:      config.ModelsConfig{Note: "gemini-2.5-flash", Ideas: "gemini-2.5-pro"},
	}}
}

func TestEinoFactory_ModelName(t *testing.T) {
	f := NewEinoFactory(testConfig())
	assert.Equal(t, "gemini-2.5-flash", f.ModelName(port.ModelRoleNote))
	assert.Equal(t, "gemini-2.5-pro", f.ModelName(port.ModelRoleIdeas))
	assert.Empty(t, f.ModelName(port.ModelRole("other")))
}

func TestEinoFactory_CachesPerRole(t *testing.T) {
	f := NewEinoFactory(testConfig())
	ctx := context.Background()

	a, err := f.Get(ctx, port.ModelRoleNote)
	require.NoError(t, err)
	b, err := f.Get(ctx, port.ModelRoleNote)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := f.Get(ctx, port.ModelRoleIdeas)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestEinoFactory_UnknownRole(t *testing.T) {
	f := NewEinoFactory(testConfig())
	_, err := f.Get(context.Background(), port.ModelRole("other"))
	require.Error(t, err)
}
