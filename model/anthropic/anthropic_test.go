package anthropic

import (
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"

	"github.com/gcpdemos/agentspace-agent/model"
)

func TestModel_Info(t *testing.T) {
	m := NewModel()
	info := m.Info()
	assert.Equal(t, "anthropic", info.Provider)
	assert.NotEmpty(t, info.Name)
}

func TestModel_OptionsOverride(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = anthropicsdk.Model("claude-sonnet-4-20250514")
	})
	assert.Equal(t, "claude-sonnet-4-20250514", m.Info().Name)
}

func TestBuildMessages_ToolResultsBecomeUserTurn(t *testing.T) {
	messages := buildMessages([]model.Message{
		{Role: "user", Text: "Weather in Paris?"},
		{Role: "assistant", ToolCalls: []model.ToolCall{
			{ID: "call-1", Name: "get_weather", Args: map[string]any{"city": "Paris"}},
		}},
		{Role: "tool", ToolResults: []model.ToolResult{
			{ID: "call-1", Name: "get_weather", Result: map[string]any{"status": "success"}},
		}},
	})

	// user + assistant tool use + user tool result
	assert.Len(t, messages, 3)
}
