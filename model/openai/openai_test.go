package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcpdemos/agentspace-agent/model"
)

func TestModel_Info(t *testing.T) {
	m := NewModel()
	info := m.Info()
	assert.Equal(t, "openai", info.Provider)
	assert.NotEmpty(t, info.Name)
}

func TestModel_OptionsOverride(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = "gpt-4o"
	})
	assert.Equal(t, "gpt-4o", m.Info().Name)
}

func TestBuildMessages_ToolRoundTrip(t *testing.T) {
	req := model.Request{
		Instruction: "You are a weather assistant.",
		Messages: []model.Message{
			{Role: "user", Text: "Weather in Paris?"},
			{Role: "assistant", ToolCalls: []model.ToolCall{
				{ID: "call-1", Name: "get_weather", Args: map[string]any{"city": "Paris"}},
			}},
			{Role: "tool", ToolResults: []model.ToolResult{
				{ID: "call-1", Name: "get_weather", Result: map[string]any{"status": "success"}},
			}},
		},
	}

	// system + user + assistant tool call + tool response
	messages := buildMessages(req)
	assert.Len(t, messages, 4)
}
