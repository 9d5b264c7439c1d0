// Package agent defines the weather/time demo agent: its identity,
// instruction and the two mock lookup tools it exposes. The same definition
// feeds both the local runner and the Agent Engine deployment payload.
package agent

import (
	"github.com/gcpdemos/agentspace-agent/tool"
)

// Definition describes a conversational agent: a name, the model it runs
// on, an instruction and the tools it may call.
type Definition struct {
	Name        string
	Model       string
	Description string
	Instruction string
	Tools       []tool.Tool
}

// FindTool returns the tool with the given name, or nil if the agent does
// not expose it.
func (d *Definition) FindTool(name string) tool.Tool {
	for _, t := range d.Tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

const instruction = `You are a helpful agent who can answer user questions about the time and weather in a city.

Currently supported cities: New York, London, Tokyo, Paris, Sydney, Los Angeles,
Chicago, Singapore, Dubai, and Hong Kong.

Be friendly and conversational in your responses.`

// New returns the weather/time agent definition.
func New() *Definition {
	return &Definition{
		Name:        "weather_time_agent",
		Model:       "gemini-2.5-flash",
		Description: "Agent to answer questions about the time and weather in a city.",
		Instruction: instruction,
		Tools: []tool.Tool{
			NewWeatherTool(),
			NewCurrentTimeTool(),
		},
	}
}
