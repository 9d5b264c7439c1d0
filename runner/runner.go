// Package runner drives an agent definition against a chat model entirely
// in-process: it sends the conversation to the model, executes any tool
// calls the model requests, feeds the results back and repeats until the
// model answers with text only.
//
// The emitted events use the same loose JSON shape the hosted Agent Engine
// streams, so response.ProcessStream consumes local and deployed output
// identically.
package runner

import (
	"context"
	"fmt"

	"github.com/gcpdemos/agentspace-agent/agent"
	"github.com/gcpdemos/agentspace-agent/logging"
	"github.com/gcpdemos/agentspace-agent/model"
	"github.com/gcpdemos/agentspace-agent/session"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxTurns limits model round-trips per query, guarding against a model
	// that keeps requesting tools.
	MaxTurns int
	// Logger receives tool and model call diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Runner executes queries against an agent definition using a model.Model.
type Runner struct {
	agent    *agent.Definition
	model    model.Model
	sessions *session.InMemoryStore
	maxTurns int
	logger   logging.Logger
}

// New constructs a Runner with optional overrides.
func New(def *agent.Definition, m model.Model, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxTurns: 8,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		agent:    def,
		model:    m,
		sessions: session.NewInMemoryStore(),
		maxTurns: opts.MaxTurns,
		logger:   opts.Logger,
	}
}

// CreateSession registers and returns a fresh session for the given user.
func (r *Runner) CreateSession(userID string) session.Session {
	return r.sessions.Create(userID)
}

// StreamQuery runs one user message through the agent and returns the
// ordered events produced along the way: assistant text, function call
// requests and function responses.
func (r *Runner) StreamQuery(ctx context.Context, sess session.Session, message string) ([]map[string]any, error) {
	if _, ok := r.sessions.Get(sess.ID); !ok {
		return nil, fmt.Errorf("unknown session %s", sess.ID)
	}

	r.logger.Debug("runner.query.start", "session_id", sess.ID, "agent", r.agent.Name)

	req := model.Request{
		Instruction: r.agent.Instruction,
		Messages:    []model.Message{{Role: "user", Text: message}},
		Tools:       toolDefinitions(r.agent),
	}

	var events []map[string]any
	for turn := 0; turn < r.maxTurns; turn++ {
		resp, err := r.model.Generate(ctx, req)
		if err != nil {
			return events, fmt.Errorf("model call failed: %w", err)
		}

		events = append(events, responseEvent(resp))

		if len(resp.ToolCalls) == 0 {
			r.logger.Debug("runner.query.done", "session_id", sess.ID, "turns", turn+1)
			return events, nil
		}

		req.Messages = append(req.Messages, model.Message{
			Role:      "assistant",
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		results := make([]model.ToolResult, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			result := r.executeTool(ctx, call)
			results = append(results, model.ToolResult{ID: call.ID, Name: call.Name, Result: result})
			events = append(events, functionResponseEvent(call.Name, result))
		}
		req.Messages = append(req.Messages, model.Message{Role: "tool", ToolResults: results})
	}

	return events, fmt.Errorf("no final answer after %d turns", r.maxTurns)
}

// executeTool resolves and calls the requested tool. Failures become a
// status/error_message payload the model can recover from instead of
// aborting the query.
func (r *Runner) executeTool(ctx context.Context, call model.ToolCall) any {
	t := r.agent.FindTool(call.Name)
	if t == nil {
		r.logger.Warn("runner.tool.unknown", "tool", call.Name)
		return map[string]any{
			"status":        "error",
			"error_message": fmt.Sprintf("unknown tool: %s", call.Name),
		}
	}

	result, err := t.Call(ctx, call.Args)
	if err != nil {
		r.logger.Error("runner.tool.error", "tool", call.Name, "error", err.Error())
		return map[string]any{
			"status":        "error",
			"error_message": err.Error(),
		}
	}

	r.logger.Info("runner.tool.success", "tool", call.Name)
	return result
}

// responseEvent converts a model response into a platform-shaped stream event.
func responseEvent(resp model.Response) map[string]any {
	var parts []any
	if resp.Text != "" {
		parts = append(parts, map[string]any{"text": resp.Text})
	}
	for _, call := range resp.ToolCalls {
		args := call.Args
		if args == nil {
			args = map[string]any{}
		}
		parts = append(parts, map[string]any{
			"function_call": map[string]any{"name": call.Name, "args": args},
		})
	}
	return map[string]any{"content": map[string]any{"parts": parts}}
}

// functionResponseEvent wraps an executed tool result as a stream event.
func functionResponseEvent(name string, result any) map[string]any {
	return map[string]any{
		"content": map[string]any{
			"parts": []any{
				map[string]any{
					"function_response": map[string]any{"name": name, "response": result},
				},
			},
		},
	}
}

// toolDefinitions exposes the agent's tools as model tool declarations.
func toolDefinitions(def *agent.Definition) []model.ToolDefinition {
	defs := make([]model.ToolDefinition, len(def.Tools))
	for i, t := range def.Tools {
		defs[i] = model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	}
	return defs
}
