// Package tool implements the function calling surface exposed to the model:
// named capabilities with a JSON-schema parameter description, schema
// validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"
)

// Tool defines a structured capability an agent can expose to the model.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions (snake_case names recommended)
//   - Define a JSON schema for parameters
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description provided to the LLM
	// so it understands when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with already parsed arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed (%s): %s", e.Tool, e.Code, e.Message)
}

// ValidationError reports a parameter that failed schema validation.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}
