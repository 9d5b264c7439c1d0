// Package response flattens the heterogeneous event stream returned by an
// agent query into an ordered list of typed parts suitable for uniform
// display. Events are loose JSON maps as decoded from the platform stream;
// classification never fails, unknown shapes degrade to OtherPart.
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
)

// Part represents one classified segment of an agent response. Concrete
// part types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text segment, trimmed of surrounding whitespace.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// FunctionCallPart is a tool invocation requested by the agent.
type FunctionCallPart struct {
	Name string
	Args map[string]any
}

func (FunctionCallPart) isPart() {}

// OtherPart carries an unrecognized part payload unchanged. Raw is any
// because the platform may stream parts that are not JSON objects at all.
type OtherPart struct {
	Raw any
}

func (OtherPart) isPart() {}

// ProcessStream extracts and classifies all response parts from a sequence
// of streamed events.
//
// Events without a content.parts field contribute nothing. Each part is
// classified by the presence of a "text" key, then a "function_call" key,
// falling back to OtherPart with the raw part unchanged. Output order
// matches input order exactly. Malformed or missing fields degrade to
// defaults instead of failing.
func ProcessStream(events []map[string]any) []Part {
	var parts []Part
	for _, event := range events {
		content, ok := event["content"].(map[string]any)
		if !ok {
			continue
		}
		rawParts, ok := content["parts"].([]any)
		if !ok {
			continue
		}
		for _, rawPart := range rawParts {
			part, ok := rawPart.(map[string]any)
			if !ok {
				// Not an object at all; still passes through untouched.
				parts = append(parts, OtherPart{Raw: rawPart})
				continue
			}
			parts = append(parts, classify(part))
		}
	}
	return parts
}

func classify(part map[string]any) Part {
	if text, ok := part["text"]; ok {
		return TextPart{Text: strings.TrimSpace(cast.ToString(text))}
	}
	if fc, ok := part["function_call"]; ok {
		call := cast.ToStringMap(fc)
		name := cast.ToString(call["name"])
		if name == "" {
			name = "unknown"
		}
		args := cast.ToStringMap(call["args"])
		if args == nil {
			args = map[string]any{}
		}
		return FunctionCallPart{Name: name, Args: args}
	}
	return OtherPart{Raw: part}
}

// DisplayParts writes one formatted line per part to w. An empty sequence
// is reported as "No response received". The routine never fails; write
// errors on console-style writers are ignored.
func DisplayParts(w io.Writer, parts []Part) {
	if len(parts) == 0 {
		fmt.Fprintln(w, "No response received")
		return
	}
	for _, part := range parts {
		switch p := part.(type) {
		case TextPart:
			fmt.Fprintf(w, "Response: %s\n", p.Text)
		case FunctionCallPart:
			fmt.Fprintf(w, "Function Call: %s\n", p.Name)
			fmt.Fprintf(w, "  Args: %v\n", p.Args)
		case OtherPart:
			fmt.Fprintf(w, "Other part: %v\n", p.Raw)
		default:
			fmt.Fprintf(w, "Other part: %v\n", part)
		}
	}
}
