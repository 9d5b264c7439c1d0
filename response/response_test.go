package response

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessStream_ClassifiesParts(t *testing.T) {
	events := []map[string]any{
		{
			"content": map[string]any{
				"parts": []any{
					map[string]any{"text": " hi "},
					map[string]any{"function_call": map[string]any{
						"name": "get_weather",
						"args": map[string]any{"city": "Paris"},
					}},
				},
			},
		},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 2)

	assert.Equal(t, TextPart{Text: "hi"}, parts[0])
	assert.Equal(t, FunctionCallPart{Name: "get_weather", Args: map[string]any{"city": "Paris"}}, parts[1])
}

func TestProcessStream_SkipsEventsWithoutContentParts(t *testing.T) {
	events := []map[string]any{
		{},
		{"content": map[string]any{}},
		{"content": "not a map"},
		{"other_field": true},
		{
			"content": map[string]any{
				"parts": []any{map[string]any{"text": "kept"}},
			},
		},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 1)
	assert.Equal(t, TextPart{Text: "kept"}, parts[0])
}

func TestProcessStream_PreservesOrderAcrossEvents(t *testing.T) {
	events := []map[string]any{
		{"content": map[string]any{"parts": []any{
			map[string]any{"text": "first"},
			map[string]any{"function_call": map[string]any{"name": "a"}},
		}}},
		{"content": map[string]any{"parts": []any{
			map[string]any{"text": "second"},
		}}},
		{"content": map[string]any{"parts": []any{
			map[string]any{"function_response": map[string]any{"name": "a"}},
			map[string]any{"text": "third"},
		}}},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 5)
	assert.Equal(t, TextPart{Text: "first"}, parts[0])
	assert.Equal(t, FunctionCallPart{Name: "a", Args: map[string]any{}}, parts[1])
	assert.Equal(t, TextPart{Text: "second"}, parts[2])
	assert.IsType(t, OtherPart{}, parts[3])
	assert.Equal(t, TextPart{Text: "third"}, parts[4])
}

func TestProcessStream_UnrecognizedPartBecomesOtherUnchanged(t *testing.T) {
	raw := map[string]any{"function_response": map[string]any{"name": "get_weather", "response": map[string]any{"status": "success"}}}
	events := []map[string]any{
		{"content": map[string]any{"parts": []any{raw}}},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 1)

	other, ok := parts[0].(OtherPart)
	require.True(t, ok)
	assert.Equal(t, raw, other.Raw)
}

func TestProcessStream_NonObjectPartsPassThrough(t *testing.T) {
	events := []map[string]any{
		{"content": map[string]any{"parts": []any{
			"opaque payload",
			float64(42),
			map[string]any{"text": "tail"},
		}}},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 3)
	assert.Equal(t, OtherPart{Raw: "opaque payload"}, parts[0])
	assert.Equal(t, OtherPart{Raw: float64(42)}, parts[1])
	assert.Equal(t, TextPart{Text: "tail"}, parts[2])
}

func TestProcessStream_FunctionCallDefaults(t *testing.T) {
	events := []map[string]any{
		{"content": map[string]any{"parts": []any{
			map[string]any{"function_call": map[string]any{}},
		}}},
	}

	parts := ProcessStream(events)
	require.Len(t, parts, 1)

	fc, ok := parts[0].(FunctionCallPart)
	require.True(t, ok)
	assert.Equal(t, "unknown", fc.Name)
	assert.NotNil(t, fc.Args)
	assert.Empty(t, fc.Args)
}

func TestProcessStream_EmptyInput(t *testing.T) {
	assert.Empty(t, ProcessStream(nil))
	assert.Empty(t, ProcessStream([]map[string]any{}))
}

func TestDisplayParts_FormatsEachVariant(t *testing.T) {
	var buf bytes.Buffer
	DisplayParts(&buf, []Part{
		TextPart{Text: "The weather is sunny."},
		FunctionCallPart{Name: "get_weather", Args: map[string]any{"city": "Paris"}},
		OtherPart{Raw: map[string]any{"thought": true}},
	})

	out := buf.String()
	assert.Contains(t, out, "Response: The weather is sunny.")
	assert.Contains(t, out, "Function Call: get_weather")
	assert.Contains(t, out, "Args: map[city:Paris]")
	assert.Contains(t, out, "Other part:")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestDisplayParts_EmptySequence(t *testing.T) {
	var buf bytes.Buffer
	DisplayParts(&buf, nil)
	assert.Equal(t, "No response received\n", buf.String())
}
