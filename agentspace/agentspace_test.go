package agentspace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() RegisterRequest {
	return RegisterRequest{
		ProjectID:       "demo-project",
		AppID:           "demo-app",
		DisplayName:     "Weather Time Agent",
		Description:     "An agent that provides weather and time information",
		IconURI:         "https://example.com/icon.svg",
		ToolDescription: "Weather and time for major cities",
		ReasoningEngine: "projects/demo-project/locations/europe-west1/reasoningEngines/12345",
		AccessToken:     "test-token",
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(func(o *Options) {
		o.BaseURL = server.URL
	})
}

func TestRegister_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t,
			"/v1alpha/projects/demo-project/locations/eu/collections/default_collection/engines/demo-app/assistants/default_assistant/agents",
			r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "demo-project", r.Header.Get("X-Goog-User-Project"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Weather Time Agent", payload["displayName"])

		def, _ := payload["adk_agent_definition"].(map[string]any)
		require.NotNil(t, def)
		engine, _ := def["provisioned_reasoning_engine"].(map[string]any)
		assert.Equal(t, "projects/demo-project/locations/europe-west1/reasoningEngines/12345", engine["reasoning_engine"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"name": "projects/demo-project/agents/agent-1"})
	}))

	name, err := client.Register(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "projects/demo-project/agents/agent-1", name)
}

func TestRegister_KnownStatusesCarryHints(t *testing.T) {
	tests := []struct {
		status int
		hint   string
	}{
		{http.StatusBadRequest, "bad request"},
		{http.StatusForbidden, "permission denied"},
		{http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		_, err := client.Register(context.Background(), testRequest())
		require.Error(t, err)

		var regErr *RegistrationError
		require.True(t, errors.As(err, &regErr))
		assert.Equal(t, tt.status, regErr.StatusCode)
		assert.Contains(t, regErr.Hint, tt.hint)
		assert.Contains(t, regErr.Error(), "nope")
	}
}

func TestRegister_UnknownStatusGenericError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "flaky upstream", http.StatusBadGateway)
	}))

	_, err := client.Register(context.Background(), testRequest())
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Empty(t, regErr.Hint)
	assert.Contains(t, regErr.Error(), "502")
}
