package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("demo-project", "europe-west1", staticToken("test-token"), func(o *Options) {
		o.BaseURL = server.URL
	})
	return client, server
}

const engineName = "projects/demo-project/locations/europe-west1/reasoningEngines/12345"

func TestClient_Create_TrimsOperationSuffix(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/demo-project/locations/europe-west1/reasoningEngines", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Weather Time Agent", req.DisplayName)

		json.NewEncoder(w).Encode(map[string]any{"name": engineName + "/operations/67890"})
	}))

	name, err := client.Create(context.Background(), CreateRequest{DisplayName: "Weather Time Agent"})
	require.NoError(t, err)
	assert.Equal(t, engineName, name)
}

func TestClient_Get(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+engineName, r.URL.Path)
		json.NewEncoder(w).Encode(ReasoningEngine{Name: engineName, DisplayName: "Weather Time Agent"})
	}))

	engine, err := client.Get(context.Background(), engineName)
	require.NoError(t, err)
	assert.Equal(t, "Weather Time Agent", engine.DisplayName)
}

func TestClient_CreateSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+engineName+":query", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "create_session", body["class_method"])

		json.NewEncoder(w).Encode(map[string]any{"output": map[string]any{"id": "sess-1"}})
	}))

	sessionID, err := client.CreateSession(context.Background(), engineName, "test_user")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
}

func TestClient_CreateSession_MissingID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"output": map[string]any{}})
	}))

	_, err := client.CreateSession(context.Background(), engineName, "test_user")
	assert.ErrorContains(t, err, "no session id")
}

func TestClient_StreamQuery_DecodesLinesInOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+engineName+":streamQuery", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		input, _ := body["input"].(map[string]any)
		assert.Equal(t, "What's the weather in London?", input["message"])

		fmt.Fprintln(w, `{"content": {"parts": [{"function_call": {"name": "get_weather", "args": {"city": "London"}}}]}}`)
		fmt.Fprintln(w, `not json`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"content": {"parts": [{"text": "It is cloudy."}]}}`)
	}))

	events, err := client.StreamQuery(context.Background(), engineName, "test_user", "sess-1", "What's the weather in London?")
	require.NoError(t, err)
	require.Len(t, events, 2)

	content, _ := events[1]["content"].(map[string]any)
	parts, _ := content["parts"].([]any)
	require.Len(t, parts, 1)
}

func TestParseResourceName(t *testing.T) {
	projectID, location, engineID, err := ParseResourceName(engineName)
	require.NoError(t, err)
	assert.Equal(t, "demo-project", projectID)
	assert.Equal(t, "europe-west1", location)
	assert.Equal(t, "12345", engineID)

	for _, malformed := range []string{
		"",
		"12345",
		"projects/demo-project/locations/europe-west1",
		"projects//locations/europe-west1/reasoningEngines/12345",
		"engines/demo-project/locations/europe-west1/reasoningEngines/12345",
	} {
		_, _, _, err := ParseResourceName(malformed)
		assert.Error(t, err, "expected %q to be rejected", malformed)
	}
}

func TestClient_NonSuccessStatusSurfacesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "engine not found"}}`, http.StatusNotFound)
	}))

	_, err := client.Get(context.Background(), engineName)
	require.Error(t, err)
	assert.ErrorContains(t, err, "404")
	assert.ErrorContains(t, err, "engine not found")
}
