// Package engine is a thin client for the Agent Engine (reasoning engines)
// REST surface: deployment, lookup, session creation and query streaming.
// The reasoning loop, session persistence and streaming protocol all live
// on the platform side; this client only shapes requests and decodes
// responses.
package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gcpdemos/agentspace-agent/auth"
	"github.com/gcpdemos/agentspace-agent/logging"
)

// Options configure the engine client.
type Options struct {
	// BaseURL overrides the regional API endpoint (tests point this at a
	// local server).
	BaseURL string
	// HTTPClient overrides the default client (60s timeout).
	HTTPClient *http.Client
	// Logger receives request diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Client talks to the reasoning engines API of one project/location.
type Client struct {
	projectID string
	location  string
	baseURL   string
	tokens    auth.TokenSource
	http      *http.Client
	logger    logging.Logger
}

// NewClient constructs a client for the given project and location.
func NewClient(projectID, location string, tokens auth.TokenSource, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", location)
	}
	return &Client{
		projectID: projectID,
		location:  location,
		baseURL:   baseURL,
		tokens:    tokens,
		http:      opts.HTTPClient,
		logger:    opts.Logger,
	}
}

// ParseResourceName splits a full reasoning engine resource name of the form
// projects/{project}/locations/{location}/reasoningEngines/{id} into its
// components.
func ParseResourceName(name string) (projectID, location, engineID string, err error) {
	segments := strings.Split(name, "/")
	if len(segments) != 6 || segments[0] != "projects" || segments[2] != "locations" ||
		segments[4] != "reasoningEngines" || segments[1] == "" || segments[3] == "" || segments[5] == "" {
		return "", "", "", fmt.Errorf("malformed reasoning engine resource name %q (want projects/{project}/locations/{location}/reasoningEngines/{id})", name)
	}
	return segments[1], segments[3], segments[5], nil
}

// ReasoningEngine is the subset of engine metadata the scripts care about.
type ReasoningEngine struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	CreateTime  string `json:"createTime,omitempty"`
	UpdateTime  string `json:"updateTime,omitempty"`
}

// CreateRequest describes a new engine deployment.
type CreateRequest struct {
	DisplayName string         `json:"displayName"`
	Description string         `json:"description"`
	Spec        map[string]any `json:"spec,omitempty"`
}

// Create deploys a new reasoning engine and returns its resource name. The
// API answers with a long-running operation; the engine name is the
// operation name with the /operations suffix stripped.
func (c *Client) Create(ctx context.Context, req CreateRequest) (string, error) {
	url := fmt.Sprintf("%s/projects/%s/locations/%s/reasoningEngines", c.baseURL, c.projectID, c.location)

	var op struct {
		Name string `json:"name"`
	}
	if err := c.doJSON(ctx, http.MethodPost, url, req, &op); err != nil {
		return "", fmt.Errorf("create reasoning engine: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("create reasoning engine: response carried no resource name")
	}

	name := op.Name
	if i := strings.Index(name, "/operations/"); i >= 0 {
		name = name[:i]
	}
	c.logger.Info("engine.create.accepted", "resource", name)
	return name, nil
}

// Get fetches metadata for a deployed engine by full resource name.
func (c *Client) Get(ctx context.Context, name string) (*ReasoningEngine, error) {
	var engine ReasoningEngine
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+name, nil, &engine); err != nil {
		return nil, fmt.Errorf("get reasoning engine %s: %w", name, err)
	}
	return &engine, nil
}

// CreateSession creates a server-side conversation context and returns its id.
func (c *Client) CreateSession(ctx context.Context, name, userID string) (string, error) {
	body := map[string]any{
		"class_method": "create_session",
		"input":        map[string]any{"user_id": userID},
	}
	var resp struct {
		Output map[string]any `json:"output"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/"+name+":query", body, &resp); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	id, _ := resp.Output["id"].(string)
	if id == "" {
		return "", fmt.Errorf("create session: response carried no session id")
	}
	return id, nil
}

// StreamQuery sends a message and returns the streamed events in arrival
// order. The platform streams newline-delimited JSON; lines that fail to
// decode are skipped rather than aborting the stream.
func (c *Client) StreamQuery(ctx context.Context, name, userID, sessionID, message string) ([]map[string]any, error) {
	body := map[string]any{
		"class_method": "stream_query",
		"input": map[string]any{
			"user_id":    userID,
			"session_id": sessionID,
			"message":    message,
		},
	}
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/"+name+":streamQuery", body)
	if err != nil {
		return nil, fmt.Errorf("stream query: %w", err)
	}
	defer resp.Body.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var event map[string]any
		if err := json.Unmarshal(line, &event); err != nil {
			c.logger.Warn("engine.stream.bad_line", "error", err.Error())
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("stream query: read events: %w", err)
	}
	return events, nil
}

// do issues an authenticated request and fails on non-2xx status codes.
func (c *Client) do(ctx context.Context, method, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("engine.request", "method", method, "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return resp, nil
}

// doJSON issues a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	resp, err := c.do(ctx, method, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
