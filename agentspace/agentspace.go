// Package agentspace registers a deployed reasoning engine as an assistant
// agent in an Agentspace app via the Discovery Engine API.
package agentspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gcpdemos/agentspace-agent/logging"
)

// Options configure the registration client.
type Options struct {
	// BaseURL overrides the API endpoint (tests point this at a local server).
	BaseURL string
	// HTTPClient overrides the default client (60s timeout).
	HTTPClient *http.Client
	// Logger receives request diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// DefaultBaseURL is the EU Discovery Engine endpoint the demo app lives in.
const DefaultBaseURL = "https://eu-discoveryengine.googleapis.com"

// Client posts agent registrations to the assistants API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewClient constructs an Agentspace registration client.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{baseURL: opts.BaseURL, http: opts.HTTPClient, logger: opts.Logger}
}

// RegisterRequest describes the agent to surface in the Agentspace app.
type RegisterRequest struct {
	ProjectID       string // project hosting the Agentspace app
	AppID           string // Agentspace engine (app) id
	DisplayName     string
	Description     string
	IconURI         string
	ToolDescription string
	// ReasoningEngine is the full resource name of the deployed engine.
	ReasoningEngine string
	// AccessToken authenticates the request.
	AccessToken string
}

// agentPayload mirrors the assistants agents API request body.
type agentPayload struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        struct {
		URI string `json:"uri"`
	} `json:"icon"`
	ADKAgentDefinition struct {
		ToolSettings struct {
			ToolDescription string `json:"tool_description"`
		} `json:"tool_settings"`
		ProvisionedReasoningEngine struct {
			ReasoningEngine string `json:"reasoning_engine"`
		} `json:"provisioned_reasoning_engine"`
	} `json:"adk_agent_definition"`
}

// Register creates the assistant agent and returns its resource name.
// Known failure status codes carry remediation hints in the error text.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/v1alpha/projects/%s/locations/eu/collections/default_collection/engines/%s/assistants/default_assistant/agents",
		c.baseURL, req.ProjectID, req.AppID,
	)

	var payload agentPayload
	payload.DisplayName = req.DisplayName
	payload.Description = req.Description
	payload.Icon.URI = req.IconURI
	payload.ADKAgentDefinition.ToolSettings.ToolDescription = req.ToolDescription
	payload.ADKAgentDefinition.ProvisionedReasoningEngine.ReasoningEngine = req.ReasoningEngine

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode registration payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-User-Project", req.ProjectID)

	c.logger.Info("agentspace.register.start", "endpoint", endpoint, "app_id", req.AppID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("registration request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var agent struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(respBody, &agent)
		c.logger.Info("agentspace.register.success", "agent", agent.Name)
		return agent.Name, nil
	}

	return "", &RegistrationError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(respBody)),
		Hint:       hintFor(resp.StatusCode, req),
	}
}

// RegistrationError carries the failed status plus a remediation hint for
// the handful of status codes operators hit in practice.
type RegistrationError struct {
	StatusCode int
	Body       string
	Hint       string
}

func (e *RegistrationError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("registration failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("registration failed with status %d: %s (%s)", e.StatusCode, e.Body, e.Hint)
}

func hintFor(status int, req RegisterRequest) string {
	switch status {
	case http.StatusNotFound:
		return fmt.Sprintf("app or endpoint not found: check that app %q exists in project %q and lives in the EU location", req.AppID, req.ProjectID)
	case http.StatusForbidden:
		return "permission denied: check you hold the Discovery Engine Admin role and the Discovery Engine API is enabled"
	case http.StatusBadRequest:
		return "bad request: check the reasoning engine resource name exists and is accessible"
	default:
		return ""
	}
}
