// Command deploy-agent deploys the weather/time agent to Agent Engine and
// smoke-tests the fresh deployment with a single query.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gcpdemos/agentspace-agent/agent"
	"github.com/gcpdemos/agentspace-agent/auth"
	"github.com/gcpdemos/agentspace-agent/config"
	"github.com/gcpdemos/agentspace-agent/engine"
	"github.com/gcpdemos/agentspace-agent/logging"
)

func main() {
	cfg := config.Load("")
	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)

	if err := cfg.Validate(config.EnvProjectID, config.EnvLocation, config.EnvStagingBucket); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("deploy.start", "project", cfg.ProjectID, "location", cfg.Location)

	ctx := context.Background()
	client := engine.NewClient(cfg.ProjectID, cfg.Location, tokenSource{}, func(o *engine.Options) {
		o.Logger = logger
	})

	resourceName, err := deployAgent(ctx, client, cfg, logger)
	if err != nil {
		logger.Error("deploy.failed", "error", err.Error())
		logger.Error("deploy.hint", "hint", "check your permissions and configuration")
		os.Exit(1)
	}

	logger.Info("deploy.success", "resource", resourceName)

	// Resource id is the last path segment, handy for ADK_DEPLOYMENT_ID.
	parts := strings.Split(resourceName, "/")
	logger.Info("deploy.resource_id", "id", parts[len(parts)-1])

	smokeTest(ctx, client, resourceName, logger)

	fmt.Println("\nDeployment successful!")
	fmt.Printf("Your agent is now available at: %s\n", resourceName)
	fmt.Println("\nTo use the deployed agent:")
	fmt.Println("1. Note the resource name above")
	fmt.Println("2. Set ADK_DEPLOYMENT_ID to the resource id")
	fmt.Println("3. Run invoke-deployed to create sessions and send queries")
}

// deployAgent builds the engine payload from the agent definition and
// creates the deployment.
func deployAgent(ctx context.Context, client *engine.Client, cfg *config.Config, logger logging.Logger) (string, error) {
	def := agent.New()

	toolNames := make([]any, len(def.Tools))
	for i, t := range def.Tools {
		toolNames[i] = t.Name()
	}

	logger.Info("deploy.create", "agent", def.Name)
	logger.Info("deploy.wait", "note", "this may take several minutes")

	return client.Create(ctx, engine.CreateRequest{
		DisplayName: "Weather Time Agent",
		Description: "An agent that provides weather and time information",
		Spec: map[string]any{
			"packageSpec": map[string]any{
				"pythonVersion":         "3.12",
				"dependencyFilesGcsUri": fmt.Sprintf("%s/agent/dependencies.tar.gz", cfg.StagingBucket),
				"pickleObjectGcsUri":    fmt.Sprintf("%s/agent/agent_engine.pkl", cfg.StagingBucket),
			},
			"deploymentSpec": map[string]any{
				"env": []any{
					map[string]any{"name": config.EnvProjectID, "value": cfg.ProjectID},
					map[string]any{"name": config.EnvLocation, "value": cfg.Location},
				},
			},
			"classMethods": []any{
				map[string]any{"name": def.Name, "model": def.Model, "tools": toolNames},
			},
		},
	})
}

// smokeTest runs one query against the fresh deployment. Failures are
// logged but never fail the deployment itself.
func smokeTest(ctx context.Context, client *engine.Client, resourceName string, logger logging.Logger) {
	logger.Info("deploy.test.start")

	sessionID, err := client.CreateSession(ctx, resourceName, "deployment_test")
	if err != nil {
		logger.Warn("deploy.test.failed", "error", err.Error())
		logger.Info("deploy.test.hint", "hint", "agent deployed but test failed - you may need to check permissions")
		return
	}
	logger.Info("deploy.test.session", "session_id", sessionID)

	events, err := client.StreamQuery(ctx, resourceName, "deployment_test", sessionID, "What's the weather in New York?")
	if err != nil {
		logger.Warn("deploy.test.failed", "error", err.Error())
		return
	}
	if len(events) == 0 {
		logger.Warn("deploy.test.empty", "note", "test query returned no response")
		return
	}
	logger.Info("deploy.test.success", "events", len(events))
}

// tokenSource adapts auth.Resolve to the engine client's TokenSource.
type tokenSource struct{}

func (tokenSource) Token(ctx context.Context) (string, error) {
	return auth.Resolve(ctx, logging.NoOpLogger{})
}
