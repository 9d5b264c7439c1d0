// Command deploy-agentspace registers the deployed Agent Engine agent as an
// assistant in an Agentspace app.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gcpdemos/agentspace-agent/agentspace"
	"github.com/gcpdemos/agentspace-agent/auth"
	"github.com/gcpdemos/agentspace-agent/config"
	"github.com/gcpdemos/agentspace-agent/logging"
)

const (
	iconURI = "https://fonts.gstatic.com/s/i/materialicons/wb_sunny/v1/24px.svg"

	toolDescription = "This agent provides weather and time information for 10 major cities: " +
		"New York, London, Tokyo, Paris, Sydney, Los Angeles, Chicago, Singapore, " +
		"Dubai, and Hong Kong"
)

func main() {
	cfg := config.Load("")
	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)

	if err := cfg.Validate(config.EnvProjectID, config.EnvLocation, config.EnvAppID, config.EnvDeploymentID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Agentspace deployment...")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Configuration:")
	fmt.Printf("  PROJECT_ID: %s\n", cfg.ProjectID)
	fmt.Printf("  APP_ID: %s\n", cfg.AppID)
	fmt.Printf("  ADK_DEPLOYMENT_ID: %s\n", cfg.DeploymentID)
	fmt.Printf("  LOCATION: %s\n", cfg.Location)
	fmt.Println(strings.Repeat("=", 60))

	ctx := context.Background()

	token, err := auth.Resolve(ctx, logger)
	if err != nil {
		logger.Error("agentspace.auth.failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, "\nDeployment failed: unable to obtain an access token.")
		os.Exit(1)
	}

	client := agentspace.NewClient(func(o *agentspace.Options) {
		o.Logger = logger
	})

	agentName, err := client.Register(ctx, agentspace.RegisterRequest{
		ProjectID:       cfg.ProjectID,
		AppID:           cfg.AppID,
		DisplayName:     "Weather Time Agent",
		Description:     "An agent that provides weather and time information for major cities",
		IconURI:         iconURI,
		ToolDescription: toolDescription,
		ReasoningEngine: cfg.ReasoningEngineName(),
		AccessToken:     token,
	})
	if err != nil {
		logger.Error("agentspace.register.failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, "\nDeployment failed. Please check the errors above.")
		os.Exit(1)
	}

	fmt.Println("\nDeployment completed successfully!")
	if agentName != "" {
		fmt.Printf("Agent resource name: %s\n", agentName)
	}
	fmt.Println("\nNext steps:")
	fmt.Println("1. Go to the Agentspace console to verify the deployment")
	fmt.Printf("2. Test the agent at: https://console.cloud.google.com/gen-app-builder/locations/eu/engines/%s\n", cfg.AppID)
	fmt.Println("3. Configure any additional settings as needed")
}
