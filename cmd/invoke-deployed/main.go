// Command invoke-deployed queries the agent deployed on Agent Engine. The
// target engine comes from the --id flag or is derived from PROJECT_ID,
// LOCATION and ADK_DEPLOYMENT_ID.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/gcpdemos/agentspace-agent/auth"
	"github.com/gcpdemos/agentspace-agent/config"
	"github.com/gcpdemos/agentspace-agent/engine"
	"github.com/gcpdemos/agentspace-agent/logging"
	"github.com/gcpdemos/agentspace-agent/response"
)

var testQueries = []string{
	"What's the weather in London?",
	"What time is it in Tokyo?",
	"Tell me about the weather in Paris",
	"What's the current time in Dubai?",
	"Give me weather for Singapore and time for Hong Kong",
}

type options struct {
	ID string `long:"id" description:"Agent resource ID (full resource name)"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	cfg := config.Load("")
	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)

	resourceName := opts.ID
	if resourceName == "" {
		resourceName = cfg.ReasoningEngineName()
	}
	if resourceName == "" {
		fmt.Fprintln(os.Stderr, "Error: No agent resource ID provided.")
		fmt.Fprintln(os.Stderr, "Either provide the --id flag or set PROJECT_ID, LOCATION and ADK_DEPLOYMENT_ID in the environment or .env file")
		os.Exit(1)
	}

	// The resource name carries project and location, so a bare --id works
	// without any environment set up.
	projectID, location, _, err := engine.ParseResourceName(resourceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Testing agent on Agent Engine...")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Agent Resource: %s\n", resourceName)
	fmt.Println(strings.Repeat("=", 60))

	ctx := context.Background()
	client := engine.NewClient(projectID, location, tokenSource{}, func(o *engine.Options) {
		o.Logger = logger
	})

	if _, err := client.Get(ctx, resourceName); err != nil {
		fmt.Printf("Error connecting to deployed agent: %v\n", err)
		return
	}
	fmt.Println("Successfully connected to deployed agent")

	sessionID, err := client.CreateSession(ctx, resourceName, "test_user")
	if err != nil {
		fmt.Printf("Error creating session: %v\n", err)
		return
	}
	fmt.Printf("Session created: %s\n", sessionID)

	for i, query := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, query)
		fmt.Println(strings.Repeat("-", 60))

		events, err := client.StreamQuery(ctx, resourceName, "test_user", sessionID, query)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		response.DisplayParts(os.Stdout, response.ProcessStream(events))
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Deployed agent testing completed!")
}

// tokenSource adapts auth.Resolve to the engine client's TokenSource.
type tokenSource struct{}

func (tokenSource) Token(ctx context.Context) (string, error) {
	return auth.Resolve(ctx, logging.NoOpLogger{})
}
