// Command invoke-local exercises the weather/time agent in-process before
// deployment: it runs a handful of demo queries through the local runner
// and pretty-prints the streamed response parts.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/gcpdemos/agentspace-agent/agent"
	"github.com/gcpdemos/agentspace-agent/config"
	"github.com/gcpdemos/agentspace-agent/logging"
	"github.com/gcpdemos/agentspace-agent/model"
	"github.com/gcpdemos/agentspace-agent/model/anthropic"
	"github.com/gcpdemos/agentspace-agent/model/openai"
	"github.com/gcpdemos/agentspace-agent/response"
	"github.com/gcpdemos/agentspace-agent/runner"
)

var testQueries = []string{
	"What's the weather in London?",
	"What time is it in Tokyo?",
	"Tell me about the weather in Paris",
	"What's the current time in Dubai?",
	"Give me weather for Singapore and time for Hong Kong",
}

func main() {
	cfg := config.Load("")
	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)

	m, err := selectModel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r := runner.New(agent.New(), m, func(o *runner.Options) {
		o.Logger = logger
	})

	info := m.Info()
	fmt.Println("Testing agent locally...")
	fmt.Printf("Model: %s (%s)\n", info.Name, info.Provider)
	fmt.Println(strings.Repeat("=", 60))

	session := r.CreateSession("local_test_user")
	ctx := context.Background()

	for i, query := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, query)
		fmt.Println(strings.Repeat("-", 60))

		events, err := r.StreamQuery(ctx, session, query)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		response.DisplayParts(os.Stdout, response.ProcessStream(events))
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Local invocation completed!")
}

// selectModel picks the local runtime model from configuration.
func selectModel(cfg *config.Config) (model.Model, error) {
	switch cfg.ModelProvider {
	case "", "openai":
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return openai.NewModel(func(o *openai.Options) {
			if cfg.ModelName != "" {
				o.Model = cfg.ModelName
			}
		}), nil
	case "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.ModelName != "" {
				o.Model = anthropicsdk.Model(cfg.ModelName)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q (expected openai or anthropic)", cfg.ModelProvider)
	}
}
