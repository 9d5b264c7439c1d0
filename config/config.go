// Package config loads the project configuration from the process
// environment (optionally seeded from a .env file) into an explicit struct
// constructed once at startup and passed to whatever needs it.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by the scripts.
const (
	EnvProjectID     = "PROJECT_ID"
	EnvProjectNumber = "PROJECT_NUMBER"
	EnvLocation      = "LOCATION"
	EnvStagingBucket = "STAGING_BUCKET"
	EnvAppID         = "APP_ID"
	EnvDeploymentID  = "ADK_DEPLOYMENT_ID"
	EnvModelProvider = "MODEL_PROVIDER"
	EnvModelName     = "MODEL_NAME"
)

// Config holds all settings the deployment and invocation scripts need.
// Optional fields stay empty; each script validates the subset it requires
// via Validate before doing any work.
type Config struct {
	ProjectID     string
	ProjectNumber string
	Location      string
	StagingBucket string
	AppID         string
	DeploymentID  string

	// Local runtime model selection ("openai" or "anthropic"); empty means openai.
	ModelProvider string
	ModelName     string
}

// Load reads a .env file (ignored if absent) and builds a Config from the
// environment. A missing .env is not an error so CI and containers can rely
// on real environment variables alone.
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	return &Config{
		ProjectID:     os.Getenv(EnvProjectID),
		ProjectNumber: os.Getenv(EnvProjectNumber),
		Location:      os.Getenv(EnvLocation),
		StagingBucket: os.Getenv(EnvStagingBucket),
		AppID:         os.Getenv(EnvAppID),
		DeploymentID:  os.Getenv(EnvDeploymentID),
		ModelProvider: os.Getenv(EnvModelProvider),
		ModelName:     os.Getenv(EnvModelName),
	}
}

// Validate returns an error naming every required variable that is unset.
func (c *Config) Validate(required ...string) error {
	var missing []string
	for _, name := range required {
		if c.value(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) value(name string) string {
	switch name {
	case EnvProjectID:
		return c.ProjectID
	case EnvProjectNumber:
		return c.ProjectNumber
	case EnvLocation:
		return c.Location
	case EnvStagingBucket:
		return c.StagingBucket
	case EnvAppID:
		return c.AppID
	case EnvDeploymentID:
		return c.DeploymentID
	case EnvModelProvider:
		return c.ModelProvider
	case EnvModelName:
		return c.ModelName
	default:
		return ""
	}
}

// ReasoningEngineName derives the full resource name of the deployed engine
// from ProjectID, Location and DeploymentID. Empty if any component is unset.
func (c *Config) ReasoningEngineName() string {
	if c.ProjectID == "" || c.Location == "" || c.DeploymentID == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/locations/%s/reasoningEngines/%s", c.ProjectID, c.Location, c.DeploymentID)
}
