// Package auth resolves Google Cloud access tokens for the platform APIs,
// preferring the gcloud CLI and falling back to Application Default
// Credentials.
package auth

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/oauth2/google"

	"github.com/gcpdemos/agentspace-agent/logging"
)

// CloudPlatformScope is the OAuth scope required by the agent platform APIs.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenSource yields a bearer token for authenticating platform requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// GcloudTokenSource shells out to the gcloud CLI for a user access token.
type GcloudTokenSource struct{}

// Token runs `gcloud auth print-access-token` and returns the trimmed output.
func (GcloudTokenSource) Token(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "gcloud", "auth", "print-access-token").Output()
	if err != nil {
		return "", fmt.Errorf("gcloud auth print-access-token: %w", err)
	}
	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", fmt.Errorf("gcloud returned an empty token")
	}
	return token, nil
}

// ADCTokenSource resolves tokens via Application Default Credentials.
type ADCTokenSource struct{}

// Token obtains a token from the default credential chain (env var,
// well-known file, metadata server).
func (ADCTokenSource) Token(ctx context.Context) (string, error) {
	ts, err := google.DefaultTokenSource(ctx, CloudPlatformScope)
	if err != nil {
		return "", fmt.Errorf("resolve application default credentials: %w", err)
	}
	tok, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("fetch token from default credentials: %w", err)
	}
	return tok.AccessToken, nil
}

// Resolve tries the gcloud CLI first, then ADC, returning the first token
// that works. Both failures are reported together.
func Resolve(ctx context.Context, logger logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	token, gcloudErr := GcloudTokenSource{}.Token(ctx)
	if gcloudErr == nil {
		logger.Info("auth.token.resolved", "source", "gcloud")
		return token, nil
	}
	logger.Warn("auth.gcloud.failed", "error", gcloudErr.Error())

	token, adcErr := ADCTokenSource{}.Token(ctx)
	if adcErr == nil {
		logger.Info("auth.token.resolved", "source", "adc")
		return token, nil
	}

	return "", fmt.Errorf("unable to obtain access token: gcloud: %v; adc: %v", gcloudErr, adcErr)
}
