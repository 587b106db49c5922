package oauth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"planewatch-service/pkg/logger"
)

// ProviderAuth builds authenticated HTTP clients for the flight data
// provider. A configured token is injected on every request through an
// oauth2 static token source; without a token the provider's anonymous
// endpoints are used.
type ProviderAuth struct {
	token   string
	timeout time.Duration
	logger  logger.Logger
}

// NewProviderAuth creates a new provider auth handler
func NewProviderAuth(token string, timeout time.Duration, logger logger.Logger) *ProviderAuth {
	return &ProviderAuth{
		token:   token,
		timeout: timeout,
		logger:  logger,
	}
}

// HTTPClient returns the client to use for provider calls. Every call gets a
// bounded timeout; a hung provider call must not hang its background unit.
func (a *ProviderAuth) HTTPClient(ctx context.Context) *http.Client {
	if a.token == "" {
		a.logger.Debug("No provider token configured, using anonymous client")
		return &http.Client{Timeout: a.timeout}
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.token})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = a.timeout
	return client
}
