package ai

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by UnconfiguredProvider.
var ErrMissingAPIKey = errors.New("no API key configured: set ai.api_key or RESUMEIQ_API_KEY")

// UnconfiguredProvider stands in when no API key is set. Input collection and
// rendering keep working; every Generate call fails.
type UnconfiguredProvider struct{}

// Generate always returns ErrMissingAPIKey.
func (UnconfiguredProvider) Generate(_ context.Context, _ RequestSpec) (string, error) {
	return "", ErrMissingAPIKey
}
