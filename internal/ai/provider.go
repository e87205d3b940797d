package ai

import "context"

// RequestSpec is one structured-output request: the prompt and the shape the
// reply must take. Providers receive it opaquely.
type RequestSpec struct {
	Name   string // schema name, used by providers that label schemas
	Prompt string
	Schema *Schema
}

// Provider sends a RequestSpec to a language model and returns the raw text reply.
type Provider interface {
	Generate(ctx context.Context, spec RequestSpec) (string, error)
}
