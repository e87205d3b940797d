package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/resumeiq/internal/model"
)

// LLMAnalyzer implements model.Analyzer with a single structured-output call.
type LLMAnalyzer struct {
	provider Provider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewLLMAnalyzer creates an analyzer. A nil logger discards output.
func NewLLMAnalyzer(provider Provider, tmpl *template.Template, logger *slog.Logger) *LLMAnalyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LLMAnalyzer{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// BuildRequestSpec renders the prompt with both texts verbatim and attaches ResultSchema.
func BuildRequestSpec(tmpl *template.Template, resumeText, jobDescription string) (RequestSpec, error) {
	var promptBuf bytes.Buffer
	if err := tmpl.Execute(&promptBuf, model.AnalysisRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	}); err != nil {
		return RequestSpec{}, fmt.Errorf("render prompt: %w", err)
	}
	return RequestSpec{
		Name:   "resume_analysis",
		Prompt: promptBuf.String(),
		Schema: ResultSchema,
	}, nil
}

// Analyze issues exactly one provider call. Failures are returned as
// *model.AnalysisError; there is no retry.
func (a *LLMAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*model.AnalysisResult, error) {
	attempt := uuid.NewString()
	logger := a.logger.With("attempt", attempt)

	spec, err := BuildRequestSpec(a.tmpl, resumeText, jobDescription)
	if err != nil {
		logger.Error("analysis failed", "kind", model.KindProvider, "error", err)
		return nil, &model.AnalysisError{Kind: model.KindProvider, Err: err}
	}

	start := time.Now()
	logger.Debug("sending analysis request", "prompt_bytes", len(spec.Prompt))
	raw, err := a.provider.Generate(ctx, spec)
	if err != nil {
		logger.Warn("analysis failed", "kind", model.KindProvider, "elapsed", time.Since(start), "error", err)
		return nil, &model.AnalysisError{Kind: model.KindProvider, Err: fmt.Errorf("generate: %w", err)}
	}

	result, err := parseResult(raw)
	if err != nil {
		logger.Warn("analysis failed", "kind", model.KindMalformedResponse, "elapsed", time.Since(start), "error", err, "raw_bytes", len(raw))
		logger.Debug("malformed provider reply", "raw", raw)
		return nil, &model.AnalysisError{Kind: model.KindMalformedResponse, Err: fmt.Errorf("parse result: %w", err)}
	}

	logger.Info("analysis complete", "elapsed", time.Since(start), "match_score", result.MatchScore)
	return result, nil
}
