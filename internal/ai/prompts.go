package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/resume_match.md
var resumeMatchPromptRaw string

// ResumeMatchTemplate is the parsed prompt template for resume analysis.
// Parsed once at package init; reused on every Analyze call.
var ResumeMatchTemplate = template.Must(template.New("resume_match").Parse(resumeMatchPromptRaw))
