package model

import (
	"context"
	"strings"
)

// AnalysisRequest is the pair of texts submitted for one analysis.
type AnalysisRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// Validate reports ErrInputIncomplete when either text is blank.
func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" || strings.TrimSpace(r.JobDescription) == "" {
		return ErrInputIncomplete
	}
	return nil
}

// AnalysisResult is the validated assessment returned by the provider.
type AnalysisResult struct {
	MatchScore            float64       `json:"matchScore"`
	MatchingSkills        []string      `json:"matchingSkills"`
	MissingSkills         []string      `json:"missingSkills"`
	FormattingFeedback    []string      `json:"formattingFeedback"`
	RoleFit               string        `json:"roleFit"`
	SuggestedImprovements []Improvement `json:"suggestedImprovements"`
	ATSOptimization       []string      `json:"atsOptimization"`
}

// Improvement is one suggested change to the resume.
type Improvement struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

// Analyzer produces an AnalysisResult for a resume and job description.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*AnalysisResult, error)
}
