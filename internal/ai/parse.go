package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amishk599/resumeiq/internal/model"
)

// stripCodeFence removes one surrounding ``` fence, with or without a language
// tag. Unfenced input is returned trimmed.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i+1:]
	} else if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// rawResult uses pointers so absent and null fields can be told apart from
// zero values.
type rawResult struct {
	MatchScore            *float64          `json:"matchScore"`
	MatchingSkills        *[]*string        `json:"matchingSkills"`
	MissingSkills         *[]*string        `json:"missingSkills"`
	FormattingFeedback    *[]*string        `json:"formattingFeedback"`
	RoleFit               *string           `json:"roleFit"`
	SuggestedImprovements *[]rawImprovement `json:"suggestedImprovements"`
	ATSOptimization       *[]*string        `json:"atsOptimization"`
}

type rawImprovement struct {
	Category *string `json:"category"`
	Action   *string `json:"action"`
	Impact   *string `json:"impact"`
}

// parseResult decodes the provider reply into an AnalysisResult. Any missing
// field fails the whole parse; nothing is defaulted.
func parseResult(raw string) (*model.AnalysisResult, error) {
	var rr rawResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &rr); err != nil {
		return nil, fmt.Errorf("unmarshal result JSON: %w", err)
	}

	missing := []struct {
		name   string
		absent bool
	}{
		{"matchScore", rr.MatchScore == nil},
		{"matchingSkills", rr.MatchingSkills == nil},
		{"missingSkills", rr.MissingSkills == nil},
		{"formattingFeedback", rr.FormattingFeedback == nil},
		{"roleFit", rr.RoleFit == nil},
		{"suggestedImprovements", rr.SuggestedImprovements == nil},
		{"atsOptimization", rr.ATSOptimization == nil},
	}
	for _, f := range missing {
		if f.absent {
			return nil, fmt.Errorf("missing required field %q", f.name)
		}
	}

	matching, err := derefStrings("matchingSkills", *rr.MatchingSkills)
	if err != nil {
		return nil, err
	}
	gaps, err := derefStrings("missingSkills", *rr.MissingSkills)
	if err != nil {
		return nil, err
	}
	formatting, err := derefStrings("formattingFeedback", *rr.FormattingFeedback)
	if err != nil {
		return nil, err
	}
	ats, err := derefStrings("atsOptimization", *rr.ATSOptimization)
	if err != nil {
		return nil, err
	}

	improvements := make([]model.Improvement, 0, len(*rr.SuggestedImprovements))
	for i, ri := range *rr.SuggestedImprovements {
		if ri.Category == nil || ri.Action == nil || ri.Impact == nil {
			return nil, fmt.Errorf("suggestedImprovements[%d]: category, action and impact are required", i)
		}
		improvements = append(improvements, model.Improvement{
			Category: *ri.Category,
			Action:   *ri.Action,
			Impact:   *ri.Impact,
		})
	}

	return &model.AnalysisResult{
		MatchScore:            *rr.MatchScore,
		MatchingSkills:        matching,
		MissingSkills:         gaps,
		FormattingFeedback:    formatting,
		RoleFit:               *rr.RoleFit,
		SuggestedImprovements: improvements,
		ATSOptimization:       ats,
	}, nil
}

// derefStrings rejects null elements instead of reading them as "".
func derefStrings(field string, in []*string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, s := range in {
		if s == nil {
			return nil, fmt.Errorf("%s[%d]: null element", field, i)
		}
		out = append(out, *s)
	}
	return out, nil
}
