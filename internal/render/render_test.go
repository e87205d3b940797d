package render

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/amishk599/resumeiq/internal/model"
)

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		MatchScore:         72,
		MatchingSkills:     []string{"Go", "PostgreSQL"},
		MissingSkills:      []string{"Kubernetes"},
		FormattingFeedback: []string{"Use consistent date formats"},
		RoleFit:            "Strong backend fit.",
		SuggestedImprovements: []model.Improvement{
			{Category: "Skills", Action: "Add Kubernetes exposure", Impact: "Matches a core requirement"},
		},
		ATSOptimization: []string{"Avoid tables"},
	}
}

func TestReport_ContainsEveryField(t *testing.T) {
	out := Report(sampleResult(), 80)

	for _, want := range []string{
		"72%", "Moderate match", "Strong backend fit.",
		"Go", "PostgreSQL", "Kubernetes",
		"Use consistent date formats",
		"Skills", "Add Kubernetes exposure", "Impact: Matches a core requirement",
		"Avoid tables",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReport_EmptyListsDistinctFromNoResult(t *testing.T) {
	r := sampleResult()
	r.MatchingSkills = []string{}
	r.MissingSkills = []string{}

	out := Report(r, 80)
	if !strings.Contains(out, NoMissingSkills) {
		t.Errorf("expected %q in report", NoMissingSkills)
	}
	if !strings.Contains(out, NoMatchingSkills) {
		t.Errorf("expected %q in report", NoMatchingSkills)
	}
	if strings.Contains(out, NotAnalyzed) {
		t.Error("a result with empty lists must not render as not analyzed")
	}

	none := Report(nil, 80)
	if !strings.Contains(none, NotAnalyzed) {
		t.Errorf("nil result = %q, want %q", none, NotAnalyzed)
	}
	if strings.Contains(none, NoMissingSkills) {
		t.Error("nil result must not claim there are no gaps")
	}
}

func TestReport_DoesNotMutate(t *testing.T) {
	r := sampleResult()
	before := sampleResult()
	_ = Report(r, 40)
	if !reflect.DeepEqual(r, before) {
		t.Error("Report mutated the result")
	}
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Strong match"},
		{80, "Strong match"},
		{79.9, "Moderate match"},
		{60, "Moderate match"},
		{59, "Weak match"},
		{0, "Weak match"},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.score); got != tt.want {
			t.Errorf("ScoreBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreBar_Clamps(t *testing.T) {
	if got := ScoreBar(150); got != "["+strings.Repeat("█", 20)+"]" {
		t.Errorf("ScoreBar(150) = %q", got)
	}
	if got := ScoreBar(-5); got != "["+strings.Repeat("░", 20)+"]" {
		t.Errorf("ScoreBar(-5) = %q", got)
	}
	if got := ScoreBar(50); strings.Count(got, "█") != 10 {
		t.Errorf("ScoreBar(50) = %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(85); got != "85%" {
		t.Errorf("FormatScore(85) = %q", got)
	}
	if got := FormatScore(85.25); got != "85.2%" && got != "85.3%" {
		t.Errorf("FormatScore(85.25) = %q", got)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	in := sampleResult()
	var buf bytes.Buffer
	if err := JSON(&buf, in); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out model.AnalysisResult
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, &out) {
		t.Errorf("round trip lost fields:\n got %+v\nwant %+v", out, *in)
	}
	if !strings.Contains(buf.String(), `"atsOptimization"`) {
		t.Error("JSON should use camelCase field names")
	}
}

func TestWordWrap(t *testing.T) {
	got := WordWrap("the quick brown fox jumps", 10)
	want := "the quick\nbrown fox\njumps"
	if got != want {
		t.Errorf("WordWrap = %q, want %q", got, want)
	}
	if WordWrap("   ", 10) != "" {
		t.Error("blank input should wrap to empty string")
	}
}
