// Package render formats an AnalysisResult for terminals and JSON consumers.
// It only reads the result.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumeiq/internal/model"
)

// NotAnalyzed is shown when no result exists yet.
const NotAnalyzed = "Not yet analyzed."

// Empty-state texts. An empty list is a result, not the absence of one.
const (
	NoMatchingSkills = "No matching skills found"
	NoMissingSkills  = "No gaps found"
	NoItems          = "None"
)

const scoreBarWidth = 20

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(12)

	strongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	moderateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	weakStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("252"))
)

// ScoreBand labels a match score.
func ScoreBand(score float64) string {
	switch {
	case score >= 80:
		return "Strong match"
	case score >= 60:
		return "Moderate match"
	default:
		return "Weak match"
	}
}

func bandStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return strongStyle
	case score >= 60:
		return moderateStyle
	default:
		return weakStyle
	}
}

// ScoreBar draws the score as a filled bar, clamped to 0..100. The score
// itself is reported unclamped.
func ScoreBar(score float64) string {
	clamped := math.Max(0, math.Min(100, score))
	filled := int(math.Round(clamped / 100 * scoreBarWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled) + "]"
}

// FormatScore prints whole scores without decimals.
func FormatScore(score float64) string {
	if score == math.Trunc(score) {
		return fmt.Sprintf("%.0f%%", score)
	}
	return fmt.Sprintf("%.1f%%", score)
}

// Report renders r as a multi-section text report wrapped to width.
// A nil result renders NotAnalyzed.
func Report(r *model.AnalysisResult, width int) string {
	if r == nil {
		return hintStyle.Render(NotAnalyzed) + "\n"
	}
	wrapWidth := max(width-4, 20)

	var b strings.Builder
	divider := func(label string) {
		fill := strings.Repeat("─", max(wrapWidth-len(label)-3, 3))
		b.WriteString("\n" + dividerStyle.Render("── ") + sectionStyle.Render(label) + " " + dividerStyle.Render(fill) + "\n\n")
	}
	list := func(items []string, empty string) {
		if len(items) == 0 {
			b.WriteString(hintStyle.Render("  "+empty) + "\n")
			return
		}
		for _, it := range items {
			b.WriteString(bullet(it, wrapWidth) + "\n")
		}
	}

	band := bandStyle(r.MatchScore)
	b.WriteString(labelStyle.Render("Match Score"))
	b.WriteString(band.Render(FormatScore(r.MatchScore)) + "  " + band.Render(ScoreBar(r.MatchScore)) + "  " + ScoreBand(r.MatchScore) + "\n")
	if r.RoleFit != "" {
		b.WriteByte('\n')
		b.WriteString(quoteStyle.Render(indent(WordWrap("\""+r.RoleFit+"\"", wrapWidth-2), "  ")) + "\n")
	}

	divider(fmt.Sprintf("Matching Skills (%d)", len(r.MatchingSkills)))
	list(r.MatchingSkills, NoMatchingSkills)

	divider(fmt.Sprintf("Missing Skills (%d)", len(r.MissingSkills)))
	list(r.MissingSkills, NoMissingSkills)

	divider("Suggested Improvements")
	if len(r.SuggestedImprovements) == 0 {
		b.WriteString(hintStyle.Render("  "+NoItems) + "\n")
	}
	for i, imp := range r.SuggestedImprovements {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  " + sectionStyle.Render(imp.Category) + "\n")
		b.WriteString(indent(WordWrap(imp.Action, wrapWidth-4), "    ") + "\n")
		b.WriteString(hintStyle.Render(indent(WordWrap("Impact: "+imp.Impact, wrapWidth-4), "    ")) + "\n")
	}

	divider("Formatting Feedback")
	list(r.FormattingFeedback, NoItems)

	divider("ATS Optimization")
	list(r.ATSOptimization, NoItems)

	return b.String()
}

// Write writes Report(r, width) to w.
func Write(w io.Writer, r *model.AnalysisResult, width int) error {
	_, err := io.WriteString(w, Report(r, width))
	return err
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func bullet(text string, width int) string {
	lines := strings.Split(WordWrap(text, width-4), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = "  • " + lines[i]
		} else {
			lines[i] = "    " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// WordWrap breaks text on spaces so no line exceeds width where possible.
func WordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
