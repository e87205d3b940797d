// Package tui is the terminal front end: two text areas for the resume and
// job description, a single-flight analyze action and a scrollable result view.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumeiq/internal/intake"
	"github.com/amishk599/resumeiq/internal/model"
	"github.com/amishk599/resumeiq/internal/render"
	"github.com/amishk599/resumeiq/internal/session"
)

type focus int

const (
	focusResume focus = iota
	focusJob
)

// analysisDoneMsg is sent when the single analyzer call returns.
type analysisDoneMsg struct {
	result *model.AnalysisResult
	err    error
}

// fileLoadedMsg is sent when a resume file has been read.
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

type appModel struct {
	state    session.State
	analyzer model.Analyzer

	resume     textarea.Model
	job        textarea.Model
	focus      focus
	path       textinput.Model
	askingPath bool
	notice     string

	resultView viewport.Model
	frame      int
	width      int
	height     int
	ready      bool
}

func newAppModel(analyzer model.Analyzer) appModel {
	resume := textarea.New()
	resume.Placeholder = "Paste your professional experience, skills, and education here..."
	resume.CharLimit = 0
	resume.ShowLineNumbers = false
	resume.Focus()

	job := textarea.New()
	job.Placeholder = "Paste the full job requirements, responsibilities, and qualifications..."
	job.CharLimit = 0
	job.ShowLineNumbers = false

	path := textinput.New()
	path.Prompt = "Resume file (.txt/.md): "
	path.Placeholder = "~/resume.txt"

	return appModel{
		analyzer: analyzer,
		resume:   resume,
		job:      job,
		path:     path,
	}
}

func (m appModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case spinnerTickMsg:
		if !m.state.InFlight() {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case analysisDoneMsg:
		var next session.State
		var err error
		if msg.err != nil {
			next, err = m.state.Fail(msg.err)
		} else {
			next, err = m.state.Succeed(msg.result)
		}
		if err != nil {
			return m, nil
		}
		m.state = next
		if m.state.HasResult() {
			m.resultView.SetContent(render.Report(m.state.Result, m.resultView.Width))
			m.resultView.GotoTop()
			return m, nil
		}
		cmd := m.focusCmd()
		return m, cmd

	case fileLoadedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("could not load %s: %v", filepath.Base(msg.path), msg.err)
			return m, nil
		}
		next, err := m.state.WithResume(msg.text)
		if err != nil {
			m.notice = "resume cannot be replaced right now"
			return m, nil
		}
		m.state = next
		m.resume.SetValue(msg.text)
		m.notice = fmt.Sprintf("loaded %s", filepath.Base(msg.path))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.state.HasResult() {
			return m.updateResultView(msg)
		}
		if m.askingPath {
			return m.updatePathPrompt(msg)
		}
		return m.updateInputView(msg)
	}

	return m, nil
}

func (m appModel) updateInputView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		return m.reset()
	}

	// Inputs are locked while the request is outstanding.
	if m.state.InFlight() {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		if m.focus == focusResume {
			m.focus = focusJob
		} else {
			m.focus = focusResume
		}
		cmd := m.focusCmd()
		return m, cmd
	case "ctrl+o":
		m.askingPath = true
		m.notice = ""
		m.resume.Blur()
		m.job.Blur()
		m.path.Reset()
		cmd := m.path.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusResume {
		m.resume, cmd = m.resume.Update(msg)
	} else {
		m.job, cmd = m.job.Update(msg)
	}
	return m, cmd
}

func (m appModel) updatePathPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.askingPath = false
		m.path.Blur()
		cmd := m.focusCmd()
		return m, cmd
	case "enter":
		p := strings.TrimSpace(m.path.Value())
		m.askingPath = false
		m.path.Blur()
		cmd := m.focusCmd()
		if p == "" {
			return m, cmd
		}
		return m, tea.Batch(loadFileCmd(p), cmd)
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m appModel) updateResultView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r", "ctrl+r":
		return m.reset()
	}

	var cmd tea.Cmd
	m.resultView, cmd = m.resultView.Update(msg)
	return m, cmd
}

// submit copies the text areas into the state and starts the single request.
// While one is in flight the key is ignored.
func (m appModel) submit() (tea.Model, tea.Cmd) {
	if m.state.InFlight() {
		return m, nil
	}
	st, err := m.state.WithResume(m.resume.Value())
	if err != nil {
		return m, nil
	}
	st, err = st.WithJobDescription(m.job.Value())
	if err != nil {
		return m, nil
	}

	next, req, err := st.Submit()
	m.state = next
	m.notice = ""
	if err != nil {
		return m, nil
	}

	m.resume.Blur()
	m.job.Blur()
	m.frame = 0
	return m, tea.Batch(m.analyzeCmd(req), tick())
}

func (m appModel) reset() (tea.Model, tea.Cmd) {
	next, err := m.state.Reset()
	if err != nil {
		return m, nil
	}
	m.state = next
	m.resume.Reset()
	m.job.Reset()
	m.notice = ""
	m.focus = focusResume
	m.resultView.SetContent("")
	cmd := m.focusCmd()
	return m, cmd
}

func (m appModel) analyzeCmd(req model.AnalysisRequest) tea.Cmd {
	analyzer := m.analyzer
	return func() (msg tea.Msg) {
		// A panicking analyzer must not take down the program.
		defer func() {
			if r := recover(); r != nil {
				msg = analysisDoneMsg{err: &model.AnalysisError{Kind: model.KindProvider, Err: fmt.Errorf("panic: %v", r)}}
			}
		}()
		result, err := analyzer.Analyze(context.Background(), req.ResumeText, req.JobDescription)
		return analysisDoneMsg{result: result, err: err}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := intake.ReadTextFile(expandHome(path))
		return fileLoadedMsg{path: path, text: text, err: err}
	}
}

// focusCmd focuses the active text area and blurs the other.
func (m *appModel) focusCmd() tea.Cmd {
	if m.focus == focusResume {
		m.job.Blur()
		return m.resume.Focus()
	}
	m.resume.Blur()
	return m.job.Focus()
}

func (m *appModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)
	// Title, pane header, borders, message line, path prompt and status bar.
	paneHeight := max(m.height-8, 5)

	m.resume.SetWidth(paneWidth)
	m.resume.SetHeight(paneHeight)
	m.job.SetWidth(paneWidth)
	m.job.SetHeight(paneHeight)

	if !m.ready {
		m.resultView = viewport.New(m.width-4, max(m.height-4, 3))
		m.ready = true
	} else {
		m.resultView.Width = m.width - 4
		m.resultView.Height = max(m.height-4, 3)
	}
	if m.state.HasResult() {
		m.resultView.SetContent(render.Report(m.state.Result, m.resultView.Width))
	}
}

func (m appModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.state.HasResult() {
		return m.viewResult()
	}
	return m.viewInput()
}

func (m appModel) viewInput() string {
	title := titleStyle.Render("ResumeIQ: get past the ATS screen")

	paneWidth := m.resume.Width()
	leftBorder, rightBorder := inactiveBorderStyle, inactiveBorderStyle
	leftHeader := inactiveHeaderStyle.Render("1. Your Resume")
	rightHeader := inactiveHeaderStyle.Render("2. Job Description")
	if !m.state.InFlight() && !m.askingPath {
		if m.focus == focusResume {
			leftBorder = activeBorderStyle
			leftHeader = activeHeaderStyle.Render("1. Your Resume")
		} else {
			rightBorder = activeBorderStyle
			rightHeader = activeHeaderStyle.Render("2. Job Description")
		}
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeader),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeader),
	)
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftBorder.Render(m.resume.View()),
		" ",
		rightBorder.Render(m.job.View()),
	)

	var message string
	switch {
	case m.state.Phase == session.Failed:
		message = errorStyle.Render("⚠ " + m.state.ErrorMessage())
	case m.notice != "":
		message = noticeStyle.Render(m.notice)
	}

	var prompt string
	if m.askingPath {
		prompt = " " + m.path.View()
	}

	var statusText string
	if m.state.InFlight() {
		statusText = " " + spinnerStyle.Render(spinnerFrames[m.frame]) + " Analyzing match..."
	} else if m.askingPath {
		statusText = " enter load  esc cancel"
	} else {
		statusText = " tab switch  ctrl+o load resume file  ctrl+s analyze  ctrl+r reset  ctrl+c quit"
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return strings.Join([]string{title, headerRow, panes, message, prompt, statusBar}, "\n")
}

func (m appModel) viewResult() string {
	title := titleStyle.Render("Analysis Result")
	content := activeBorderStyle.Width(m.width - 2).Render(m.resultView.View())
	statusBar := statusBarStyle.Width(m.width).Render(" ↑/↓ scroll  r new analysis  q quit")
	return title + "\n" + content + "\n" + statusBar
}

// Run launches the TUI and blocks until the user quits.
func Run(analyzer model.Analyzer) error {
	p := tea.NewProgram(newAppModel(analyzer), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
