// Package session models one user's analysis flow as an immutable state
// machine: Idle -> Submitting -> Succeeded | Failed, and back to Idle on Reset.
package session

import (
	"errors"

	"github.com/amishk599/resumeiq/internal/model"
)

// Phase is the position of a State in the analysis flow.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrLocked is returned when inputs are edited while a request is in
	// flight or a result is shown.
	ErrLocked = errors.New("inputs cannot be edited in this phase")

	// ErrNotSubmitting is returned when a completion arrives outside Submitting.
	ErrNotSubmitting = errors.New("no analysis is in progress")
)

// State is a snapshot of the flow. Transitions return a new State and never
// modify the receiver.
type State struct {
	Phase          Phase
	ResumeText     string
	JobDescription string
	Result         *model.AnalysisResult // set only in Succeeded
	Err            error                 // set only in Failed
}

// HasResult reports whether an analysis result exists. A result with empty
// lists is still a result.
func (s State) HasResult() bool {
	return s.Phase == Succeeded && s.Result != nil
}

// InFlight reports whether a request is outstanding.
func (s State) InFlight() bool {
	return s.Phase == Submitting
}

func (s State) editable() bool {
	return s.Phase == Idle || s.Phase == Failed
}

// WithResume replaces the resume text.
func (s State) WithResume(text string) (State, error) {
	if !s.editable() {
		return s, ErrLocked
	}
	s.ResumeText = text
	return s, nil
}

// WithJobDescription replaces the job description text.
func (s State) WithJobDescription(text string) (State, error) {
	if !s.editable() {
		return s, ErrLocked
	}
	s.JobDescription = text
	return s, nil
}

// Submit starts an analysis. While one is in flight it returns
// model.ErrAnalysisInProgress and the unchanged State. With either input empty
// it moves to Failed with model.ErrInputIncomplete and the returned error is
// that same sentinel; no request should be sent. Submitting from Succeeded
// re-runs the analysis and the old result is dropped.
func (s State) Submit() (State, model.AnalysisRequest, error) {
	if s.Phase == Submitting {
		return s, model.AnalysisRequest{}, model.ErrAnalysisInProgress
	}
	req := model.AnalysisRequest{ResumeText: s.ResumeText, JobDescription: s.JobDescription}
	if err := req.Validate(); err != nil {
		s.Phase = Failed
		s.Result = nil
		s.Err = err
		return s, model.AnalysisRequest{}, err
	}
	s.Phase = Submitting
	s.Result = nil
	s.Err = nil
	return s, req, nil
}

// Succeed completes the in-flight analysis with result.
func (s State) Succeed(result *model.AnalysisResult) (State, error) {
	if s.Phase != Submitting {
		return s, ErrNotSubmitting
	}
	if result == nil {
		return s.Fail(&model.AnalysisError{Kind: model.KindMalformedResponse, Err: errors.New("nil result")})
	}
	s.Phase = Succeeded
	s.Result = result
	s.Err = nil
	return s, nil
}

// Fail completes the in-flight analysis with err. No result is kept.
func (s State) Fail(err error) (State, error) {
	if s.Phase != Submitting {
		return s, ErrNotSubmitting
	}
	s.Phase = Failed
	s.Result = nil
	s.Err = err
	return s, nil
}

// Reset clears inputs, result and error. It is refused while a request is in flight.
func (s State) Reset() (State, error) {
	if s.Phase == Submitting {
		return s, model.ErrAnalysisInProgress
	}
	return State{}, nil
}

// ErrorMessage is the user-facing text for the current error, or "".
func (s State) ErrorMessage() string {
	return model.UserMessage(s.Err)
}
