package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInputIncomplete is returned when the resume or job description is empty.
	ErrInputIncomplete = errors.New("please provide both a resume and a job description")

	// ErrAnalysisInProgress is returned when a submission arrives while another is in flight.
	ErrAnalysisInProgress = errors.New("an analysis is already in progress")
)

// ErrorKind classifies a failed analysis attempt for logging.
type ErrorKind int

const (
	KindProvider ErrorKind = iota + 1
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindProvider:
		return "provider error"
	case KindMalformedResponse:
		return "malformed response"
	default:
		return "unknown error"
	}
}

// userMessage is shown for every failed attempt regardless of Kind.
const userMessage = "Something went wrong during analysis. Please try again."

// AnalysisError is a failed analysis attempt. Error() carries the cause for logs;
// UserMessage() is the same for every kind.
type AnalysisError struct {
	Kind ErrorKind
	Err  error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// UserMessage returns the opaque message presented to the user.
func (e *AnalysisError) UserMessage() string {
	return userMessage
}

// UserMessage maps any error to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.UserMessage()
	}
	if errors.Is(err, ErrInputIncomplete) || errors.Is(err, ErrAnalysisInProgress) {
		return capitalize(err.Error()) + "."
	}
	return userMessage
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// HTTPError wraps a non-2xx status code returned by a provider endpoint.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
