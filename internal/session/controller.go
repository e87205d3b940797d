package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/amishk599/resumeiq/internal/model"
)

// Controller owns a single State and serializes transitions on it. The
// analyzer call runs without the lock held so readers see Submitting.
type Controller struct {
	mu       sync.Mutex
	state    State
	analyzer model.Analyzer
}

// NewController returns a Controller in Idle.
func NewController(analyzer model.Analyzer) *Controller {
	return &Controller{analyzer: analyzer}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetInputs replaces whichever inputs are non-nil.
func (c *Controller) SetInputs(resume, jobDescription *string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	var err error
	if resume != nil {
		if next, err = next.WithResume(*resume); err != nil {
			return c.state, err
		}
	}
	if jobDescription != nil {
		if next, err = next.WithJobDescription(*jobDescription); err != nil {
			return c.state, err
		}
	}
	c.state = next
	return c.state, nil
}

// Analyze submits the current inputs and waits for the single analyzer call.
// The returned error is the one that ended the attempt.
func (c *Controller) Analyze(ctx context.Context) (State, error) {
	c.mu.Lock()
	next, req, err := c.state.Submit()
	if err != nil {
		if next.Phase == Failed {
			c.state = next
		}
		c.mu.Unlock()
		return next, err
	}
	c.state = next
	c.mu.Unlock()

	result, callErr := c.call(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if callErr != nil {
		c.state, _ = c.state.Fail(callErr)
		return c.state, callErr
	}
	c.state, _ = c.state.Succeed(result)
	return c.state, c.state.Err
}

// call runs the analyzer. A panic ends the attempt as a provider failure so
// the session never stays in Submitting.
func (c *Controller) call(ctx context.Context, req model.AnalysisRequest) (result *model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &model.AnalysisError{Kind: model.KindProvider, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.analyzer.Analyze(ctx, req.ResumeText, req.JobDescription)
}

// Reset returns to Idle unless a request is in flight.
func (c *Controller) Reset() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.state.Reset()
	if err != nil {
		return c.state, err
	}
	c.state = next
	return c.state, nil
}
