package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amishk599/resumeiq/internal/model"
)

// blockingAnalyzer waits on release before returning.
type blockingAnalyzer struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	result  *model.AnalysisResult
	err     error
}

func newBlockingAnalyzer(result *model.AnalysisResult, err error) *blockingAnalyzer {
	return &blockingAnalyzer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  result,
		err:     err,
	}
}

func (b *blockingAnalyzer) Analyze(_ context.Context, _, _ string) (*model.AnalysisResult, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.started <- struct{}{}
	<-b.release
	return b.result, b.err
}

func (b *blockingAnalyzer) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func strPtr(s string) *string { return &s }

func TestController_EmptyInputNeverCallsAnalyzer(t *testing.T) {
	a := newBlockingAnalyzer(nil, nil)
	c := NewController(a)
	c.SetInputs(strPtr("resume only"), nil)

	st, err := c.Analyze(context.Background())
	if !errors.Is(err, model.ErrInputIncomplete) {
		t.Fatalf("err = %v, want ErrInputIncomplete", err)
	}
	if st.Phase != Failed || c.State().Phase != Failed {
		t.Errorf("phase = %v, want failed", st.Phase)
	}
	if a.callCount() != 0 {
		t.Errorf("analyzer calls = %d, want 0", a.callCount())
	}
}

func TestController_SingleFlight(t *testing.T) {
	result := &model.AnalysisResult{MatchScore: 90}
	a := newBlockingAnalyzer(result, nil)
	c := NewController(a)
	c.SetInputs(strPtr("resume"), strPtr("job"))

	done := make(chan State, 1)
	go func() {
		st, _ := c.Analyze(context.Background())
		done <- st
	}()

	select {
	case <-a.started:
	case <-time.After(2 * time.Second):
		t.Fatal("analyzer was not called")
	}

	if !c.State().InFlight() {
		t.Error("state should be Submitting while the call is outstanding")
	}
	if _, err := c.Analyze(context.Background()); !errors.Is(err, model.ErrAnalysisInProgress) {
		t.Errorf("second Analyze err = %v, want ErrAnalysisInProgress", err)
	}
	if _, err := c.Reset(); !errors.Is(err, model.ErrAnalysisInProgress) {
		t.Errorf("Reset while in flight err = %v", err)
	}
	if _, err := c.SetInputs(strPtr("other"), nil); !errors.Is(err, ErrLocked) {
		t.Errorf("SetInputs while in flight err = %v", err)
	}

	close(a.release)
	st := <-done
	if st.Phase != Succeeded || st.Result != result {
		t.Errorf("final = %+v", st)
	}
	if a.callCount() != 1 {
		t.Errorf("analyzer calls = %d, want 1", a.callCount())
	}
}

func TestController_FailureThenReset(t *testing.T) {
	a := newBlockingAnalyzer(nil, &model.AnalysisError{Kind: model.KindMalformedResponse, Err: errors.New("bad json")})
	close(a.release)
	c := NewController(a)
	c.SetInputs(strPtr("resume"), strPtr("job"))

	st, err := c.Analyze(context.Background())
	var ae *model.AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want AnalysisError", err)
	}
	if st.Phase != Failed || st.Result != nil {
		t.Errorf("state = %+v", st)
	}

	st, err = c.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if st != (State{}) {
		t.Errorf("after reset = %+v", st)
	}
}

type panicAnalyzer struct{}

func (panicAnalyzer) Analyze(_ context.Context, _, _ string) (*model.AnalysisResult, error) {
	panic("provider client blew up")
}

func TestController_PanicEndsAttempt(t *testing.T) {
	c := NewController(panicAnalyzer{})
	c.SetInputs(strPtr("resume"), strPtr("job"))

	st, err := c.Analyze(context.Background())
	var ae *model.AnalysisError
	if !errors.As(err, &ae) || ae.Kind != model.KindProvider {
		t.Fatalf("err = %v, want provider AnalysisError", err)
	}
	if st.Phase != Failed || st.Result != nil {
		t.Errorf("state = %+v, want failed without result", st)
	}
	if st.ResumeText != "resume" || st.JobDescription != "job" {
		t.Error("inputs should survive the failed attempt")
	}

	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset after panic: %v", err)
	}
	if c.State().Phase != Idle {
		t.Errorf("phase = %v, want idle", c.State().Phase)
	}
}
