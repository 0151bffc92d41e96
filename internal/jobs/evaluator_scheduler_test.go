package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLister struct {
	ids []string
	err error
}

func (s stubLister) ListActiveIDs(context.Context) ([]string, error) {
	return s.ids, s.err
}

type stubEvaluator struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]bool
}

func (s *stubEvaluator) EvaluateDay(_ context.Context, companyID string) (attendance.EvaluationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, companyID)
	if s.failFor[companyID] {
		return attendance.EvaluationResult{}, errors.New("db down")
	}
	return attendance.EvaluationResult{CompanyID: companyID, Created: 3, Absent: 2, OnLeave: 1}, nil
}

func (s *stubEvaluator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type recordingAlerter struct {
	texts []string
}

func (a *recordingAlerter) Alert(_ context.Context, text string) {
	a.texts = append(a.texts, text)
}

func TestEvaluatorScheduler_AlertsOnFailedCompanies(t *testing.T) {
	alerts := &recordingAlerter{}
	ev := &stubEvaluator{failFor: map[string]bool{"c2": true}}
	s := jobs.NewEvaluatorScheduler(stubLister{ids: []string{"c1", "c2"}}, ev, time.Hour, zap.NewNop()).
		WithAlerter(alerts)

	_, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"attendance evaluation failed for 1 of 2 companies"}, alerts.texts)

	ev.failFor = nil
	_, err = s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts.texts, 1)
}

func TestEvaluatorScheduler_RunNow(t *testing.T) {
	t.Run("evaluates every company and keeps going after a failure", func(t *testing.T) {
		ev := &stubEvaluator{failFor: map[string]bool{"c2": true}}
		s := jobs.NewEvaluatorScheduler(stubLister{ids: []string{"c1", "c2", "c3"}}, ev, time.Hour, zap.NewNop())

		summary, err := s.RunNow(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2", "c3"}, ev.calls)
		assert.Equal(t, 3, summary.Companies)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, 6, summary.Created)
		assert.Equal(t, 4, summary.Absent)
		assert.Equal(t, 2, summary.OnLeave)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		ev := &stubEvaluator{}
		s := jobs.NewEvaluatorScheduler(stubLister{err: errors.New("boom")}, ev, time.Hour, zap.NewNop())

		_, err := s.RunNow(context.Background())

		assert.EqualError(t, err, "boom")
		assert.Empty(t, ev.calls)
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		ev := &stubEvaluator{}
		s := jobs.NewEvaluatorScheduler(stubLister{ids: []string{"c1"}}, ev, time.Hour, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.RunNow(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, ev.calls)
	})
}

func TestEvaluatorScheduler_StartRunsImmediatelyAndOnTick(t *testing.T) {
	ev := &stubEvaluator{}
	s := jobs.NewEvaluatorScheduler(stubLister{ids: []string{"c1"}}, ev, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return ev.callCount() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
