package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls int32
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	atomic.AddInt32(&r.calls, 1)
	return r.err
}

func TestDisabledSchedulerDoesNothing(t *testing.T) {
	r := &countingReloader{}
	s := New(0, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, int32(0), atomic.LoadInt32(&r.calls))
}

func TestSchedulerRefreshesPeriodically(t *testing.T) {
	r := &countingReloader{err: errors.New("source down")}
	s := New(time.Second, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.Running())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&r.calls) >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestRunSurvivesReloadError(t *testing.T) {
	r := &countingReloader{err: errors.New("boom")}
	s := New(time.Minute, r)
	s.run()
	assert.Equal(t, int32(1), atomic.LoadInt32(&r.calls))
}
