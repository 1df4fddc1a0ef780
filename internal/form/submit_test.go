package form_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-shuwen/internal/form"
)

func TestSubmitter_FiresOnce(t *testing.T) {
	var fired atomic.Int32
	s := &form.Submitter{}

	done := make(chan struct{})
	s.Schedule(10*time.Millisecond, func() {
		fired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("completion never fired")
	}
	assert.Equal(t, int32(1), fired.Load())
}

func TestSubmitter_ReplacementCancelsPending(t *testing.T) {
	var first, second atomic.Int32
	s := &form.Submitter{}

	done := make(chan struct{})
	s.Schedule(50*time.Millisecond, func() { first.Add(1) })
	s.Schedule(10*time.Millisecond, func() {
		second.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replacement completion never fired")
	}

	// Give the first timer a chance to fire if the cancellation is broken.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced submission must never complete")
	assert.Equal(t, int32(1), second.Load())
}

func TestSubmitter_Stop(t *testing.T) {
	var fired atomic.Int32
	s := &form.Submitter{}

	s.Schedule(20*time.Millisecond, func() { fired.Add(1) })
	s.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestSubmitter_StopWithoutSchedule(t *testing.T) {
	s := &form.Submitter{}
	assert.NotPanics(t, func() { s.Stop() })
}
