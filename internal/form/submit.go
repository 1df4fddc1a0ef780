package form

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-shuwen/internal/config"
)

// Submitter debounces submission completion. The loading indicator is a
// timed transition, not a real asynchronous computation: scheduling a new
// submission cancels the pending completion so exactly one completion
// fires per submission, never a stale one.
type Submitter struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arms the completion callback after d, replacing any pending one.
func (s *Submitter) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		slog.Debug(config.MsgSubmitReplaced, config.LogKeyComponent, config.CompForm)
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		// A replacement may have slipped in between firing and locking.
		if s.timer != t {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
	s.timer = t
}

// Stop cancels the pending completion, if any.
func (s *Submitter) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
