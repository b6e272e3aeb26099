package httpapi

import (
	"sync"
	"sync/atomic"
)

// LiveRegistry tracks open live-practice sessions so shutdown can drain
// them: once draining starts, new sessions are refused while open ones run
// to completion. The mutex keeps the draining check and the WaitGroup
// increment atomic, so no session slips in after StartDraining returns.
type LiveRegistry struct {
	mu       sync.Mutex
	draining bool
	wg       sync.WaitGroup
	count    atomic.Int64
}

func NewLiveRegistry() *LiveRegistry {
	return &LiveRegistry{}
}

// Add registers a session. It returns false when the registry is draining
// and the session must be refused.
func (lr *LiveRegistry) Add() bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.draining {
		return false
	}
	lr.wg.Add(1)
	lr.count.Add(1)
	return true
}

// Done marks a session finished. Call exactly once per successful Add.
func (lr *LiveRegistry) Done() {
	lr.count.Add(-1)
	lr.wg.Done()
}

// StartDraining makes all future Add calls return false.
func (lr *LiveRegistry) StartDraining() {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.draining = true
}

// ActiveCount returns the number of open sessions.
func (lr *LiveRegistry) ActiveCount() int64 {
	return lr.count.Load()
}

// Wait blocks until every open session has called Done.
func (lr *LiveRegistry) Wait() {
	lr.wg.Wait()
}
