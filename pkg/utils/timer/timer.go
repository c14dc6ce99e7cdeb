// Package timer provides simple wall-clock timing for multi-stage command output.
package timer

import (
	"sync"
	"time"
)

// Timer tracks the total runtime of a command and the runtime of its current stage.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the current stage's elapsed time.
	GetTiming() (total time.Duration, stage time.Duration)
}

// New creates a started Timer.
func New() Timer {
	t := &clockTimer{now: time.Now}
	t.Start()

	return t
}

// NewWithClock creates a started Timer using the provided clock function (for testing).
func NewWithClock(now func() time.Time) Timer {
	t := &clockTimer{now: now}
	t.Start()

	return t
}

type clockTimer struct {
	mu         sync.Mutex
	now        func() time.Time
	start      time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.stageStart = t.start
}

func (t *clockTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = t.now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.now()

	return current.Sub(t.start), current.Sub(t.stageStart)
}
