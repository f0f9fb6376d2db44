package service

import (
	"context"
	"log"
	"sync"
	"time"

	"rfxintake/internal/model"
)

const autosaveDelay = 30 * time.Second

// Autosaver debounces draft persistence per user: each Schedule call
// resets the timer, and only the last snapshot within the window is
// written. One instance serves all sessions.
type Autosaver struct {
	forms *FormService
	delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewAutosaver creates a new autosaver
func NewAutosaver(forms *FormService) *Autosaver {
	return &Autosaver{
		forms:  forms,
		delay:  autosaveDelay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule queues a draft write for the user, replacing any pending
// one. The snapshot is copied by value so later edits to the caller's
// form do not leak into the write.
func (a *Autosaver) Schedule(userID string, form model.IntakeForm) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	if timer, ok := a.timers[userID]; ok {
		timer.Stop()
	}
	a.timers[userID] = time.AfterFunc(a.delay, func() {
		a.flush(userID, form)
	})
}

// Cancel drops the user's pending draft write, if any.
func (a *Autosaver) Cancel(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if timer, ok := a.timers[userID]; ok {
		timer.Stop()
		delete(a.timers, userID)
	}
}

// Close stops all pending timers. Pending drafts are not flushed;
// anything worth keeping was already saved explicitly.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	for userID, timer := range a.timers {
		timer.Stop()
		delete(a.timers, userID)
	}
}

func (a *Autosaver) flush(userID string, form model.IntakeForm) {
	a.mu.Lock()
	delete(a.timers, userID)
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.forms.SaveDraft(ctx, userID, &form); err != nil {
		log.Printf("Autosave failed for user %s: %v", userID, err)
	}
}
