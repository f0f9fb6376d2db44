package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/model"
)

type draftCacheStub struct {
	mu     sync.Mutex
	drafts map[string]*model.IntakeForm
	writes int
}

func newDraftCacheStub() *draftCacheStub {
	return &draftCacheStub{drafts: make(map[string]*model.IntakeForm)}
}

func (s *draftCacheStub) SetDraft(ctx context.Context, userID string, form *model.IntakeForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = form
	s.writes++
	return nil
}

func (s *draftCacheStub) GetDraft(ctx context.Context, userID string) (*model.IntakeForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[userID], nil
}

func (s *draftCacheStub) DeleteDraft(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

func (s *draftCacheStub) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func newTestAutosaver(stub *draftCacheStub, delay time.Duration) *Autosaver {
	a := NewAutosaver(NewFormService(nil, nil, stub))
	a.delay = delay
	return a
}

func TestAutosaverDebouncesWrites(t *testing.T) {
	stub := newDraftCacheStub()
	a := newTestAutosaver(stub, 20*time.Millisecond)
	defer a.Close()

	for i := 0; i < 5; i++ {
		a.Schedule("user-1", model.IntakeForm{Title: "draft", Background: "rev"})
	}

	require.Eventually(t, func() bool {
		return stub.writeCount() == 1
	}, time.Second, 5*time.Millisecond)

	// No further writes after the window closes.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, stub.writeCount())
}

func TestAutosaverCancel(t *testing.T) {
	stub := newDraftCacheStub()
	a := newTestAutosaver(stub, 20*time.Millisecond)
	defer a.Close()

	a.Schedule("user-1", model.IntakeForm{Title: "draft"})
	a.Cancel("user-1")

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, stub.writeCount())
}

func TestAutosaverCloseStopsScheduling(t *testing.T) {
	stub := newDraftCacheStub()
	a := newTestAutosaver(stub, 10*time.Millisecond)

	a.Close()
	a.Schedule("user-1", model.IntakeForm{Title: "draft"})

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, stub.writeCount())
}
