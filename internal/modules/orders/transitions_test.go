package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

type fakeUpdater struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeUpdater) UpdateStatus(_ context.Context, id string, st Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id+"->"+string(st))
	return f.err
}

func (f *fakeUpdater) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeRefresher struct {
	mu    sync.Mutex
	count int
}

func (f *fakeRefresher) Refresh(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
}

func (f *fakeRefresher) refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func boardWith(t *testing.T, st Status, id string) (*Controller, *fakeUpdater, *fakeRefresher) {
	t.Helper()
	reg := NewRegistry()
	reg.ReplaceBucket(st, []Order{mkOrder(id, time.Now())})
	store := &fakeUpdater{}
	refresh := &fakeRefresher{}
	return NewController(store, reg, refresh, testLogger()), store, refresh
}

func TestController_ApproveFromPending(t *testing.T) {
	c, store, refresh := boardWith(t, StatusPending, "ord-1")
	c.Select("ord-1")

	err := c.Apply(context.Background(), ActionApprove, "ord-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"ord-1->approved"}, store.calls)
	assert.Equal(t, 1, refresh.refreshes())

	_, selected := c.Selected()
	assert.False(t, selected, "successful transition clears the open detail")
}

func TestController_RejectFromPending(t *testing.T) {
	c, store, _ := boardWith(t, StatusPending, "ord-2")

	require.NoError(t, c.Apply(context.Background(), ActionReject, "ord-2"))
	assert.Equal(t, []string{"ord-2->rejected"}, store.calls)
}

func TestController_FinalizeRequiresApproved(t *testing.T) {
	c, store, refresh := boardWith(t, StatusPending, "ord-3")

	err := c.Apply(context.Background(), ActionFinalize, "ord-3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.True(t, apperr.IsKind(err, apperr.Invalid))

	// Precondition failed before any network call.
	assert.Equal(t, 0, store.callCount())
	assert.Equal(t, 0, refresh.refreshes())
}

func TestController_FinalizeFromApproved(t *testing.T) {
	c, store, _ := boardWith(t, StatusApproved, "ord-4")

	require.NoError(t, c.Apply(context.Background(), ActionFinalize, "ord-4"))
	assert.Equal(t, []string{"ord-4->finalized"}, store.calls)
}

func TestController_UnknownOrder(t *testing.T) {
	c, store, _ := boardWith(t, StatusPending, "ord-5")

	err := c.Apply(context.Background(), ActionApprove, "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOrder))
	assert.Equal(t, 0, store.callCount())
}

func TestController_StoreFailureLeavesStateUntouched(t *testing.T) {
	c, store, refresh := boardWith(t, StatusPending, "ord-6")
	store.err = apperr.TransportErr("Falha ao atualizar o pedido.", errors.New("timeout"))
	c.Select("ord-6")

	err := c.Apply(context.Background(), ActionApprove, "ord-6")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transport))

	assert.Equal(t, 0, refresh.refreshes())
	_, selected := c.Selected()
	assert.True(t, selected, "failed transition keeps the detail open")
}

func TestController_AllowedActions(t *testing.T) {
	reg := NewRegistry()
	now := time.Now()
	reg.ReplaceBucket(StatusPending, []Order{mkOrder("p", now)})
	reg.ReplaceBucket(StatusApproved, []Order{mkOrder("a", now)})
	reg.ReplaceBucket(StatusFinalized, []Order{mkOrder("f", now)})
	c := NewController(&fakeUpdater{}, reg, &fakeRefresher{}, testLogger())

	assert.ElementsMatch(t, []Action{ActionApprove, ActionReject}, c.AllowedActions("p"))
	assert.Equal(t, []Action{ActionFinalize}, c.AllowedActions("a"))
	assert.Empty(t, c.AllowedActions("f"))
	assert.Empty(t, c.AllowedActions("nope"))
}
