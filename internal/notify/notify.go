package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Center holds per-user transient notifications with a bounded lifetime: the
// auto-dismiss behaviour is expiry, clients never see a stale banner.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	byUser map[string][]Notification
	now    func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	return &Center{
		ttl:    ttl,
		byUser: make(map[string][]Notification),
		now:    time.Now,
	}
}

func (c *Center) Success(userID, msg string) { c.push(userID, KindSuccess, msg) }
func (c *Center) Error(userID, msg string)   { c.push(userID, KindError, msg) }

func (c *Center) push(userID string, kind Kind, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser[userID] = append(c.byUser[userID], Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		ExpiresAt: c.now().Add(c.ttl),
	})
}

// Active returns the not-yet-expired notifications for a user and prunes the
// rest.
func (c *Center) Active(userID string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.byUser[userID][:0]
	for _, n := range c.byUser[userID] {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		delete(c.byUser, userID)
		return nil
	}
	c.byUser[userID] = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}
