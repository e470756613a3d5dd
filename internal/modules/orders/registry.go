package orders

import (
	"sync"
	"time"
)

// Registry holds the four status buckets as last fetched from the store.
// Buckets refresh independently, so FetchedAt can differ between them
// (eventual consistency, not an atomic snapshot).
type Registry struct {
	mu        sync.RWMutex
	buckets   map[Status][]Order
	fetchedAt map[Status]time.Time
	now       func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		buckets:   make(map[Status][]Order, len(AllStatuses)),
		fetchedAt: make(map[Status]time.Time, len(AllStatuses)),
		now:       time.Now,
	}
}

// ReplaceBucket unconditionally installs orders as the bucket content.
func (r *Registry) ReplaceBucket(status Status, orders []Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets[status] = append([]Order(nil), orders...)
	r.fetchedAt[status] = r.now()
}

// ApplyIfChanged replaces the bucket only when the change detector fires,
// so callers can skip re-render work on idempotent refreshes. Returns
// whether a replace happened.
func (r *Registry) ApplyIfChanged(status Status, orders []Order) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !BucketChanged(r.buckets[status], orders) {
		r.fetchedAt[status] = r.now()
		return false
	}
	r.buckets[status] = append([]Order(nil), orders...)
	r.fetchedAt[status] = r.now()
	return true
}

// Get returns a copy of the current bucket content.
func (r *Registry) Get(status Status) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Order(nil), r.buckets[status]...)
}

// FetchedAt returns when the bucket was last successfully refreshed.
func (r *Registry) FetchedAt(status Status) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fetchedAt[status]
}

// StatusOf looks an order up across all buckets and returns its locally
// known status.
func (r *Registry) StatusOf(id string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for st, bucket := range r.buckets {
		for _, o := range bucket {
			if o.ID == id {
				return st, true
			}
		}
	}
	return "", false
}

// Find returns the order with the given id, if any bucket holds it.
func (r *Registry) Find(id string) (Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, bucket := range r.buckets {
		for _, o := range bucket {
			if o.ID == id {
				return o, true
			}
		}
	}
	return Order{}, false
}
