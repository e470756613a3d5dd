package view

import (
	"time"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
)

type Bucket struct {
	Status    string  `json:"status"`
	Orders    []Order `json:"orders"`
	FetchedAt string  `json:"fetched_at,omitempty"`
	LastError string  `json:"last_error,omitempty"`
}

// Board is the operator view: the four buckets plus poll cycle state.
type Board struct {
	Buckets  []Bucket `json:"buckets"`
	State    string   `json:"state"`
	Loading  bool     `json:"loading"`
	Selected string   `json:"selected,omitempty"`
}

type boardSource interface {
	Get(status orders.Status) []orders.Order
	FetchedAt(status orders.Status) time.Time
}

func FromBoard(reg boardSource, state orders.PollerState, loading bool, errs map[orders.Status]string, selected string) Board {
	b := Board{
		State:    string(state),
		Loading:  loading,
		Selected: selected,
	}
	for _, st := range orders.AllStatuses {
		bucket := Bucket{
			Status:    string(st),
			Orders:    FromOrders(reg.Get(st)),
			LastError: errs[st],
		}
		if at := reg.FetchedAt(st); !at.IsZero() {
			bucket.FetchedAt = at.Format(time.RFC3339)
		}
		b.Buckets = append(b.Buckets, bucket)
	}
	return b
}
