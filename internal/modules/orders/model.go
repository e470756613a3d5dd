package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

// Status is the order lifecycle state as last observed from the store.
// The client never computes it locally.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusFinalized Status = "finalized"
	StatusRejected  Status = "rejected"
)

// AllStatuses lists the four buckets in board order.
var AllStatuses = []Status{StatusPending, StatusApproved, StatusFinalized, StatusRejected}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusApproved, StatusFinalized, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Terminal: no transition leaves these states.
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusRejected
}

type LineItem struct {
	Name       string
	PriceCents int64
	Quantity   int
}

func (li LineItem) SubtotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

type Order struct {
	ID            string
	Email         string
	Items         []LineItem
	TotalCents    int64
	PaymentMethod string
	OrderType     string
	Address       string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// flexID tolerates stores that serialize ids as numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type wireItem struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

type wireOrder struct {
	ID            flexID     `json:"id"`
	Email         string     `json:"email"`
	CartItems     []wireItem `json:"cartItems"`
	PaymentMethod string     `json:"paymentMethod"`
	OrderType     string     `json:"orderType"`
	Address       string     `json:"address"`
	Valor         string     `json:"valor"`
	Status        *string    `json:"status"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

// ParseOrder validates one raw store record. Missing or mistyped id, status or
// line items make the record malformed; an unknown status string counts too.
func ParseOrder(raw []byte) (Order, error) {
	var w wireOrder
	if err := json.Unmarshal(raw, &w); err != nil {
		return Order{}, apperr.MalformedErr(err)
	}
	if w.ID == "" {
		return Order{}, apperr.MalformedErr(fmt.Errorf("order without id"))
	}
	if w.Status == nil {
		return Order{}, apperr.MalformedErr(fmt.Errorf("order %s without status", w.ID))
	}
	st, err := ParseStatus(*w.Status)
	if err != nil {
		return Order{}, apperr.MalformedErr(fmt.Errorf("order %s: %w", w.ID, err))
	}
	if len(w.CartItems) == 0 {
		return Order{}, apperr.MalformedErr(fmt.Errorf("order %s without line items", w.ID))
	}

	items := make([]LineItem, 0, len(w.CartItems))
	var computed int64
	for i, wi := range w.CartItems {
		if wi.Name == "" || wi.Price == nil || wi.Quantity == nil || *wi.Price < 0 || *wi.Quantity <= 0 {
			return Order{}, apperr.MalformedErr(fmt.Errorf("order %s: invalid line item %d", w.ID, i))
		}
		li := LineItem{
			Name:       wi.Name,
			PriceCents: CentsFromFloat(*wi.Price),
			Quantity:   *wi.Quantity,
		}
		computed += li.SubtotalCents()
		items = append(items, li)
	}

	total := computed
	if w.Valor != "" {
		if cents, err := ParseMoney(w.Valor); err == nil {
			total = cents
		}
	}

	return Order{
		ID:            string(w.ID),
		Email:         w.Email,
		Items:         items,
		TotalCents:    total,
		PaymentMethod: w.PaymentMethod,
		OrderType:     w.OrderType,
		Address:       w.Address,
		Status:        st,
		CreatedAt:     parseTime(w.CreatedAt),
		UpdatedAt:     parseTime(w.UpdatedAt),
	}, nil
}

// ParseBucket decodes one fetched bucket. Malformed records are dropped (the
// returned count reports how many); duplicate ids reject the whole bucket so
// the previous content is retained by the caller.
func ParseBucket(raw []byte) ([]Order, int, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, apperr.MalformedErr(err)
	}

	out := make([]Order, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	dropped := 0
	for _, r := range rows {
		o, err := ParseOrder(r)
		if err != nil {
			dropped++
			continue
		}
		if _, dup := seen[o.ID]; dup {
			return nil, dropped, apperr.MalformedErr(fmt.Errorf("%w: id %s", ErrDuplicateID, o.ID))
		}
		seen[o.ID] = struct{}{}
		out = append(out, o)
	}
	return out, dropped, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CentsFromFloat converts a store decimal (e.g. 8.0) to integer cents.
func CentsFromFloat(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ParseMoney parses a two-decimal string such as "21.00" into cents.
func ParseMoney(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return CentsFromFloat(v), nil
}

// FormatMoney renders cents with two decimals for the store wire format.
func FormatMoney(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}
