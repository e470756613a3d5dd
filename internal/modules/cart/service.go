package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

const (
	KindCoffee      = "coffee"
	KindSnack       = "snack"
	KindReservation = "reservation"
)

type Item struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	Kind       string `json:"kind,omitempty"`
}

// Record persists the whole cart per user as one object. Every mutation
// writes the full sequence back (write-through), mirroring how the cart is
// replaced wholesale on clear.
type Record struct {
	UserID    string    `gorm:"primaryKey;type:char(36)"`
	ItemsJSON string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Record) TableName() string { return "carts" }

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Add appends to the cart sequence. Repeated additions of the same product
// create distinct entries; nothing is merged by name.
func (s *Service) Add(ctx context.Context, userID string, it Item) ([]Item, error) {
	if err := validateItem(it); err != nil {
		return nil, err
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	items = append(items, it)
	if err := s.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Items returns the current cart sequence in insertion order.
func (s *Service) Items(ctx context.Context, userID string) ([]Item, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(rec.ItemsJSON), &items); err != nil {
		return nil, apperr.Wrap(err)
	}
	return items, nil
}

// Clear replaces the cart with the empty sequence.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.save(ctx, userID, []Item{})
}

func (s *Service) save(ctx context.Context, userID string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return apperr.Wrap(err)
	}
	rec := Record{UserID: userID, ItemsJSON: string(raw), UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func validateItem(it Item) error {
	fields := map[string]string{}
	if it.Name == "" {
		fields["name"] = "Nome é obrigatório."
	}
	if it.PriceCents < 0 {
		fields["price"] = "Preço não pode ser negativo."
	}
	if it.Quantity <= 0 {
		fields["quantity"] = "Quantidade deve ser positiva."
	}
	switch it.Kind {
	case "", KindCoffee, KindSnack, KindReservation:
	default:
		fields["kind"] = "Tipo de item inválido."
	}
	if len(fields) > 0 {
		return apperr.InvalidErr("Item inválido.", fields)
	}
	return nil
}

// TotalCents accumulates unit price times quantity in integer cents; two
// decimal rounding happens only at presentation.
func TotalCents(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}

// TotalQuantity is the badge count: the sum of quantities.
func TotalQuantity(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
