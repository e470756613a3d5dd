package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

const (
	PaymentOnline  = "online"
	PaymentInStore = "in_store"

	OrderDelivery = "delivery"
	OrderPickup   = "pickup"
)

// Profile is persisted whole-object: any field change writes the entire row,
// never a partial update.
type Profile struct {
	UserID          string    `gorm:"primaryKey;type:char(36)"`
	PaymentMethod   string    `gorm:"type:varchar(16);not null"`
	OrderType       string    `gorm:"type:varchar(16);not null"`
	DeliveryAddress string    `gorm:"type:varchar(255);not null;default:''"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (Profile) TableName() string { return "profiles" }

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Get loads the profile, creating defaults on first use. A persisted payment
// method outside the valid set is corrected to online and written back.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := s.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = Profile{UserID: userID, PaymentMethod: PaymentOnline, OrderType: OrderPickup}
		if err := s.persist(ctx, &p); err != nil {
			return Profile{}, err
		}
		return p, nil
	}
	if err != nil {
		return Profile{}, apperr.Wrap(err)
	}

	if !validPayment(p.PaymentMethod) {
		p.PaymentMethod = PaymentOnline
		if err := s.persist(ctx, &p); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// Update replaces the whole profile after validation.
func (s *Service) Update(ctx context.Context, p Profile) (Profile, error) {
	fields := map[string]string{}
	if !validPayment(p.PaymentMethod) {
		fields["payment_method"] = "Método de pagamento inválido."
	}
	if p.OrderType != OrderDelivery && p.OrderType != OrderPickup {
		fields["order_type"] = "Tipo de pedido inválido."
	}
	if len(fields) > 0 {
		return Profile{}, apperr.InvalidErr("Perfil inválido.", fields)
	}

	if err := s.persist(ctx, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SaveAddress stores the delivery address, rejecting blank input.
func (s *Service) SaveAddress(ctx context.Context, userID, address string) (Profile, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Profile{}, apperr.InvalidErr("Por favor, insira um endereço válido.",
			map[string]string{"delivery_address": "Endereço é obrigatório."})
	}

	p, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p.DeliveryAddress = address
	if err := s.persist(ctx, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) persist(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func validPayment(m string) bool {
	return m == PaymentOnline || m == PaymentInStore
}
