package menu

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/slug"
)

type seedItem struct {
	name       string
	desc       string
	kind       string
	priceCents int64
}

var catalog = []seedItem{
	{"Espresso", "Café curto e intenso.", KindCoffee, 800},
	{"Cappuccino", "Espresso com leite vaporizado e espuma.", KindCoffee, 1200},
	{"Latte", "Espresso com bastante leite.", KindCoffee, 1000},
	{"Mocha", "Espresso com chocolate e leite.", KindCoffee, 1400},
	{"Coxinha", "Salgado de frango.", KindSnack, 600},
	{"Pão de Queijo", "Quentinho, direto do forno.", KindSnack, 500},
	{"Reserva de Mesa", "Garanta sua mesa no salão.", KindReservation, 0},
}

// Seed inserts the default catalog, skipping items that already exist.
func Seed(ctx context.Context, db *gorm.DB) error {
	repo := NewRepo(db)
	for _, si := range catalog {
		sl := slug.FromName(si.name)
		n, err := repo.CountBySlug(ctx, sl)
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		now := time.Now()
		it := Item{
			ID:          uuid.NewString(),
			Name:        si.name,
			Slug:        sl,
			Description: si.desc,
			Kind:        si.kind,
			PriceCents:  si.priceCents,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, &it); err != nil {
			return err
		}
	}
	return nil
}
