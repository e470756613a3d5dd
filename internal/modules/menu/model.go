package menu

import "time"

const (
	KindCoffee      = "coffee"
	KindSnack       = "snack"
	KindReservation = "reservation"
)

type Item struct {
	ID          string    `gorm:"primaryKey;type:char(36)"`
	Name        string    `gorm:"size:100;not null"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex:ux_menu_items_slug"`
	Description string    `gorm:"size:255;not null;default:''"`
	Kind        string    `gorm:"size:16;not null"`
	PriceCents  int64     `gorm:"not null"`
	ImageKey    string    `gorm:"size:255;not null;default:''"`
	ImageURL    string    `gorm:"size:255;not null;default:''"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Item) TableName() string { return "menu_items" }

func validKind(k string) bool {
	return k == KindCoffee || k == KindSnack || k == KindReservation
}
