package menu

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListActive(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("kind asc, name asc").
		Find(&items).Error
	return items, err
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (Item, error) {
	var it Item
	err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&it).Error
	return it, err
}

func (r *Repo) Get(ctx context.Context, id string) (Item, error) {
	var it Item
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	return it, err
}

func (r *Repo) Create(ctx context.Context, it *Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *Repo) Update(ctx context.Context, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *Repo) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Item{}).Where("slug = ?", slug).Count(&n).Error
	return n, err
}
