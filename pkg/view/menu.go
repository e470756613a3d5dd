package view

import "github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Price       string `json:"price"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url,omitempty"`
}

func FromMenuItem(it menu.Item) MenuItem {
	return MenuItem{
		ID:          it.ID,
		Name:        it.Name,
		Slug:        it.Slug,
		Description: it.Description,
		Kind:        it.Kind,
		Price:       FormatBRL(it.PriceCents),
		PriceCents:  it.PriceCents,
		ImageURL:    it.ImageURL,
	}
}

func FromMenu(items []menu.Item) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		out = append(out, FromMenuItem(it))
	}
	return out
}
