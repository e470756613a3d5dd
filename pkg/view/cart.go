package view

import "github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"

type CartLine struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Kind     string `json:"kind,omitempty"`
	Subtotal string `json:"subtotal"`
}

type Cart struct {
	Items    []CartLine `json:"items"`
	Total    string     `json:"total"`
	Quantity int        `json:"quantity"`
}

func FromCart(items []cart.Item) Cart {
	out := Cart{
		Items:    make([]CartLine, 0, len(items)),
		Total:    FormatBRL(cart.TotalCents(items)),
		Quantity: cart.TotalQuantity(items),
	}
	for _, it := range items {
		out.Items = append(out.Items, CartLine{
			Name:     it.Name,
			Price:    FormatBRL(it.PriceCents),
			Quantity: it.Quantity,
			Kind:     it.Kind,
			Subtotal: FormatBRL(it.PriceCents * int64(it.Quantity)),
		})
	}
	return out
}
