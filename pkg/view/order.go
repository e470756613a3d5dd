package view

import (
	"time"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
)

type OrderLine struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type Order struct {
	ID            string      `json:"id"`
	Email         string      `json:"email,omitempty"`
	Items         []OrderLine `json:"items"`
	Total         string      `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	OrderType     string      `json:"order_type"`
	Address       string      `json:"address"`
	Status        string      `json:"status"`
	CreatedAt     string      `json:"created_at,omitempty"`
	UpdatedAt     string      `json:"updated_at,omitempty"`
	Actions       []string    `json:"actions,omitempty"`
}

func FromOrder(o orders.Order, actions []orders.Action) Order {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, li := range o.Items {
		lines = append(lines, OrderLine{
			Name:     li.Name,
			Price:    FormatBRL(li.PriceCents),
			Quantity: li.Quantity,
			Subtotal: FormatBRL(li.SubtotalCents()),
		})
	}
	out := Order{
		ID:            o.ID,
		Email:         o.Email,
		Items:         lines,
		Total:         FormatBRL(o.TotalCents),
		PaymentMethod: o.PaymentMethod,
		OrderType:     o.OrderType,
		Address:       o.Address,
		Status:        string(o.Status),
		CreatedAt:     fmtTime(o.CreatedAt),
		UpdatedAt:     fmtTime(o.UpdatedAt),
	}
	for _, a := range actions {
		out.Actions = append(out.Actions, string(a))
	}
	return out
}

func FromOrders(list []orders.Order) []Order {
	out := make([]Order, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o, nil))
	}
	return out
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
