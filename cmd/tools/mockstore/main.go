package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory stand-in for the external order store, for local development.
// Serves the /pedidos endpoints the app consumes.

type item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal,omitempty"`
}

type order struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CartItems     []item `json:"cartItems"`
	PaymentMethod string `json:"paymentMethod"`
	OrderType     string `json:"orderType"`
	Address       string `json:"address"`
	Valor         string `json:"valor"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type store struct {
	mu     sync.Mutex
	orders map[string]*order
}

func newStore() *store {
	s := &store{orders: make(map[string]*order)}
	s.put("pending", "maria@example.com", []item{{Name: "Espresso", Price: 8.0, Quantity: 2}}, "16.00")
	s.put("approved", "jose@example.com", []item{{Name: "Coxinha", Price: 6.0, Quantity: 1}}, "6.00")
	return s
}

func (s *store) put(status, email string, items []item, valor string) *order {
	now := time.Now().UTC().Format(time.RFC3339)
	o := &order{
		ID:            uuid.NewString(),
		Email:         email,
		CartItems:     items,
		PaymentMethod: "in_store",
		OrderType:     "pickup",
		Address:       "Retirada na loja",
		Valor:         valor,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.orders[o.ID] = o
	return o
}

func (s *store) byStatus(status string) []*order {
	out := []*order{}
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func (s *store) byEmail(email string) []*order {
	out := []*order{}
	for _, o := range s.orders {
		if strings.EqualFold(o.Email, email) {
			out = append(out, o)
		}
	}
	return out
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	s := newStore()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/pedidos/status/", func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimPrefix(r.URL.Path, "/api/pedidos/status/")
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.byStatus(status))
	})

	mux.HandleFunc("/api/pedidos/email/", func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimPrefix(r.URL.Path, "/api/pedidos/email/")
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.byEmail(email))
	})

	mux.HandleFunc("/api/pedidos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var in order
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		o := s.put("pending", in.Email, in.CartItems, in.Valor)
		o.PaymentMethod = in.PaymentMethod
		o.OrderType = in.OrderType
		o.Address = in.Address
		writeJSON(w, http.StatusCreated, o)
	})

	mux.HandleFunc("/api/pedidos/", func(w http.ResponseWriter, r *http.Request) {
		// PUT /api/pedidos/{id}/status
		if r.Method != http.MethodPut || !strings.HasSuffix(r.URL.Path, "/status") {
			http.NotFound(w, r)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/pedidos/"), "/status")
		var in struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		o, ok := s.orders[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		o.Status = in.Status
		o.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, http.StatusOK, o)
	})

	fmt.Printf("mock order store on %s\n", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
