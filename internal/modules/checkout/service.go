package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/payments"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storeclient"
)

// PickupAddress is the sentinel the store expects when nothing is delivered.
const PickupAddress = "Retirada na loja"

const fallbackTitle = "Produtos do Carrinho"

type CartStore interface {
	Items(ctx context.Context, userID string) ([]cart.Item, error)
	Clear(ctx context.Context, userID string) error
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

type OrderCreator interface {
	Create(ctx context.Context, payload storeclient.CreateOrderPayload) (orders.Order, error)
}

type Notifier interface {
	Success(userID, msg string)
	Error(userID, msg string)
}

// Service orchestrates finalize: auth gate, delivery-address gate, then the
// online (payment initiation + redirect) or in-store (direct order creation)
// branch. The cart survives every failure so the customer can retry.
type Service struct {
	carts    CartStore
	profiles ProfileStore
	store    OrderCreator
	payments payments.Provider
	notify   Notifier
	log      *slog.Logger

	baseURL    string
	instrument string

	mu   sync.Mutex
	busy map[string]bool
}

func NewService(carts CartStore, profiles ProfileStore, store OrderCreator, provider payments.Provider, notify Notifier, baseURL, instrument string, log *slog.Logger) *Service {
	return &Service{
		carts:      carts,
		profiles:   profiles,
		store:      store,
		payments:   provider,
		notify:     notify,
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		instrument: instrument,
		busy:       make(map[string]bool),
	}
}

type FinalizeInput struct {
	UserID   string
	Email    string
	LoggedIn bool
}

type FinalizeResult struct {
	// RedirectURL is set on the online path; the caller must navigate there.
	RedirectURL string
	// Order is set on the in-store path once the store confirms creation.
	Order       *orders.Order
	CartCleared bool
}

// Busy reports whether a finalize call is in flight for the user.
func (s *Service) Busy(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[userID]
}

func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (FinalizeResult, error) {
	// Preconditions run before the busy flag: an aborted finalize never
	// raised it in the first place.
	if !in.LoggedIn {
		return FinalizeResult{}, apperr.UnauthorizedErr("Faça login para finalizar o pedido.")
	}

	items, err := s.carts.Items(ctx, in.UserID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if len(items) == 0 {
		return FinalizeResult{}, apperr.InvalidErr("Carrinho vazio.", nil)
	}

	prof, err := s.profiles.Get(ctx, in.UserID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if prof.OrderType == profile.OrderDelivery && strings.TrimSpace(prof.DeliveryAddress) == "" {
		return FinalizeResult{}, apperr.InvalidErr("Por favor, insira um endereço de entrega.",
			map[string]string{"delivery_address": "Endereço de entrega é obrigatório."})
	}

	if !s.beginBusy(in.UserID) {
		return FinalizeResult{}, apperr.ConflictErr("Pedido já está sendo processado.")
	}
	defer s.endBusy(in.UserID)

	if prof.PaymentMethod == profile.PaymentOnline {
		return s.finalizeOnline(ctx, in, items)
	}
	return s.finalizeInStore(ctx, in, items, prof)
}

// finalizeOnline initiates the payment and hands back the redirect target.
// The cart is deliberately NOT cleared here: the order only exists once the
// payment provider confirms, and navigation away ends the session anyway.
func (s *Service) finalizeOnline(ctx context.Context, in FinalizeInput, items []cart.Item) (FinalizeResult, error) {
	totalCents := cart.TotalCents(items)

	pref, err := s.payments.CreatePreference(ctx, payments.PreferenceRequest{
		Title:         paymentTitle(items),
		Price:         float64(totalCents) / 100.0,
		Quantity:      1,
		PaymentMethod: s.instrument,
		BackURLs: payments.BackURLs{
			Success: s.baseURL + "/payments/callback/success",
			Failure: s.baseURL + "/payments/callback/failure",
			Pending: s.baseURL + "/payments/callback/pending",
		},
	})
	if err != nil {
		s.notify.Error(in.UserID, "Falha ao processar o pagamento. Tente novamente.")
		return FinalizeResult{}, err
	}
	if pref.InitPoint == "" {
		s.notify.Error(in.UserID, "Erro: a API não retornou um link de pagamento.")
		return FinalizeResult{}, &apperr.AppError{
			Kind:      apperr.Conflict,
			PublicMsg: "Erro: a API não retornou um link de pagamento.",
			Err:       payments.ErrNoInitPoint,
		}
	}

	s.log.Info("checkout_online_redirect",
		slog.String("user_id", in.UserID),
		slog.String("preference_id", pref.PreferenceID),
	)
	return FinalizeResult{RedirectURL: pref.InitPoint}, nil
}

func (s *Service) finalizeInStore(ctx context.Context, in FinalizeInput, items []cart.Item, prof profile.Profile) (FinalizeResult, error) {
	address := PickupAddress
	if prof.OrderType == profile.OrderDelivery {
		address = prof.DeliveryAddress
	}

	totalCents := cart.TotalCents(items)
	payload := storeclient.CreateOrderPayload{
		CartItems:     make([]storeclient.OrderItemPayload, 0, len(items)),
		PaymentMethod: prof.PaymentMethod,
		OrderType:     prof.OrderType,
		Address:       address,
		Valor:         orders.FormatMoney(totalCents),
		Email:         in.Email,
	}
	for _, it := range items {
		payload.CartItems = append(payload.CartItems, storeclient.OrderItemPayload{
			Name:     it.Name,
			Price:    float64(it.PriceCents) / 100.0,
			Quantity: it.Quantity,
			Subtotal: orders.FormatMoney(it.PriceCents * int64(it.Quantity)),
		})
	}

	created, err := s.store.Create(ctx, payload)
	if err != nil {
		s.notify.Error(in.UserID, "Falha ao processar o pedido. Tente novamente.")
		return FinalizeResult{}, err
	}

	cleared := true
	if err := s.carts.Clear(ctx, in.UserID); err != nil {
		cleared = false
		s.log.Warn("cart_clear_failed", slog.String("user_id", in.UserID), slog.Any("err", err))
	}
	s.notify.Success(in.UserID, "Pedido finalizado com sucesso!")

	s.log.Info("checkout_in_store_created",
		slog.String("user_id", in.UserID),
		slog.String("order_id", created.ID),
	)
	return FinalizeResult{Order: &created, CartCleared: cleared}, nil
}

func (s *Service) beginBusy(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[userID] {
		return false
	}
	s.busy[userID] = true
	return true
}

func (s *Service) endBusy(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, userID)
}

// paymentTitle summarizes the cart: "Espresso (x2), Coxinha (x1)".
func paymentTitle(items []cart.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", it.Name, it.Quantity))
	}
	title := strings.Join(parts, ", ")
	if title == "" {
		return fallbackTitle
	}
	return title
}
