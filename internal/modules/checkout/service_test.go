package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/payments"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storeclient"
)

type MockCartStore struct{ mock.Mock }

func (m *MockCartStore) Items(ctx context.Context, userID string) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCartStore) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProfileStore struct{ mock.Mock }

func (m *MockProfileStore) Get(ctx context.Context, userID string) (profile.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(profile.Profile), args.Error(1)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Create(ctx context.Context, payload storeclient.CreateOrderPayload) (orders.Order, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(orders.Order), args.Error(1)
}

type MockProvider struct{ mock.Mock }

func (m *MockProvider) CreatePreference(ctx context.Context, req payments.PreferenceRequest) (payments.Preference, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payments.Preference), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Success(userID, msg string) { m.Called(userID, msg) }
func (m *MockNotifier) Error(userID, msg string)   { m.Called(userID, msg) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoItems() []cart.Item {
	return []cart.Item{
		{Name: "Espresso", PriceCents: 800, Quantity: 2, Kind: cart.KindCoffee},
		{Name: "Pão de Queijo", PriceCents: 500, Quantity: 1, Kind: cart.KindSnack},
	}
}

func newService(carts *MockCartStore, profiles *MockProfileStore, store *MockOrderCreator, provider *MockProvider, notifier *MockNotifier) *Service {
	return NewService(carts, profiles, store, provider, notifier,
		"https://cafe.example/", "pix", testLogger())
}

func TestFinalize_RequiresLogin(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", LoggedIn: false})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))

	// No collaborator was touched.
	carts.AssertNotCalled(t, "Items", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything)
}

func TestFinalize_DeliveryWithoutAddressAborts(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:        "u1",
		PaymentMethod: profile.PaymentInStore,
		OrderType:     profile.OrderDelivery,
	}, nil)

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Fields, "delivery_address")

	// Validation blocks before any network call.
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "CreatePreference", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	assert.False(t, s.Busy("u1"))
}

func TestFinalize_InStoreSuccessClearsCart(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:        "u1",
		PaymentMethod: profile.PaymentInStore,
		OrderType:     profile.OrderPickup,
	}, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(p storeclient.CreateOrderPayload) bool {
		return p.Valor == "21.00" &&
			p.Address == PickupAddress &&
			len(p.CartItems) == 2 &&
			p.CartItems[0].Subtotal == "16.00" &&
			p.Email == "joao@example.com"
	})).Return(orders.Order{ID: "new-1", Status: orders.StatusPending}, nil)
	carts.On("Clear", mock.Anything, "u1").Return(nil)
	notifier.On("Success", "u1", "Pedido finalizado com sucesso!").Return()

	res, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "joao@example.com", LoggedIn: true})
	require.NoError(t, err)
	assert.True(t, res.CartCleared)
	require.NotNil(t, res.Order)
	assert.Equal(t, "new-1", res.Order.ID)
	assert.Empty(t, res.RedirectURL)

	carts.AssertExpectations(t)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestFinalize_InStoreFailurePreservesCart(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:        "u1",
		PaymentMethod: profile.PaymentInStore,
		OrderType:     profile.OrderPickup,
	}, nil)
	store.On("Create", mock.Anything, mock.Anything).
		Return(orders.Order{}, apperr.TransportErr("Falha ao comunicar com o servidor de pedidos.", errors.New("503")))
	notifier.On("Error", "u1", "Falha ao processar o pedido. Tente novamente.").Return()

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transport))

	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
	assert.False(t, s.Busy("u1"))
}

func TestFinalize_OnlineRedirectKeepsCart(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:        "u1",
		PaymentMethod: profile.PaymentOnline,
		OrderType:     profile.OrderPickup,
	}, nil)
	provider.On("CreatePreference", mock.Anything, mock.MatchedBy(func(req payments.PreferenceRequest) bool {
		return req.Title == "Espresso (x2), Pão de Queijo (x1)" &&
			req.Price == 21.0 &&
			req.Quantity == 1 &&
			req.PaymentMethod == "pix" &&
			req.BackURLs.Success == "https://cafe.example/payments/callback/success"
	})).Return(payments.Preference{PreferenceID: "pref-1", InitPoint: "https://pay.example/p/1"}, nil)

	res, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/p/1", res.RedirectURL)
	assert.False(t, res.CartCleared, "online path defers cart clearing to the redirect")

	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertExpectations(t)
}

func TestFinalize_OnlineMissingInitPoint(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:        "u1",
		PaymentMethod: profile.PaymentOnline,
		OrderType:     profile.OrderPickup,
	}, nil)
	provider.On("CreatePreference", mock.Anything, mock.Anything).
		Return(payments.Preference{PreferenceID: "pref-2"}, nil)
	notifier.On("Error", "u1", "Erro: a API não retornou um link de pagamento.").Return()

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, payments.ErrNoInitPoint))

	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestFinalize_EmptyCart(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return([]cart.Item{}, nil)

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Invalid))
	profiles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestFinalize_DeliveryAddressFlowsToPayload(t *testing.T) {
	carts := new(MockCartStore)
	profiles := new(MockProfileStore)
	store := new(MockOrderCreator)
	provider := new(MockProvider)
	notifier := new(MockNotifier)
	s := newService(carts, profiles, store, provider, notifier)

	carts.On("Items", mock.Anything, "u1").Return(twoItems(), nil)
	profiles.On("Get", mock.Anything, "u1").Return(profile.Profile{
		UserID:          "u1",
		PaymentMethod:   profile.PaymentInStore,
		OrderType:       profile.OrderDelivery,
		DeliveryAddress: "Rua das Flores, 123",
	}, nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(p storeclient.CreateOrderPayload) bool {
		return p.Address == "Rua das Flores, 123" && p.OrderType == profile.OrderDelivery
	})).Return(orders.Order{ID: "new-2", Status: orders.StatusPending}, nil)
	carts.On("Clear", mock.Anything, "u1").Return(nil)
	notifier.On("Success", "u1", mock.Anything).Return()

	_, err := s.Finalize(context.Background(), FinalizeInput{UserID: "u1", Email: "a@b.c", LoggedIn: true})
	require.NoError(t, err)
	store.AssertExpectations(t)
}
