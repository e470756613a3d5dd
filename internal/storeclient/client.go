package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

// Client talks to the external order store. It owns transport and decoding
// only; orders are parsed through the orders package so malformed records and
// duplicate ids follow the board's rules.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type OrderItemPayload struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal"`
}

type CreateOrderPayload struct {
	CartItems     []OrderItemPayload `json:"cartItems"`
	PaymentMethod string             `json:"paymentMethod"`
	OrderType     string             `json:"orderType"`
	Address       string             `json:"address"`
	Valor         string             `json:"valor"`
	Email         string             `json:"email"`
}

// FetchByStatus returns one bucket. Transport failures come back as transport
// errors; a bucket with duplicate ids is rejected as malformed so the caller
// keeps its previous content.
func (c *Client) FetchByStatus(ctx context.Context, status orders.Status) ([]orders.Order, error) {
	body, err := c.get(ctx, "/pedidos/status/"+url.PathEscape(string(status)))
	if err != nil {
		return nil, err
	}
	return c.parseBucket(ctx, body, string(status))
}

// FetchByEmail lists a customer's own orders.
func (c *Client) FetchByEmail(ctx context.Context, email string) ([]orders.Order, error) {
	body, err := c.get(ctx, "/pedidos/email/"+url.PathEscape(email))
	if err != nil {
		return nil, err
	}
	return c.parseBucket(ctx, body, "email:"+email)
}

// Create submits a new order (the in-store checkout path).
func (c *Client) Create(ctx context.Context, payload CreateOrderPayload) (orders.Order, error) {
	body, err := c.send(ctx, http.MethodPost, "/pedidos", payload)
	if err != nil {
		return orders.Order{}, err
	}
	o, perr := orders.ParseOrder(body)
	if perr != nil {
		return orders.Order{}, perr
	}
	return o, nil
}

// UpdateStatus requests a status transition. The store is the authority and
// may reject it.
func (c *Client) UpdateStatus(ctx context.Context, id string, status orders.Status) error {
	path := "/pedidos/" + url.PathEscape(id) + "/status"
	_, err := c.send(ctx, http.MethodPut, path, map[string]string{"status": string(status)})
	return err
}

func (c *Client) parseBucket(ctx context.Context, body []byte, scope string) ([]orders.Order, error) {
	got, dropped, err := orders.ParseBucket(body)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		c.log.LogAttrs(ctx, slog.LevelWarn, "malformed_orders_dropped",
			slog.String("bucket", scope),
			slog.Int("dropped", dropped),
		)
	}
	return got, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, apperr.Wrap(err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.TransportErr("Falha ao comunicar com o servidor de pedidos.", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperr.TransportErr("Falha ao comunicar com o servidor de pedidos.", err)
	}
	if res.StatusCode >= 400 {
		return nil, apperr.TransportErr(
			"Falha ao comunicar com o servidor de pedidos.",
			fmt.Errorf("order store: %s %s -> %d", method, path, res.StatusCode),
		)
	}
	return raw, nil
}
