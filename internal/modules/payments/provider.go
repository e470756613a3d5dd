package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the payment-initiation payload: a title summarizing
// the cart, the total price and a fixed quantity of one payment unit.
type PreferenceRequest struct {
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	PaymentMethod string   `json:"payment_method"`
	BackURLs      BackURLs `json:"back_urls"`
}

// Preference is the collaborator's answer. A missing InitPoint is a
// recoverable failure for the caller, not a transport error.
type Preference struct {
	PreferenceID      string `json:"preference_id"`
	InitPoint         string `json:"init_point"`
	ExternalReference string `json:"external_reference"`
}

type Provider interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)
}

// HTTPProvider posts initiation requests to the payment microservice.
type HTTPProvider struct {
	base string
	http *http.Client
	log  *slog.Logger
}

func NewHTTPProvider(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

func (p *HTTPProvider) CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return Preference{}, apperr.Wrap(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/payments", bytes.NewReader(raw))
	if err != nil {
		return Preference{}, apperr.Wrap(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(httpReq)
	if err != nil {
		return Preference{}, apperr.TransportErr("Falha ao processar o pagamento. Tente novamente.", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Preference{}, apperr.TransportErr("Falha ao processar o pagamento. Tente novamente.", err)
	}
	if res.StatusCode >= 400 {
		return Preference{}, apperr.TransportErr(
			"Falha ao processar o pagamento. Tente novamente.",
			fmt.Errorf("payment API: %d", res.StatusCode),
		)
	}

	var pref Preference
	if err := json.Unmarshal(body, &pref); err != nil {
		return Preference{}, apperr.TransportErr("Falha ao processar o pagamento. Tente novamente.", err)
	}

	p.log.Info("payment_preference_created",
		slog.String("preference_id", pref.PreferenceID),
		slog.Bool("has_init_point", pref.InitPoint != ""),
	)
	return pref, nil
}
