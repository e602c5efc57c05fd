package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bwalia/kisaan.com-sub001/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client talks to the remote cart/order gateway. Each endpoint has exactly one
// request and one response schema; responses that do not match decode as an
// error, they are never probed for alternative shapes.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		tokens: tokens,
	}
}

// CartResponse is the authoritative cart snapshot.
type CartResponse struct {
	Cart  map[string]domain.CartLine `json:"cart"`
	Total float64                    `json:"total"`
}

// AddItemRequest is the body of a cart add call.
type AddItemRequest struct {
	ProductUUID string `json:"product_uuid"`
	Quantity    int    `json:"quantity"`
	VariantUUID string `json:"variant_uuid,omitempty"`
}

func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	if out.Cart == nil {
		out.Cart = map[string]domain.CartLine{}
	}
	return &out, nil
}

func (c *Client) GetCartTotals(ctx context.Context) (*domain.CartTotals, error) {
	var out domain.CartTotals
	if err := c.do(ctx, http.MethodGet, "/cart/totals", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, req AddItemRequest) error {
	return c.do(ctx, http.MethodPost, "/cart/add", req, nil)
}

func (c *Client) RemoveItem(ctx context.Context, productUUID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove/"+productUUID, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSessionResponse, error) {
	var out domain.CheckoutSessionResponse
	if err := c.do(ctx, http.MethodPost, "/checkout-session", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	body := map[string]string{"session_id": sessionID}
	var out domain.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/payments/confirm", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response failed: %w", path, err)
	}
	return nil
}
