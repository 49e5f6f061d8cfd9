package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/consultly/backend/internal/config"
)

// Gateway is the narrow capability surface the payment orchestrator needs from
// the payment provider. Amounts are in minor currency units.
type Gateway interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)
	CapturePayment(ctx context.Context, req *CaptureRequest) (*Payment, error)
}

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type CaptureRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	OrderID  string            `json:"order_id"`
	Method   string            `json:"method"`
	Email    string            `json:"email"`
	Contact  string            `json:"contact"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Payment struct {
	ID               string  `json:"id"`
	Entity           string  `json:"entity"`
	Amount           int64   `json:"amount"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	OrderID          string  `json:"order_id"`
	Method           string  `json:"method"`
	Captured         bool    `json:"captured"`
	Email            string  `json:"email"`
	Contact          string  `json:"contact"`
	ErrorCode        *string `json:"error_code"`
	ErrorDescription *string `json:"error_description"`
	CreatedAt        int64   `json:"created_at"`
}

// GatewayError carries the upstream status and diagnostic payload of a
// non-success gateway response.
type GatewayError struct {
	Operation  string
	StatusCode int
	Body       json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed with status %d", e.Operation, e.StatusCode)
}

// RazorpayClient talks to the Razorpay Orders and Payments APIs with Basic
// auth from the configured key pair.
type RazorpayClient struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg *config.Config) *RazorpayClient {
	return &RazorpayClient{
		httpClient: &http.Client{Timeout: cfg.GatewayTimeout},
		baseURL:    cfg.RazorpayBaseURL,
		keyID:      cfg.RazorpayKeyID,
		keySecret:  cfg.RazorpayKeySecret,
	}
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", "create order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *RazorpayClient) CapturePayment(ctx context.Context, req *CaptureRequest) (*Payment, error) {
	var payment Payment
	if err := c.post(ctx, "/payments", "capture payment", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *RazorpayClient) post(ctx context.Context, path, operation string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &GatewayError{Operation: operation, StatusCode: resp.StatusCode, Body: raw}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}
