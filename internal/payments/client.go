package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Client talks to the donations REST surface on behalf of an adapter.
// Payment calls run under the caller's (30s) context; the underlying
// transport timeout is a backstop, not the primary control.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: PaymentTimeout + 5*time.Second},
	}
}

// APIError is a non-2xx response from the donations API. Message carries the
// server's {message} (or {error}) body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("donations api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("donations api: unexpected status %d", e.StatusCode)
}

// userMessage extracts text safe to show the donor from an API failure.
func userMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(data, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}

// --- Request/response shapes for the donation endpoints ---

type CreateIntentRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Type     string            `json:"type"`
	Category string            `json:"category"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	DonationID   string `json:"donationId"`
}

type ConfirmRequest struct {
	PaymentIntentID string           `json:"paymentIntentId"`
	DonationID      string           `json:"donationId"`
	DonorInfo       models.DonorInfo `json:"donorInfo"`
}

type ConfirmResponse struct {
	TransactionID string           `json:"transactionId"`
	ReceiptURL    string           `json:"receiptUrl"`
	Donation      *models.Donation `json:"donation,omitempty"`
}

type CreateOrderRequest struct {
	Amount    float64          `json:"amount"`
	Currency  string           `json:"currency"`
	Type      string           `json:"type"`
	Category  string           `json:"category"`
	DonorInfo models.DonorInfo `json:"donorInfo"`
}

type CreateOrderResponse struct {
	OrderID    string `json:"orderId"`
	DonationID string `json:"donationId"`
}

type CaptureOrderRequest struct {
	OrderID string `json:"orderId"`
}

type MobileMoneyRecord struct {
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	Type          string           `json:"type"`
	Category      string           `json:"category"`
	DonorInfo     models.DonorInfo `json:"donorInfo"`
	PhoneNumber   string           `json:"phoneNumber"`
	Method        string           `json:"method"`
	TransactionID string           `json:"transactionId"`
}

func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	var out CreateIntentResponse
	if err := c.post(ctx, "/api/donations/create-intent", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmDonation(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error) {
	var out ConfirmResponse
	if err := c.post(ctx, "/api/donations/confirm", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePayPalOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := c.post(ctx, "/api/donations/paypal/create-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CapturePayPalOrder(ctx context.Context, req CaptureOrderRequest) (*ConfirmResponse, error) {
	var out ConfirmResponse
	if err := c.post(ctx, "/api/donations/paypal/capture-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordMobileMoney registers a client-confirmed mobile-money donation.
func (c *Client) RecordMobileMoney(ctx context.Context, rec MobileMoneyRecord) (*ConfirmResponse, error) {
	var out ConfirmResponse
	if err := c.post(ctx, "/api/donations/mobile-money", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
