package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	paypalSandboxURL = "https://api-m.sandbox.paypal.com"
	paypalLiveURL    = "https://api-m.paypal.com"
)

// PayPalClient drives the PayPal Orders v2 API with client-credentials
// OAuth. The access token is cached until shortly before expiry.
type PayPalClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewPayPalClient(clientID, clientSecret string, live bool) *PayPalClient {
	base := paypalSandboxURL
	if live {
		base = paypalLiveURL
	}
	return &PayPalClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      base,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

// NewPayPalClientForTest points the client at a fake server.
func NewPayPalClientForTest(clientID, clientSecret, baseURL string) *PayPalClient {
	c := NewPayPalClient(clientID, clientSecret, false)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// PayPalError is a decoded PayPal error body. Name is PayPal's error name
// (e.g. INSTRUMENT_DECLINED) used for user-facing message mapping.
type PayPalError struct {
	HTTPStatus int
	Name       string
	Message    string
}

func (e *PayPalError) Error() string {
	return fmt.Sprintf("paypal: %d %s: %s", e.HTTPStatus, e.Name, e.Message)
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("build paypal token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &PayPalError{HTTPStatus: resp.StatusCode, Name: "AUTHENTICATION_FAILURE", Message: "could not obtain access token"}
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode paypal token response: %w", err)
	}

	c.token = body.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

func (c *PayPalClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode paypal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build paypal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call paypal %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read paypal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &errBody)
		return &PayPalError{HTTPStatus: resp.StatusCode, Name: errBody.Name, Message: errBody.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode paypal response: %w", err)
		}
	}
	return nil
}

// --- Orders v2 request/response shapes ---

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount      orderAmount `json:"amount"`
	Description string      `json:"description,omitempty"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder opens a CAPTURE-intent order and returns the provider-issued
// order id the rest of the flow is keyed by.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount float64, currency, description string) (string, error) {
	req := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount:      orderAmount{CurrencyCode: strings.ToUpper(currency), Value: fmt.Sprintf("%.2f", amount)},
			Description: description,
		}},
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CaptureResult is the outcome of capturing an approved order.
type CaptureResult struct {
	CaptureID string
	Status    string
}

// CaptureOrder captures an approved order. Must only be called after the
// donor approved the order.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, &resp); err != nil {
		return nil, err
	}

	result := &CaptureResult{Status: resp.Status}
	if len(resp.PurchaseUnits) > 0 && len(resp.PurchaseUnits[0].Payments.Captures) > 0 {
		result.CaptureID = resp.PurchaseUnits[0].Payments.Captures[0].ID
	}
	if result.CaptureID == "" {
		return nil, &PayPalError{HTTPStatus: 200, Name: "CAPTURE_MISSING", Message: "capture id absent from response"}
	}
	return result, nil
}
