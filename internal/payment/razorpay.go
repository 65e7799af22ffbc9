// Package payment talks to the Razorpay orders API and verifies the
// signature Razorpay returns on its payment callback.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

// ErrInvalidSignature is returned when a callback signature does not
// match the recomputed HMAC.  A mismatch is a hard rejection; the booking
// is never mutated on this path.
var ErrInvalidSignature = errors.New("payment signature mismatch")

// GatewayError wraps a failure from the payment gateway.  Order creation
// failures surface as this type and leave the booking untouched in
// pending status, so the caller can simply retry order creation.
type GatewayError struct {
	Op  string // gateway operation that failed, e.g. "create order"
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("payment gateway: %s: %v", e.Op, e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }

// Config holds the Razorpay credentials.  KeySecret doubles as the HMAC
// key for callback signature verification.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string // override for tests; defaults to the public API
}

// Client is a minimal Razorpay REST client.  It keeps no local state:
// orders live gateway-side and are referenced by their opaque id.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client with a 10 second request timeout.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: 10 * time.Second}}
}

// Order is the gateway-side representation of a pending charge.  Amount
// is in paise (the gateway's minor currency unit).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order for the given rupee amount.  The
// booking id travels as the receipt and in the order notes so the charge
// can be traced back.  Failures come back as *GatewayError.
func (c *Client) CreateOrder(ctx context.Context, amount int64, bookingID string) (*Order, error) {
	body, err := json.Marshal(map[string]any{
		"amount":   amount * 100, // rupees -> paise
		"currency": "INR",
		"receipt":  bookingID,
		"notes":    map[string]string{"booking_id": bookingID},
	})
	if err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{Op: "create order", Err: fmt.Errorf("status %d: %s", resp.StatusCode, data)}
	}
	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	return &order, nil
}

// Signature computes the hex HMAC-SHA256 digest Razorpay signs its
// callbacks with: the key is the API secret, the message is
// "orderID|paymentID".
func (c *Client) Signature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the digest and compares it byte-for-byte in
// constant time against the supplied signature.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	expected := c.Signature(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
