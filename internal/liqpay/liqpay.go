// Package liqpay builds signed payloads for the LiqPay hosted checkout page
// and verifies its server callbacks. The provider contract is a base64-encoded
// JSON document plus base64(sha1(private_key || data || private_key)).
package liqpay

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Client signs outgoing payloads and verifies incoming callbacks.
type Client struct {
	publicKey  string
	privateKey string
	sandbox    bool
	resultURL  string
	serverURL  string
}

// Config carries the merchant keys and the redirect/callback endpoints.
type Config struct {
	PublicKey  string
	PrivateKey string
	Sandbox    bool
	ResultURL  string
	ServerURL  string
}

// New creates a client for one merchant account.
func New(cfg Config) *Client {
	return &Client{
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		sandbox:    cfg.Sandbox,
		resultURL:  cfg.ResultURL,
		serverURL:  cfg.ServerURL,
	}
}

// checkoutPayload is the request document for action=pay, API version 3.
type checkoutPayload struct {
	PublicKey   string  `json:"public_key"`
	Version     string  `json:"version"`
	Action      string  `json:"action"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Sandbox     int     `json:"sandbox,omitempty"`
	ResultURL   string  `json:"result_url"`
	ServerURL   string  `json:"server_url"`
}

// Checkout builds the (data, signature) pair the browser form-posts to the
// hosted payment page. The order id is embedded so the callback can be
// reconciled.
func (c *Client) Checkout(orderID string, amount float64, description string) (data, signature string, err error) {
	if description == "" {
		description = fmt.Sprintf("Order %s", orderID)
	}

	p := checkoutPayload{
		PublicKey:   c.publicKey,
		Version:     "3",
		Action:      "pay",
		Amount:      amount,
		Currency:    "UAH",
		Description: description,
		OrderID:     orderID,
		ResultURL:   fmt.Sprintf("%s/%s", c.resultURL, orderID),
		ServerURL:   c.serverURL,
	}
	if c.sandbox {
		p.Sandbox = 1
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", "", err
	}

	data = base64.StdEncoding.EncodeToString(raw)
	return data, c.Sign(data), nil
}

// Sign computes base64(sha1(private_key || data || private_key)).
func (c *Client) Sign(data string) string {
	h := sha1.Sum([]byte(c.privateKey + data + c.privateKey))
	return base64.StdEncoding.EncodeToString(h[:])
}

// Verify checks a callback signature in constant time.
func (c *Client) Verify(data, signature string) bool {
	expected := c.Sign(data)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Callback is the provider's asynchronous payment result. Status values the
// service branches on are "success" and "failure"/"error"; anything else is
// recorded but not acted upon.
type Callback struct {
	OrderID        string  `json:"order_id"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PaymentID      int64   `json:"payment_id"`
	TransactionID  int64   `json:"transaction_id"`
	Description    string  `json:"description"`
	ErrCode        string  `json:"err_code,omitempty"`
	ErrDescription string  `json:"err_description,omitempty"`

	// Raw is the decoded JSON document, persisted verbatim for audit.
	Raw json.RawMessage `json:"-"`
}

// DecodeCallback base64-decodes and parses the callback data field.
func DecodeCallback(data string) (*Callback, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode callback data: %w", err)
	}

	var cb Callback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, fmt.Errorf("parse callback data: %w", err)
	}
	cb.Raw = raw
	return &cb, nil
}
