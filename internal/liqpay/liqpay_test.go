package liqpay

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"testing"
)

func testClient() *Client {
	return New(Config{
		PublicKey:  "sandbox_pub",
		PrivateKey: "sandbox_priv",
		Sandbox:    true,
		ResultURL:  "http://localhost:5173/order-success",
		ServerURL:  "http://localhost:8080/api/payment/callback",
	})
}

func TestCheckoutPayload(t *testing.T) {
	c := testClient()

	data, signature, err := c.Checkout("ord-1", 2499, "")
	if err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.Fatalf("data is not valid base64: %v", err)
	}

	var p map[string]interface{}
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("data is not valid JSON: %v", err)
	}

	if p["public_key"] != "sandbox_pub" {
		t.Errorf("public_key = %v", p["public_key"])
	}
	if p["version"] != "3" {
		t.Errorf("version = %v, want \"3\"", p["version"])
	}
	if p["action"] != "pay" {
		t.Errorf("action = %v, want pay", p["action"])
	}
	if p["amount"] != float64(2499) {
		t.Errorf("amount = %v, want 2499", p["amount"])
	}
	if p["currency"] != "UAH" {
		t.Errorf("currency = %v, want UAH", p["currency"])
	}
	if p["order_id"] != "ord-1" {
		t.Errorf("order_id = %v, want ord-1", p["order_id"])
	}
	if p["sandbox"] != float64(1) {
		t.Errorf("sandbox = %v, want 1", p["sandbox"])
	}
	if p["result_url"] != "http://localhost:5173/order-success/ord-1" {
		t.Errorf("result_url = %v", p["result_url"])
	}
	if p["description"] != "Order ord-1" {
		t.Errorf("default description = %v", p["description"])
	}

	if !c.Verify(data, signature) {
		t.Error("client must verify its own signature")
	}
}

func TestSignFormula(t *testing.T) {
	c := testClient()
	data := "eyJmb28iOiJiYXIifQ=="

	h := sha1.Sum([]byte("sandbox_priv" + data + "sandbox_priv"))
	want := base64.StdEncoding.EncodeToString(h[:])

	if got := c.Sign(data); got != want {
		t.Errorf("Sign() = %s, want %s", got, want)
	}
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	c := testClient()

	data, signature, err := c.Checkout("ord-1", 100, "x")
	if err != nil {
		t.Fatal(err)
	}

	if c.Verify(data+"A", signature) {
		t.Error("tampered data must not verify")
	}
	if c.Verify(data, "bogus") {
		t.Error("bogus signature must not verify")
	}

	other := New(Config{PublicKey: "p", PrivateKey: "other_priv"})
	if other.Verify(data, signature) {
		t.Error("signature from a different key must not verify")
	}
}

func TestDecodeCallback(t *testing.T) {
	payload := map[string]interface{}{
		"order_id":   "ord-9",
		"status":     "success",
		"amount":     2499.0,
		"currency":   "UAH",
		"payment_id": 12345,
	}
	raw, _ := json.Marshal(payload)
	data := base64.StdEncoding.EncodeToString(raw)

	cb, err := DecodeCallback(data)
	if err != nil {
		t.Fatalf("DecodeCallback() error: %v", err)
	}

	if cb.OrderID != "ord-9" {
		t.Errorf("OrderID = %s", cb.OrderID)
	}
	if cb.Status != "success" {
		t.Errorf("Status = %s", cb.Status)
	}
	if cb.Amount != 2499 {
		t.Errorf("Amount = %f", cb.Amount)
	}
	if string(cb.Raw) != string(raw) {
		t.Error("Raw must hold the decoded payload verbatim")
	}
}

func TestDecodeCallbackErrors(t *testing.T) {
	if _, err := DecodeCallback("not base64 !!!"); err == nil {
		t.Error("invalid base64 must fail")
	}

	bad := base64.StdEncoding.EncodeToString([]byte("{truncated"))
	if _, err := DecodeCallback(bad); err == nil {
		t.Error("invalid JSON must fail")
	}
}
