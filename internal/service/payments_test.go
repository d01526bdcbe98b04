package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/apperrors"
	"github.com/solemate-shop/solemate-api/internal/events"
	"github.com/solemate-shop/solemate-api/internal/liqpay"
	"github.com/solemate-shop/solemate-api/internal/models"
)

func newTestPaymentService(repo *fakeOrderRepo) (*PaymentService, *liqpay.Client) {
	lp := liqpay.New(liqpay.Config{
		PublicKey:  "pub_test",
		PrivateKey: "priv_test",
		Sandbox:    true,
		ResultURL:  "http://localhost:5173/order-success",
		ServerURL:  "http://localhost:8080/api/payment/callback",
	})
	return NewPaymentService(repo, nil, lp, events.NopPublisher{}, false, zap.NewNop()), lp
}

func callbackData(t *testing.T, lp *liqpay.Client, orderID, status string) (string, string) {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"order_id":   orderID,
		"status":     status,
		"amount":     2499.0,
		"currency":   "UAH",
		"payment_id": 123456,
	})
	if err != nil {
		t.Fatalf("marshal callback: %v", err)
	}
	data := base64.StdEncoding.EncodeToString(raw)
	return data, lp.Sign(data)
}

func seedOrder(t *testing.T, repo *fakeOrderRepo, userID string) *models.Order {
	t.Helper()
	svc := newTestOrderService(repo, newFakeCartRepo())
	req := validCreateOrderRequest()
	req.PaymentMethod = models.PaymentMethodLiqPay
	order, err := svc.CreateOrder(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestCreatePayment_ReturnsSignedPayload(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	resp, err := svc.CreatePayment(context.Background(), "user-1", &models.CreatePaymentRequest{OrderID: order.ID})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if !lp.Verify(resp.Data, resp.Signature) {
		t.Error("returned signature does not verify against the payload")
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload["order_id"] != order.ID {
		t.Errorf("expected order_id %s, got %v", order.ID, payload["order_id"])
	}
	if payload["amount"] != 2499.0 {
		t.Errorf("expected amount defaulted to order total, got %v", payload["amount"])
	}
	if payload["currency"] != "UAH" {
		t.Errorf("expected UAH, got %v", payload["currency"])
	}

	if repo.stored(order.ID).PaymentStatus != models.PaymentStatusProcessing {
		t.Errorf("expected payment status PROCESSING after intent, got %s", repo.stored(order.ID).PaymentStatus)
	}
}

func TestCreatePayment_NonOwnerNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, _ := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	_, err := svc.CreatePayment(context.Background(), "user-2", &models.CreatePaymentRequest{OrderID: order.ID})
	if err != apperrors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreatePayment_AlreadyPaidRejected(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "success")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	_, err := svc.CreatePayment(context.Background(), "user-1", &models.CreatePaymentRequest{OrderID: order.ID})
	if err != apperrors.ErrConflict {
		t.Errorf("expected conflict for paid order, got %v", err)
	}
}

func TestHandleCallback_SuccessReconciles(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "success")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	stored := repo.stored(order.ID)
	if stored.Status != models.OrderStatusProcessing {
		t.Errorf("expected status PROCESSING, got %s", stored.Status)
	}
	if stored.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("expected payment status PAID, got %s", stored.PaymentStatus)
	}

	decoded, _ := base64.StdEncoding.DecodeString(data)
	if !bytes.Equal(stored.PaymentData, decoded) {
		t.Errorf("expected payment data to equal decoded payload, got %s", stored.PaymentData)
	}
}

func TestHandleCallback_FailureCancels(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "failure")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	stored := repo.stored(order.ID)
	if stored.Status != models.OrderStatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", stored.Status)
	}
	if stored.PaymentStatus != models.PaymentStatusFailed {
		t.Errorf("expected payment status FAILED, got %s", stored.PaymentStatus)
	}
}

func TestHandleCallback_BadSignatureIgnored(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")
	before := repo.stored(order.ID)

	data, _ := callbackData(t, lp, order.ID, "success")
	err := svc.HandleCallback(context.Background(), data, "bm90IGEgc2lnbmF0dXJl")
	if _, ok := apperrors.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}

	after := repo.stored(order.ID)
	if after.Status != before.Status || after.PaymentStatus != before.PaymentStatus {
		t.Error("order mutated despite invalid signature")
	}
	if after.PaymentData != nil {
		t.Error("payment data recorded despite invalid signature")
	}
}

func TestHandleCallback_IntermediateStatusAuditOnly(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "wait_accept")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	stored := repo.stored(order.ID)
	if stored.Status != order.Status {
		t.Errorf("status changed on intermediate callback: %s", stored.Status)
	}
	if stored.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status changed on intermediate callback: %s", stored.PaymentStatus)
	}
	if stored.PaymentData == nil {
		t.Error("expected intermediate payload recorded for audit")
	}
}

func TestHandleCallback_ReplayIsIdempotent(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "success")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("first callback: %v", err)
	}
	first := repo.stored(order.ID)

	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("replayed callback: %v", err)
	}
	second := repo.stored(order.ID)

	if first.Status != second.Status || first.PaymentStatus != second.PaymentStatus {
		t.Error("replayed callback changed the order state")
	}
	if !bytes.Equal(first.PaymentData, second.PaymentData) {
		t.Error("replayed callback changed the stored payload")
	}
}

func TestHandleCallback_UnknownOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)

	data, sig := callbackData(t, lp, "missing-order", "success")
	if err := svc.HandleCallback(context.Background(), data, sig); err != apperrors.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGetPaymentStatus_OwnerScoped(t *testing.T) {
	repo := newFakeOrderRepo()
	svc, lp := newTestPaymentService(repo)
	order := seedOrder(t, repo, "user-1")

	data, sig := callbackData(t, lp, order.ID, "success")
	if err := svc.HandleCallback(context.Background(), data, sig); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	resp, err := svc.GetPaymentStatus(context.Background(), order.ID, "user-1", false)
	if err != nil {
		t.Fatalf("GetPaymentStatus: %v", err)
	}
	if resp.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("expected PAID, got %s", resp.PaymentStatus)
	}

	if _, err := svc.GetPaymentStatus(context.Background(), order.ID, "user-2", false); err != apperrors.ErrNotFound {
		t.Errorf("expected not found for non-owner, got %v", err)
	}
}
