package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"mimo/internal/config"
	apperrors "mimo/internal/errors"
)

func newTestGateway(baseURL string) *Client {
	return New(config.PaymentConfig{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		Timeout:     2 * time.Second,
	}, zap.NewNop())
}

func TestCreatePayment_Pix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Error("expected bearer token")
		}
		if r.Header.Get("X-Idempotency-Key") == "" {
			t.Error("expected idempotency key")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["transaction_amount"] != 79.0 {
			t.Errorf("expected decimal amount 79, got %v", body["transaction_amount"])
		}
		if body["payment_method_id"] != "pix" {
			t.Errorf("expected pix, got %v", body["payment_method_id"])
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 123456789,
			"status": "pending",
			"payment_method_id": "pix",
			"point_of_interaction": {
				"transaction_data": {"qr_code": "000201payload", "qr_code_base64": "aW1hZ2U="}
			}
		}`))
	}))
	defer srv.Close()

	payment, err := newTestGateway(srv.URL).CreatePayment(context.Background(), CreatePaymentRequest{
		AmountCents:     7900,
		Email:           "bruno@example.com",
		Description:     "Mimo Personalizado",
		PaymentMethodID: "pix",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.ID != "123456789" {
		t.Errorf("expected numeric id as string, got %q", payment.ID)
	}
	if payment.QRCode != "000201payload" {
		t.Errorf("expected qr payload, got %q", payment.QRCode)
	}
	if payment.QRCodeBase64 != "aW1hZ2U=" {
		t.Errorf("expected qr image, got %q", payment.QRCodeBase64)
	}
}

func TestCreatePayment_BoletoDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		payer, _ := body["payer"].(map[string]any)
		if payer["first_name"] != "Bruno" {
			t.Errorf("expected payer name, got %v", payer["first_name"])
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 555,
			"status": "pending",
			"payment_method_id": "bolbradesco",
			"transaction_details": {"external_resource_url": "https://gw.example.com/boleto/555"}
		}`))
	}))
	defer srv.Close()

	payment, err := newTestGateway(srv.URL).CreatePayment(context.Background(), CreatePaymentRequest{
		AmountCents:     12900,
		Email:           "bruno@example.com",
		PaymentMethodID: "bolbradesco",
		PayerFirstName:  "Bruno",
		PayerLastName:   "Silva",
		PayerDocType:    "CPF",
		PayerDocNumber:  "12345678909",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.DocumentURL != "https://gw.example.com/boleto/555" {
		t.Errorf("expected boleto url, got %q", payment.DocumentURL)
	}
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/123456789" || r.Method != http.MethodGet {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id": 123456789, "status": "approved", "payment_method_id": "pix"}`))
	}))
	defer srv.Close()

	payment, err := newTestGateway(srv.URL).GetPayment(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != "approved" {
		t.Errorf("expected approved, got %q", payment.Status)
	}
	if payment.MethodID != "pix" {
		t.Errorf("expected pix, got %q", payment.MethodID)
	}
}

func TestGateway_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid access token"}`))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).GetPayment(context.Background(), "1")

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamAuth {
		t.Errorf("expected auth kind, got %s", ue.Kind)
	}
}

func TestGateway_BusinessRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid transaction_amount"}`))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).CreatePayment(context.Background(), CreatePaymentRequest{
		AmountCents: -1, PaymentMethodID: "pix",
	})

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamBusiness {
		t.Errorf("expected business kind, got %s", ue.Kind)
	}
	if ue.Diagnostic == "" {
		t.Error("expected diagnostic to carry gateway body")
	}
}

func TestGateway_MissingPaymentID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "pending"}`))
	}))
	defer srv.Close()

	_, err := newTestGateway(srv.URL).GetPayment(context.Background(), "1")

	ue, ok := apperrors.IsUpstreamError(err)
	if !ok {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Kind != apperrors.UpstreamNetwork {
		t.Errorf("expected network kind, got %s", ue.Kind)
	}
}
