package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mimo/internal/config"
	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
	"mimo/internal/payment/client"
)

type mockGatewayClient struct {
	CreatePaymentFunc func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error)
}

func (m *mockGatewayClient) CreatePayment(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
	return m.CreatePaymentFunc(ctx, req)
}

func newTestDispatcher(gateway GatewayClient) *Dispatcher {
	return NewDispatcher(gateway, config.AssistedConfig{WhatsAppNumber: "5567992236484"}, zap.NewNop())
}

func pixSnapshot() *domain.Order {
	return &domain.Order{
		OrderID:  "SITE-ABCD1234",
		Origin:   domain.OriginSite,
		Customer: domain.Customer{Name: "Bruno", Email: "bruno@example.com"},
		Content:  domain.Content{From: "Ana", To: "Bruno"},
		Financial: domain.Financial{
			TotalCents:    7900,
			Method:        domain.MethodPix,
			PaymentStatus: domain.PaymentStatusPending,
		},
	}
}

func TestDispatch_Pix(t *testing.T) {
	var gotReq client.CreatePaymentRequest
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			gotReq = req
			return &client.Payment{
				ID:           "123456789",
				Status:       "pending",
				QRCode:       "000201pixpayload",
				QRCodeBase64: "aW1hZ2U=",
			}, nil
		},
	}

	artifact, err := newTestDispatcher(gateway).Dispatch(context.Background(), pixSnapshot(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.PaymentMethodID != "pix" {
		t.Errorf("expected pix method id, got %q", gotReq.PaymentMethodID)
	}
	if gotReq.AmountCents != 7900 {
		t.Errorf("expected 7900 cents, got %d", gotReq.AmountCents)
	}
	if artifact.ExternalPaymentID != "123456789" {
		t.Errorf("expected external payment id, got %q", artifact.ExternalPaymentID)
	}
	if artifact.QRPayload != "000201pixpayload" {
		t.Errorf("expected qr payload, got %q", artifact.QRPayload)
	}
}

func TestDispatch_BoletoRequiresDocument(t *testing.T) {
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			t.Fatal("gateway must not be called without payer document")
			return nil, nil
		},
	}

	snapshot := pixSnapshot()
	snapshot.Financial.Method = domain.MethodBoleto

	_, err := newTestDispatcher(gateway).Dispatch(context.Background(), snapshot, nil)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestDispatch_Boleto(t *testing.T) {
	var gotReq client.CreatePaymentRequest
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			gotReq = req
			return &client.Payment{
				ID:          "987654321",
				Status:      "pending",
				DocumentURL: "https://gateway.example.com/boleto/987654321",
			}, nil
		},
	}

	snapshot := pixSnapshot()
	snapshot.Financial.Method = domain.MethodBoleto
	payer := &dto.PayerInfo{FirstName: "Bruno", LastName: "Silva", DocType: "CPF", DocNumber: "12345678909"}

	artifact, err := newTestDispatcher(gateway).Dispatch(context.Background(), snapshot, payer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.PaymentMethodID != "bolbradesco" {
		t.Errorf("expected bolbradesco method id, got %q", gotReq.PaymentMethodID)
	}
	if gotReq.PayerDocNumber != "12345678909" {
		t.Errorf("expected payer document forwarded, got %q", gotReq.PayerDocNumber)
	}
	if artifact.DocumentURL == "" {
		t.Error("expected boleto document url")
	}
}

func TestDispatch_CardIsNotDispatched(t *testing.T) {
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			t.Fatal("card must not reach the gateway from the server")
			return nil, nil
		},
	}

	snapshot := pixSnapshot()
	snapshot.Financial.Method = domain.MethodCard

	if _, err := newTestDispatcher(gateway).Dispatch(context.Background(), snapshot, nil); err == nil {
		t.Error("expected error for server-side card dispatch")
	}
}

func TestDispatch_AssistedDeepLink(t *testing.T) {
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			t.Fatal("assisted checkout must not call the gateway")
			return nil, nil
		},
	}

	snapshot := pixSnapshot()
	snapshot.OrderID = "WPP-ABCD1234"
	snapshot.Financial.Method = domain.MethodAssisted
	snapshot.Financial.TotalCents = 12900

	artifact, err := newTestDispatcher(gateway).Dispatch(context.Background(), snapshot, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if artifact.ExternalPaymentID != "" {
		t.Error("assisted checkout has no external payment id")
	}
	if !strings.HasPrefix(artifact.DeepLink, "https://wa.me/5567992236484?text=") {
		t.Errorf("expected wa.me deep link, got %q", artifact.DeepLink)
	}
	if !strings.Contains(artifact.DeepLink, "WPP-ABCD1234") {
		t.Error("expected order id in the deep link message")
	}
	if !strings.Contains(artifact.DeepLink, "129%2C00") {
		t.Error("expected total in comma decimal format")
	}
}

func TestDispatch_GatewayErrorPropagates(t *testing.T) {
	gateway := &mockGatewayClient{
		CreatePaymentFunc: func(ctx context.Context, req client.CreatePaymentRequest) (*client.Payment, error) {
			return nil, apperrors.NewUpstreamError(apperrors.UpstreamNetwork, "gateway unreachable", "", nil)
		},
	}

	_, err := newTestDispatcher(gateway).Dispatch(context.Background(), pixSnapshot(), nil)

	if _, ok := apperrors.IsUpstreamError(err); !ok {
		t.Errorf("expected UpstreamError, got %T", err)
	}
}

func TestFormatBRL(t *testing.T) {
	if got := formatBRL(12900); got != "129,00" {
		t.Errorf("expected 129,00, got %q", got)
	}
	if got := formatBRL(6546); got != "65,46" {
		t.Errorf("expected 65,46, got %q", got)
	}
}
