package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
)

type mockCheckoutUseCase struct {
	CheckoutFunc func(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

func (m *mockCheckoutUseCase) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	return m.CheckoutFunc(ctx, req)
}

func postCheckout(t *testing.T, ctrl *CheckoutController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.HandleCheckout(rec, req)
	return rec
}

func TestHandleCheckout_Success(t *testing.T) {
	uc := &mockCheckoutUseCase{
		CheckoutFunc: func(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
			return &dto.CheckoutResponse{
				OrderID:       "SITE-ABCD1234",
				TotalCents:    7900,
				Method:        "pix",
				PaymentStatus: "pending",
				Artifact:      &dto.ArtifactView{QRPayload: "000201payload"},
			}, nil
		},
	}
	ctrl := NewCheckoutController(uc, zap.NewNop())

	rec := postCheckout(t, ctrl, `{"session":"sess-1","method":"pix"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "SITE-ABCD1234") || !strings.Contains(body, "traceId") {
		t.Errorf("unexpected body %s", body)
	}
}

func TestHandleCheckout_MissingFields(t *testing.T) {
	ctrl := NewCheckoutController(&mockCheckoutUseCase{}, zap.NewNop())

	rec := postCheckout(t, ctrl, `{"email":"not-an-email"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, field := range []string{"session", "method", "email"} {
		if !strings.Contains(body, field) {
			t.Errorf("expected %s detail in %s", field, body)
		}
	}
}

func TestHandleCheckout_ConflictFromIncompleteSession(t *testing.T) {
	uc := &mockCheckoutUseCase{
		CheckoutFunc: func(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
			return nil, apperrors.NewConflictError("submission requires a delivery draft")
		},
	}
	ctrl := NewCheckoutController(uc, zap.NewNop())

	rec := postCheckout(t, ctrl, `{"session":"sess-1","method":"pix"}`)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleCheckout_GatewayFailureIs502(t *testing.T) {
	uc := &mockCheckoutUseCase{
		CheckoutFunc: func(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
			return nil, apperrors.NewUpstreamError(apperrors.UpstreamBusiness,
				"gateway refused payment (status 400)", `{"message":"invalid amount"}`, nil)
		},
	}
	ctrl := NewCheckoutController(uc, zap.NewNop())

	rec := postCheckout(t, ctrl, `{"session":"sess-1","method":"pix"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "PAYMENT_UNAVAILABLE") {
		t.Errorf("expected PAYMENT_UNAVAILABLE, got %s", body)
	}
	if strings.Contains(body, "invalid amount") {
		t.Error("gateway diagnostic must not reach the caller")
	}
}

func TestHandleCheckout_InvalidJSON(t *testing.T) {
	ctrl := NewCheckoutController(&mockCheckoutUseCase{}, zap.NewNop())

	rec := postCheckout(t, ctrl, `{broken`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
