package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	"mimo/internal/events"
	"mimo/internal/payment/client"
)

type mockPaymentLookup struct {
	GetPaymentFunc func(ctx context.Context, id string) (*client.Payment, error)
}

func (m *mockPaymentLookup) GetPayment(ctx context.Context, id string) (*client.Payment, error) {
	return m.GetPaymentFunc(ctx, id)
}

type mockReconcilerRepository struct {
	FindByExternalPaymentIDFunc func(ctx context.Context, externalPaymentID string) ([]domain.Order, error)
	MarkPaidFunc                func(ctx context.Context, id uint, confirmedMethod string, paidAt time.Time) (bool, error)
}

func (m *mockReconcilerRepository) FindByExternalPaymentID(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
	return m.FindByExternalPaymentIDFunc(ctx, externalPaymentID)
}

func (m *mockReconcilerRepository) MarkPaid(ctx context.Context, id uint, confirmedMethod string, paidAt time.Time) (bool, error) {
	return m.MarkPaidFunc(ctx, id, confirmedMethod, paidAt)
}

func approvedLookup() *mockPaymentLookup {
	return &mockPaymentLookup{
		GetPaymentFunc: func(ctx context.Context, id string) (*client.Payment, error) {
			return &client.Payment{ID: id, Status: "approved", MethodID: "pix"}, nil
		},
	}
}

func pendingOrder() domain.Order {
	id := "123456789"
	return domain.Order{
		StoreID: 42,
		OrderID: "SITE-ABCD1234",
		Financial: domain.Financial{
			TotalCents:        7900,
			Method:            domain.MethodPix,
			ExternalPaymentID: &id,
			PaymentStatus:     domain.PaymentStatusPending,
		},
	}
}

func TestHandleNotification_MarksPaidAndPublishes(t *testing.T) {
	var markedID uint
	var confirmedMethod string
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			return []domain.Order{pendingOrder()}, nil
		},
		MarkPaidFunc: func(ctx context.Context, id uint, method string, paidAt time.Time) (bool, error) {
			markedID = id
			confirmedMethod = method
			return true, nil
		},
	}
	publisher := &capturingPublisher{}

	uc := NewReconcileUseCase(repo, approvedLookup(), publisher, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "123456789", Type: "payment"})

	if markedID != 42 {
		t.Errorf("expected store id 42, got %d", markedID)
	}
	if confirmedMethod != "pix" {
		t.Errorf("expected confirmed method pix, got %q", confirmedMethod)
	}
	if len(publisher.published) != 1 || publisher.published[0].Type != events.OrderPaid {
		t.Errorf("expected one order.paid event, got %v", publisher.published)
	}
}

func TestHandleNotification_DuplicateDeliveryIsNoOp(t *testing.T) {
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			return []domain.Order{pendingOrder()}, nil
		},
		MarkPaidFunc: func(ctx context.Context, id uint, method string, paidAt time.Time) (bool, error) {
			// Guarded update: the row is already paid.
			return false, nil
		},
	}
	publisher := &capturingPublisher{}

	uc := NewReconcileUseCase(repo, approvedLookup(), publisher, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "123456789", Type: "payment"})

	if len(publisher.published) != 0 {
		t.Errorf("duplicate confirmation must not publish, got %v", publisher.published)
	}
}

func TestHandleNotification_IgnoresNonPaymentType(t *testing.T) {
	lookup := &mockPaymentLookup{
		GetPaymentFunc: func(ctx context.Context, id string) (*client.Payment, error) {
			t.Fatal("gateway must not be queried for non-payment notifications")
			return nil, nil
		},
	}

	uc := NewReconcileUseCase(&mockReconcilerRepository{}, lookup, &capturingPublisher{}, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "1", Type: "plan"})
	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "", Type: "payment"})
}

func TestHandleNotification_IgnoresNonApprovedStatus(t *testing.T) {
	lookup := &mockPaymentLookup{
		GetPaymentFunc: func(ctx context.Context, id string) (*client.Payment, error) {
			return &client.Payment{ID: id, Status: "rejected", MethodID: "pix"}, nil
		},
	}
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			t.Fatal("no order lookup for non-approved payments")
			return nil, nil
		},
	}

	uc := NewReconcileUseCase(repo, lookup, &capturingPublisher{}, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "123456789", Type: "payment"})
}

func TestHandleNotification_NoMatchingOrder(t *testing.T) {
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			return nil, nil
		},
		MarkPaidFunc: func(ctx context.Context, id uint, method string, paidAt time.Time) (bool, error) {
			t.Fatal("nothing to mark when no order matches")
			return false, nil
		},
	}

	uc := NewReconcileUseCase(repo, approvedLookup(), &capturingPublisher{}, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "unknown", Type: "payment"})
}

func TestHandleNotification_AmbiguousMatchTakesNoAction(t *testing.T) {
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			return []domain.Order{pendingOrder(), pendingOrder()}, nil
		},
		MarkPaidFunc: func(ctx context.Context, id uint, method string, paidAt time.Time) (bool, error) {
			t.Fatal("ambiguous match must never be resolved destructively")
			return false, nil
		},
	}

	uc := NewReconcileUseCase(repo, approvedLookup(), &capturingPublisher{}, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "123456789", Type: "payment"})
}

func TestHandleNotification_LookupFailureLeavesStoreUntouched(t *testing.T) {
	lookup := &mockPaymentLookup{
		GetPaymentFunc: func(ctx context.Context, id string) (*client.Payment, error) {
			return nil, errors.New("gateway unreachable")
		},
	}
	repo := &mockReconcilerRepository{
		FindByExternalPaymentIDFunc: func(ctx context.Context, externalPaymentID string) ([]domain.Order, error) {
			t.Fatal("no order lookup when the payment state is unknown")
			return nil, nil
		},
	}

	uc := NewReconcileUseCase(repo, lookup, &capturingPublisher{}, zap.NewNop())

	uc.HandleNotification(context.Background(), dto.PaymentNotification{ID: "123456789", Type: "payment"})
}
