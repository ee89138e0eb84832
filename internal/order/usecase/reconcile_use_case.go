package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	"mimo/internal/events"
	"mimo/internal/payment/client"
)

type PaymentLookup interface {
	GetPayment(ctx context.Context, id string) (*client.Payment, error)
}

type ReconcilerRepository interface {
	FindByExternalPaymentID(ctx context.Context, externalPaymentID string) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id uint, confirmedMethod string, paidAt time.Time) (bool, error)
}

// approvedStatus is the gateway's confirmation-equivalent; every other
// status is ignored by design, so failed or cancelled payments are never
// reflected back into the store through this path.
const approvedStatus = "approved"

// ReconcileUseCase binds asynchronous payment confirmations back to
// order snapshots: a two-state machine whose only transition is
// pending → paid. Notifications may arrive duplicated, delayed or out
// of order; every path here is a safe no-op except the single first
// approved confirmation.
type ReconcileUseCase struct {
	orders    ReconcilerRepository
	payments  PaymentLookup
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewReconcileUseCase(
	orders ReconcilerRepository,
	payments PaymentLookup,
	publisher events.Publisher,
	logger *zap.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		orders:    orders,
		payments:  payments,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleNotification never returns an error: the webhook must always be
// acknowledged or the gateway retries forever.
func (uc *ReconcileUseCase) HandleNotification(ctx context.Context, n dto.PaymentNotification) {
	if n.Type != "payment" || n.ID == "" {
		uc.logger.Debug("ignoring non-payment notification",
			zap.String("type", n.Type), zap.String("id", n.ID))
		return
	}

	// The notification itself is untrusted; ask the gateway for the
	// payment's current state.
	payment, err := uc.payments.GetPayment(ctx, n.ID)
	if err != nil {
		uc.logger.Error("payment lookup failed", zap.String("paymentId", n.ID), zap.Error(err))
		return
	}

	if payment.Status != approvedStatus {
		uc.logger.Info("ignoring non-approved payment status",
			zap.String("paymentId", n.ID), zap.String("status", payment.Status))
		return
	}

	orders, err := uc.orders.FindByExternalPaymentID(ctx, n.ID)
	if err != nil {
		uc.logger.Error("order lookup failed", zap.String("paymentId", n.ID), zap.Error(err))
		return
	}

	switch len(orders) {
	case 0:
		uc.logger.Warn("no order matches payment id", zap.String("paymentId", n.ID))
		return
	case 1:
	default:
		// Ambiguity is never resolved destructively.
		uc.logger.Error("multiple orders match payment id",
			zap.String("paymentId", n.ID), zap.Int("matches", len(orders)))
		return
	}

	order := orders[0]
	transitioned, err := uc.orders.MarkPaid(ctx, order.StoreID, payment.MethodID, uc.now().UTC())
	if err != nil {
		uc.logger.Error("marking order paid failed",
			zap.String("orderId", order.OrderID), zap.String("paymentId", n.ID), zap.Error(err))
		return
	}
	if !transitioned {
		uc.logger.Info("order already paid, notification is a no-op",
			zap.String("orderId", order.OrderID), zap.String("paymentId", n.ID))
		return
	}

	uc.logger.Info("order reconciled as paid",
		zap.String("orderId", order.OrderID),
		zap.String("paymentId", n.ID),
		zap.String("confirmedMethod", payment.MethodID))

	err = uc.publisher.Publish(ctx, events.OrderEvent{
		Type:       events.OrderPaid,
		OrderID:    order.OrderID,
		TotalCents: order.Financial.TotalCents,
		Method:     string(order.Financial.Method),
		OccurredAt: uc.now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("publishing order paid event failed",
			zap.String("orderId", order.OrderID), zap.Error(err))
	}
}
