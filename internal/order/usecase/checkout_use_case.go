package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"mimo/internal/domain"
	"mimo/internal/dto"
	apperrors "mimo/internal/errors"
	"mimo/internal/events"
	ordersvc "mimo/internal/order/service"
	paymentsvc "mimo/internal/payment/service"
)

type DraftService interface {
	Session(ctx context.Context, sessionID string) (*domain.DraftSession, error)
	ClearAll(ctx context.Context, sessionID string) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, snapshot *domain.Order, payer *dto.PayerInfo) (*paymentsvc.PaymentArtifact, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (uint, error)
}

// CheckoutUseCase is the single trust-boundary crossing: it merges the
// session's fragments into a snapshot, dispatches payment, and persists.
// The order is written only after the gateway accepted the dispatch, so
// no snapshot ever carries a dangling payment id.
type CheckoutUseCase struct {
	drafts     DraftService
	composer   *ordersvc.Composer
	dispatcher Dispatcher
	orders     OrderRepository
	publisher  events.Publisher
	logger     *zap.Logger
}

func NewCheckoutUseCase(
	drafts DraftService,
	composer *ordersvc.Composer,
	dispatcher Dispatcher,
	orders OrderRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		drafts:     drafts,
		composer:   composer,
		dispatcher: dispatcher,
		orders:     orders,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethod(method) {
		return nil, apperrors.NewValidationError("invalid payment method",
			apperrors.ValidationDetail{Field: "method", Message: "method must be pix, boleto, card or assisted"})
	}
	if method == domain.MethodCard && strings.TrimSpace(req.CardPaymentID) == "" {
		return nil, apperrors.NewValidationError("missing card payment id",
			apperrors.ValidationDetail{Field: "cardPaymentId", Message: "card checkout requires the widget's payment id"})
	}

	session, err := uc.drafts.Session(ctx, req.Session)
	if err != nil {
		return nil, err
	}

	// The email typed at checkout is fresher than the delivery fragment.
	if req.Email != "" && session.Delivery != nil {
		session.Delivery.Contact.Email = req.Email
	}

	origin := domain.OriginSite
	if method == domain.MethodAssisted {
		origin = domain.OriginAssisted
	}

	snapshot, err := uc.composer.Compose(session, origin, method)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("checkout started",
		zap.String("session", req.Session),
		zap.String("orderId", snapshot.OrderID),
		zap.String("method", req.Method),
		zap.Int64("totalCents", snapshot.Financial.TotalCents))

	var artifact *paymentsvc.PaymentArtifact
	switch method {
	case domain.MethodCard:
		// The embedded widget already created the payment; attach its id
		// so the reconciler can find the snapshot later.
		id := req.CardPaymentID
		snapshot.Financial.ExternalPaymentID = &id
	default:
		artifact, err = uc.dispatcher.Dispatch(ctx, snapshot, req.Payer)
		if err != nil {
			// Gateway failure: nothing was persisted, the user can retry.
			return nil, err
		}
		if artifact.ExternalPaymentID != "" {
			id := artifact.ExternalPaymentID
			snapshot.Financial.ExternalPaymentID = &id
		}
	}

	storeID, err := uc.orders.Create(ctx, snapshot)
	if err != nil {
		// Gateway already accepted; losing the write strands the
		// payment, so make the log loud enough to reconcile by hand.
		uc.logger.Error("order persistence failed after dispatch",
			zap.String("orderId", snapshot.OrderID),
			zap.Stringp("externalPaymentId", snapshot.Financial.ExternalPaymentID),
			zap.Error(err))
		return nil, apperrors.NewInternalError("persisting order", err)
	}
	snapshot.StoreID = storeID

	uc.publish(ctx, events.OrderCreated, snapshot)

	// Fragments are done once the snapshot is durable. Failure to clear
	// only leaves stale drafts behind; it never fails the checkout.
	if err := uc.drafts.ClearAll(ctx, req.Session); err != nil {
		uc.logger.Warn("clearing draft session failed",
			zap.String("session", req.Session), zap.Error(err))
	}

	resp := &dto.CheckoutResponse{
		OrderID:         snapshot.OrderID,
		TotalCents:      snapshot.Financial.TotalCents,
		Method:          string(method),
		PaymentStatus:   string(snapshot.Financial.PaymentStatus),
		ShippingPending: snapshot.Financial.ShippingPending,
		Timestamp:       time.Now().UTC(),
	}
	if snapshot.Financial.ExternalPaymentID != nil {
		resp.ExternalPaymentID = *snapshot.Financial.ExternalPaymentID
	}
	if artifact != nil {
		resp.Artifact = &dto.ArtifactView{
			QRPayload:     artifact.QRPayload,
			QRImageBase64: artifact.QRImageBase64,
			DocumentURL:   artifact.DocumentURL,
			DeepLink:      artifact.DeepLink,
		}
	}

	return resp, nil
}

func (uc *CheckoutUseCase) publish(ctx context.Context, eventType string, snapshot *domain.Order) {
	err := uc.publisher.Publish(ctx, events.OrderEvent{
		Type:       eventType,
		OrderID:    snapshot.OrderID,
		TotalCents: snapshot.Financial.TotalCents,
		Method:     string(snapshot.Financial.Method),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("publishing order event failed",
			zap.String("type", eventType), zap.String("orderId", snapshot.OrderID), zap.Error(err))
	}
}
