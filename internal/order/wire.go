package order

import (
	"database/sql"

	"go.uber.org/zap"

	"mimo/internal/config"
	draftservice "mimo/internal/draft/service"
	"mimo/internal/events"
	"mimo/internal/order/controller"
	"mimo/internal/order/repository"
	"mimo/internal/order/service"
	"mimo/internal/order/usecase"
	paymentclient "mimo/internal/payment/client"
	paymentservice "mimo/internal/payment/service"
)

type Module struct {
	Checkout *controller.CheckoutController
	Webhook  *controller.WebhookController
	Gift     *controller.GiftController
}

func NewModule(
	db *sql.DB,
	cfg *config.Config,
	drafts *draftservice.Service,
	publisher events.Publisher,
	logger *zap.Logger,
) *Module {
	orderRepo := repository.NewMySQLOrderRepository(db)
	gateway := paymentclient.New(cfg.Payment, logger)
	dispatcher := paymentservice.NewDispatcher(gateway, cfg.Assisted, logger)
	composer := service.NewComposer(service.UUIDGenerator{}, nil)

	checkoutUC := usecase.NewCheckoutUseCase(drafts, composer, dispatcher, orderRepo, publisher, logger)
	reconcileUC := usecase.NewReconcileUseCase(orderRepo, gateway, publisher, logger)

	return &Module{
		Checkout: controller.NewCheckoutController(checkoutUC, logger),
		Webhook:  controller.NewWebhookController(reconcileUC, logger),
		Gift:     controller.NewGiftController(orderRepo, logger),
	}
}
