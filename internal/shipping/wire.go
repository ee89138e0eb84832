package shipping

import (
	"go.uber.org/zap"

	"mimo/internal/config"
	draftservice "mimo/internal/draft/service"
	"mimo/internal/shipping/client"
	"mimo/internal/shipping/controller"
	"mimo/internal/shipping/service"
)

func NewModule(cfg *config.Config, drafts *draftservice.Service, logger *zap.Logger) *controller.Controller {
	providerClient := client.New(cfg.Shipping, logger)
	resolver := service.NewResolver(providerClient, logger)
	return controller.NewController(resolver, drafts, logger)
}
