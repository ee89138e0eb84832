package media

import (
	"go.uber.org/zap"

	"mimo/internal/config"
	draftservice "mimo/internal/draft/service"
	"mimo/internal/media/client"
	"mimo/internal/media/controller"
)

func NewModule(cfg *config.Config, drafts *draftservice.Service, logger *zap.Logger) *controller.Controller {
	storage := client.New(cfg.Media)
	return controller.NewController(storage, drafts, cfg.Media.MaxUploadBytes, logger)
}
