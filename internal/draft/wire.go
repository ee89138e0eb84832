package draft

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mimo/internal/config"
	"mimo/internal/draft/controller"
	"mimo/internal/draft/repository"
	"mimo/internal/draft/service"
)

func NewModule(client *goredis.Client, cfg *config.Config, logger *zap.Logger) (*controller.Controller, *service.Service) {
	repo := repository.NewRedisDraftRepository(client, cfg.Redis.DraftTTL)
	svc := service.NewService(repo, logger)
	return controller.NewController(svc, logger), svc
}
