package bootstrap

import (
	"project_analysis_backend/config"
	"project_analysis_backend/handlers"
)

type Handlers struct {
	DocHandler *handlers.DocHandler
}

func NewHandlers(cfg *config.Config, services *Services, infra *Infrastructure) *Handlers {
	return &Handlers{
		DocHandler: handlers.NewDocHandler(services.DocService, infra.Storage, cfg),
	}
}
