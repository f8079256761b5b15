package bootstrap

import (
	"project_analysis_backend/config"
	"project_analysis_backend/services"
)

type Services struct {
	DocService       *services.DocumentService
	ExtractionClient services.ExtractionClient
}

func NewServices(cfg *config.Config, infra *Infrastructure) (*Services, error) {
	res := &Services{}

	resultCache := services.NewResultCache(infra.Cache, cfg.ResultCacheTTL)
	client, err := services.NewExtractionClient(cfg, resultCache)
	if err != nil {
		return nil, err
	}
	res.ExtractionClient = client

	res.DocService = services.NewDocumentService(
		services.NewTextExtractor(),
		client,
		cfg.TokenThreshold,
		cfg.ChunkSize,
	)
	return res, nil
}
