package bootstrap

import (
	"project_analysis_backend/config"
	"project_analysis_backend/pkg/logging"
)

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Services       *Services
	Handlers       *Handlers
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	services, err := NewServices(cfg, infra)
	if err != nil {
		logging.Logger.Error("fail NewServices", "error", err)
		_ = infra.Shutdown()
		return nil, err
	}
	app.Services = services

	app.Handlers = NewHandlers(cfg, services, infra)
	return app, nil
}

// Shutdown infra
func (a *App) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.Infrastructure != nil {
		if err := a.Infrastructure.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
