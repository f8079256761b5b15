package main

import (
	"os"
	"os/signal"
	"project_analysis_backend/bootstrap"
	"project_analysis_backend/config"
	"project_analysis_backend/pkg/logging"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Info("no .env file, using process environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Logger.Error("fail LoadConfig", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.AppEnv)

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		logging.Logger.Error("fail NewApp", "error", err)
		os.Exit(1)
	}
	server := bootstrap.NewServer(app)

	go func() {
		logging.Logger.Info("Server running",
			"port", cfg.HttpPort,
			"env", cfg.AppEnv,
			"mockMode", cfg.MockMode(),
		)
		if err := server.Listen(":" + cfg.HttpPort); err != nil {
			logging.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Logger.Error("fail server shutdown", "error", err)
	}
	if err := app.Shutdown(); err != nil {
		logging.Logger.Error("fail app shutdown", "error", err)
	}
}
