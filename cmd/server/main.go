package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AmirSomo/api/configs"
	"github.com/AmirSomo/api/internal/handlers"
	"github.com/AmirSomo/api/internal/ledger"
	"github.com/AmirSomo/api/internal/logger"
	"github.com/AmirSomo/api/internal/routes"
	"github.com/AmirSomo/api/internal/seed"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()

	bank := ledger.New()
	if configs.AppConfig.Seed.Enabled {
		seed.Run(bank)
	}

	router := routes.NewRoutes(handlers.New(bank))

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  time.Duration(configs.AppConfig.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(configs.AppConfig.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(configs.AppConfig.Server.IdleTimeoutSec) * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Log.Info("server stopped")
}
