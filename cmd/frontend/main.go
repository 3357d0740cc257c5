package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/config"
	"github.com/mamadbah2/storemanager/internal/server/handlers"
	"github.com/mamadbah2/storemanager/internal/server/router"
	relaysvc "github.com/mamadbah2/storemanager/internal/service/relay"
	inventoryclient "github.com/mamadbah2/storemanager/pkg/clients/inventory"
	"github.com/mamadbah2/storemanager/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client := inventoryclient.NewClient(cfg.Frontend, baseLogger.Named("client.inventory"))
	relay := relaysvc.NewService(client, baseLogger.Named("svc.relay"))
	proxyHandler := handlers.NewProxyHandler(relay, baseLogger.Named("handlers.proxy"))
	engine := router.NewFrontend(proxyHandler, baseLogger.Named("router"))

	// leave room for a slow backend call
	writeTimeout := cfg.Frontend.BackendTimeout + 15*time.Second

	srv := &http.Server{
		Addr:         ":" + cfg.Frontend.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("frontend starting",
			zap.String("port", cfg.Frontend.Port),
			zap.String("backend_url", cfg.Frontend.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
