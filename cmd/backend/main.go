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
	"github.com/mamadbah2/storemanager/internal/repository/memory"
	"github.com/mamadbah2/storemanager/internal/repository/mongodb"
	redisrepo "github.com/mamadbah2/storemanager/internal/repository/redis"
	"github.com/mamadbah2/storemanager/internal/repository/sheets"
	"github.com/mamadbah2/storemanager/internal/scheduler"
	"github.com/mamadbah2/storemanager/internal/server/handlers"
	"github.com/mamadbah2/storemanager/internal/server/router"
	inventorysvc "github.com/mamadbah2/storemanager/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/storemanager/internal/service/reporting"
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

	store, closeStore, err := openStore(cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init item store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	inventory := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	err = inventory.Bootstrap(bootCtx)
	cancelBoot()
	if err != nil {
		baseLogger.Fatal("failed to seed inventory", zap.Error(err))
	}

	if cfg.SnapshotEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingSvc := reportingsvc.NewService(inventory, sheetsRepo, baseLogger.Named("svc.reporting"))

		sched := scheduler.NewScheduler(cfg.Snapshot.CronSchedule, reportingSvc, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Info("GOOGLE_SHEET_ID not set, snapshot export disabled")
	}

	itemsHandler := handlers.NewItemsHandler(inventory, baseLogger.Named("handlers.items"))
	engine := router.NewBackend(itemsHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Backend.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("backend starting", zap.String("port", cfg.Backend.Port), zap.String("driver", cfg.Store.Driver))
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

// openStore builds the configured item store and its close function.
func openStore(cfg *config.Config, log *zap.Logger) (inventorysvc.Store, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Close(closeCtx); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil

	case config.DriverRedis:
		client := redisrepo.NewClient(cfg.Redis)
		if err := redisrepo.Ping(ctx, client); err != nil {
			_ = redisrepo.Close(client)
			return nil, nil, err
		}
		return redisrepo.NewStore(client), func() {
			if err := redisrepo.Close(client); err != nil {
				log.Error("failed to close redis connection", zap.Error(err))
			}
		}, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}
