package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundryos-backend/config"
	"laundryos-backend/logger"
	"laundryos-backend/routes"
	"laundryos-backend/services"
	"laundryos-backend/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	os.Exit(start())
}

// start returns the process exit code. Deferred cleanup, including the final
// log flush, has run by the time it returns.
func start() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logger.New(logger.Options{Env: cfg.Env, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		return 1
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	serviceStore, orderStore, closeStores, err := openStores(cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	notifier := services.NewNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.SummaryRecipient, log.Named("notifier"))
	summary := services.NewSummaryService(orderStore, notifier, log.Named("summary"))
	if err := summary.StartScheduler(cfg.SummarySchedule); err != nil {
		return err
	}
	defer summary.StopScheduler()

	r := routes.SetupRouter(routes.Dependencies{
		Config:   cfg,
		Log:      log,
		Services: serviceStore,
		Orders:   services.NewOrderService(serviceStore, orderStore, cfg.VATRate, log.Named("orders")),
		Summary:  summary,
	})
	printRoutes(r, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores builds the stores for the configured driver. The returned
// func releases whatever they hold.
func openStores(cfg *config.Config, log *zap.Logger) (store.ServiceStore, store.OrderStore, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		return store.NewMemoryServiceStore(), store.NewMemoryOrderStore(), func() {}, nil
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := config.CloseDB(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}
	return store.NewGormServiceStore(db), store.NewGormOrderStore(db), closeDB, nil
}

func printRoutes(r *gin.Engine, log *zap.Logger) {
	for _, route := range r.Routes() {
		log.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
