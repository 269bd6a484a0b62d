package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growstat-backend/config"
	"growstat-backend/internal/api"
	"growstat-backend/internal/command"
	"growstat-backend/internal/database"
	"growstat-backend/internal/metrics"
	"growstat-backend/internal/services"
	"growstat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	st, err := database.OpenStore(connectCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if len(cfg.AdminIDs) == 0 {
		logger.Log.Warn("ADMIN_IDS is empty, admin commands are disabled")
	}

	svc := services.NewService(services.Options{
		Store:           st,
		AdminIDs:        cfg.AdminIDs,
		LeaderboardSize: cfg.LeaderboardSize,
		Metrics:         m,
	})
	dispatcher := command.NewDispatcher(svc, command.Options{
		Timeout: cfg.RequestTimeout,
		Metrics: m,
	})

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(api.Deps{
		Service:        svc,
		Dispatcher:     dispatcher,
		Gatherer:       reg,
		CorsOrigins:    cfg.CorsOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening",
			zap.String("addr", cfg.ServerAddr),
			zap.String("store_driver", cfg.StoreDriver),
		)
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

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
