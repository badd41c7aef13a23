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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-food-diary/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/lookup"
	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/lookup/openfoodfacts"
	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-food-diary/internal/config"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/workers"
	"github.com/comitanigiacomo/kanso-food-diary/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kanso-food-diary: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis(ctx, cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	backend, err := repository.Open(ctx, cfg, rdb, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	historySvc := services.NewHistoryService(backend.Store, logger)
	historyWorker := workers.NewHistoryWorker(historySvc, logger)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	historyWorker.Start(workerCtx)

	diarySvc := services.NewDiaryService(backend.Store, historyWorker, logger, services.WithLocation(cfg.Location))
	settingsSvc := services.NewSettingsService(backend.Store, logger)
	summarySvc := services.NewSummaryService(diarySvc, settingsSvc)

	var productLookup domain.ProductLookup = openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.Timeout)
	if rdb != nil {
		productLookup = lookup.NewCachedLookup(productLookup, rdb, cfg.OpenFoodFacts.CacheTTL, logger)
	}
	productSvc := services.NewProductService(productLookup, diarySvc, logger)

	tokenSvc := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	authSvc := services.NewAuthService(cfg.Auth.PasscodeHash, tokenSvc, logger)
	if !authSvc.Enabled() {
		logger.Warn("AUTH_PASSCODE_HASH is empty, the API is open to anyone who can reach it")
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		DiaryHandler:    adapterHTTP.NewDiaryHandler(diarySvc),
		SummaryHandler:  adapterHTTP.NewSummaryHandler(summarySvc, diarySvc.Today),
		SettingsHandler: adapterHTTP.NewSettingsHandler(settingsSvc),
		ProductHandler:  adapterHTTP.NewProductHandler(productSvc, diarySvc.Today),
		HistoryHandler:  adapterHTTP.NewHistoryHandler(historySvc),
		AuthHandler:     adapterHTTP.NewAuthHandler(authSvc),
		AuthService:     authSvc,
		StoragePing:     backend.Ping,
		Redis:           rdb,
		RateLimit:       cfg.RateLimit,
		Logger:          logger,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("food diary listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", backend.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	serveErr := g.Wait()

	cancelWorker()
	historyWorker.Wait()

	if serveErr != nil {
		logger.Error("server stopped with error", zap.Error(serveErr))
		return serveErr
	}
	logger.Info("server stopped gracefully")
	return nil
}

// connectRedis returns nil when redis is not needed or not reachable; the
// server then runs without caches and rate limiting.
func connectRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	needed := cfg.Storage.Backend == config.BackendRedis || cfg.Storage.CacheEnabled || cfg.RateLimit > 0
	if !needed {
		return nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable", zap.Error(err))
		return nil
	}
	return rdb
}
