package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidmarquez/tastebite-backend/api/routes"
	"github.com/davidmarquez/tastebite-backend/internal/auth"
	"github.com/davidmarquez/tastebite-backend/internal/cart"
	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	checkoutsvc "github.com/davidmarquez/tastebite-backend/internal/checkout"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/internal/flyers"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/internal/restaurants"
	"github.com/davidmarquez/tastebite-backend/internal/users"
	"github.com/davidmarquez/tastebite-backend/pkg/auth/session"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
	"github.com/davidmarquez/tastebite-backend/pkg/metrics"
	"github.com/davidmarquez/tastebite-backend/pkg/migrate"
	"github.com/davidmarquez/tastebite-backend/pkg/outbox"
	"github.com/davidmarquez/tastebite-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	restaurantRepo := restaurants.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	couponRepo := coupons.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)

	usersSvc, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	resolver, err := catalog.NewResolver(catalogRepo, cfg.Checkout.MaxItemQuantity)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog resolver", err)
		os.Exit(1)
	}

	restaurantSvc, err := restaurants.NewService(restaurantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create restaurants service", err)
		os.Exit(1)
	}

	flyerSvc, err := flyers.NewService(flyers.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create flyers service", err)
		os.Exit(1)
	}

	cartSvc, err := cart.NewService(cartRepo, resolver, restaurantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	couponSvc, err := coupons.NewService(couponRepo, cartRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupons service", err)
		os.Exit(1)
	}

	outboxSvc := outbox.NewService(outbox.NewRepository(gormDB), logg)

	ordersSvc, err := orders.NewService(dbClient, ordersRepo, outboxSvc, cfg.FeatureFlags)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutSvc, err := checkoutsvc.NewService(dbClient, cartRepo, couponRepo, ordersRepo, catalogRepo, usersRepo, restaurantRepo, outboxSvc, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		Tx:             dbClient,
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		RateLimiter:    redisClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		RateLimits:     cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Idempotency:    redisClient,
			Session:        sessionManager,
			Metrics:        metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
			MetricsHandler: promhttp.Handler(),

			Auth:        authSvc,
			Users:       usersSvc,
			Catalog:     catalogSvc,
			Restaurants: restaurantSvc,
			Flyers:      flyerSvc,
			Cart:        cartSvc,
			Coupons:     couponSvc,
			Checkout:    checkoutSvc,
			Orders:      ordersSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
