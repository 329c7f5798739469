package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	_ "github.com/tair/confusion-server/docs"
	"github.com/tair/confusion-server/internal/config"
	"github.com/tair/confusion-server/internal/dish"
	"github.com/tair/confusion-server/internal/favorite"
	"github.com/tair/confusion-server/internal/health"
	"github.com/tair/confusion-server/internal/leader"
	"github.com/tair/confusion-server/internal/user"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/database"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/logger"
	"github.com/tair/confusion-server/pkg/metrics"
	"github.com/tair/confusion-server/pkg/middleware"
	"github.com/tair/confusion-server/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("store", cfg.StoreDriver).
		Msg("Starting confusion server")

	auth.Configure(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerURL)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer tracing.Shutdown(context.Background(), tp)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close(context.Background())

	if err := migrate(ctx, store); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Str("driver", store.Driver).Msg("Store initialized successfully")

	redisClient := connectRedis(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var locker lock.Locker = lock.NewKeyedMutex()
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, 10*time.Second)
	}

	var publisher kafka.EventPublisher = kafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, change events are dropped")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	httpMetrics := metrics.NewHTTPMetrics("confusion", prometheus.DefaultRegisterer)

	userRepo, err := user.ProvideUserRepository(store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create user repository")
	}
	dishRepo, err := dish.ProvideDishRepository(store)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create dish repository")
	}

	// Initialize handlers with Wire DI
	userHandler, err := user.InitializeHTTPHandler(userRepo, httpMetrics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize user handler")
	}
	dishHandler, err := dish.InitializeHTTPHandler(dishRepo, httpMetrics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize dish handler")
	}
	favoritesHandler, err := favorite.InitializeHTTPHandler(store, userRepo, dishRepo, locker, publisher, httpMetrics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize favorites handler")
	}
	leaderHandler, err := leader.InitializeHTTPHandler(store, redisClient, publisher, httpMetrics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize leader handler")
	}

	checker := health.NewChecker(cfg.ServiceName, 2*time.Second)
	checker.Register("store", true, store.Ping)
	if redisClient != nil {
		checker.Register("redis", false, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// Setup router
	router := mux.NewRouter()

	mwConfig := middleware.DefaultConfig(cfg.ServiceName)
	mwConfig.CORSOptions.AllowedOrigins = cfg.CORSOrigins
	mwConfig.RateLimitPerMinute = cfg.RateLimit
	mwConfig.TrustedProxies = cfg.TrustedProxies
	mwConfig.Redis = redisClient
	middleware.RegisterMiddlewares(router, mwConfig)

	userHandler.RegisterRoutes(router)
	dishHandler.RegisterRoutes(router)
	favoritesHandler.RegisterRoutes(router)
	leaderHandler.RegisterRoutes(router)
	checker.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           middleware.SetupCORS(mwConfig, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, healthServer := newGRPCServer()
	checker.AttachGRPC(healthServer)
	checker.Check(ctx)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen")
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC health server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
}

func openStore(ctx context.Context, cfg *config.Config) (*database.Store, error) {
	switch cfg.StoreDriver {
	case database.DriverPostgres:
		db, err := database.NewGormConnection(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return &database.Store{Driver: database.DriverPostgres, Gorm: db}, nil
	case database.DriverMongo:
		_, db, err := database.NewMongoConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &database.Store{Driver: database.DriverMongo, Mongo: db}, nil
	case database.DriverMemory:
		return database.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func migrate(ctx context.Context, store *database.Store) error {
	if err := user.Migrate(ctx, store); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := dish.Migrate(store); err != nil {
		return fmt.Errorf("dishes: %w", err)
	}
	if err := favorite.Migrate(ctx, store); err != nil {
		return fmt.Errorf("favorites: %w", err)
	}
	if err := leader.Migrate(store); err != nil {
		return fmt.Errorf("leaders: %w", err)
	}
	return nil
}

// connectRedis returns nil when Redis is not configured or not reachable
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("Redis not configured, using in-process locks")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, using in-process locks")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return client
}

func newGRPCServer() (*grpc.Server, *grpchealth.Server) {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(middleware.UnaryLoggingInterceptor),
	)

	healthServer := grpchealth.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(grpcServer)

	return grpcServer, healthServer
}
