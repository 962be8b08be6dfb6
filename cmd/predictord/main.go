package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/artifact"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/config"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/memory"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/messaging"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/ml"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/postgres"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/threshold"
	grpcpresentation "github.com/yadav-krish/ticket-booking-prediction/internal/presentation/grpc"
	"github.com/yadav-krish/ticket-booking-prediction/internal/presentation/rest"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/kafka"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/observability"
	pgpool "github.com/yadav-krish/ticket-booking-prediction/pkg/postgres"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/tlsutil"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "check the local gRPC health endpoint and exit")
	flag.Parse()

	if *healthcheck {
		if err := runHealthcheck(context.Background(), config.Load()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("booking-predictor exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	profile := cfg.ProfileValue()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Telemetry.ServiceName,
	})

	logger.Info("starting booking-predictor",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"profile", profile.String(),
	)

	// Tracing is only exported when an endpoint is configured.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return err
	}
	defer meterProvider.Shutdown(context.Background())

	predictionMetrics, err := observability.NewPredictionMetrics(meterProvider, cfg.Telemetry.ServiceName)
	if err != nil {
		return err
	}

	// Artifacts.
	predictor, decisionThreshold, err := loadArtifacts(ctx, cfg, profile, logger)
	if err != nil {
		return err
	}

	// Persistence.
	var repo port.PredictionRepository
	checks := []rest.ReadinessCheck{{Name: "model", Check: predictor.Ready}}
	if cfg.DatabaseEnabled() {
		pool, err := connectDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = postgres.NewPredictionRepository(pool)
		checks = append(checks, rest.ReadinessCheck{
			Name:  "database",
			Check: func(ctx context.Context) error { return pgpool.HealthCheck(ctx, pool) },
		})
	} else {
		logger.Info("DATABASE_URL not set, keeping predictions in memory")
		repo = memory.NewPredictionRepository(memory.DefaultCapacity)
	}

	// Event publishing.
	var publisher port.EventPublisher
	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaClientConfig())
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing prediction events to kafka", "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogPublisher(logger)
	}

	// Wire use cases.
	predictBookingUC := usecase.NewPredictBooking(
		predictor, repo, publisher, profile, decisionThreshold, predictionMetrics, logger,
	)
	getPredictionUC := usecase.NewGetPrediction(repo)
	listPredictionsUC := usecase.NewListPredictions(repo)

	// HTTP server.
	httpMux := http.NewServeMux()
	rest.NewHealthHandler(logger, checks...).RegisterRoutes(httpMux)
	rest.NewFormHandler(predictBookingUC, logger).RegisterRoutes(httpMux)
	rest.NewPredictionHandler(predictBookingUC, getPredictionUC, listPredictionsUC, logger).RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	middleware := []func(http.Handler) http.Handler{rest.RequestIDMiddleware, rest.LoggingMiddleware(logger)}
	if cfg.RateLimit > 0 {
		middleware = append(middleware, rest.RateLimitMiddleware(rest.NewRateLimiter(cfg.RateLimit)))
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.Chain(httpMux, middleware...),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// gRPC server. GRPC_PORT=0 disables it.
	var grpcServer *grpcpresentation.Server
	if cfg.GRPCPort > 0 {
		tlsOpts := tlsutil.ServerOptions{
			CertFile:     cfg.GRPC.TLSCertFile,
			KeyFile:      cfg.GRPC.TLSKeyFile,
			ClientCAFile: cfg.GRPC.TLSClientCAFile,
		}
		if cfg.GRPC.DevCertsDir != "" {
			certs, err := tlsutil.GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, cfg.GRPC.DevCertsDir)
			if err != nil {
				return fmt.Errorf("failed to generate development certificates: %w", err)
			}
			tlsOpts.CertFile, tlsOpts.KeyFile = certs.CertFile, certs.KeyFile
			logger.Warn("gRPC using generated development certificates", "ca", certs.CAFile)
		}

		grpcHandler := grpcpresentation.NewPredictionServiceHandler(predictBookingUC, getPredictionUC, logger)
		grpcServer, err = grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
			Address:    cfg.GRPCAddress(),
			Reflection: cfg.GRPC.Reflection,
			TLS:        tlsOpts,
		}, logger)
		if err != nil {
			return err
		}
	}

	// Start servers. The first to fail cancels the group and triggers shutdown.
	g, gctx := errgroup.WithContext(ctx)

	if grpcServer != nil {
		g.Go(func() error {
			if err := grpcServer.Start(); err != nil {
				return fmt.Errorf("gRPC server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	logger.Info("booking-predictor started",
		"http_address", cfg.HTTPAddress(),
		"grpc_enabled", grpcServer != nil,
		"threshold", decisionThreshold.Value(),
		"environment", cfg.Environment,
	)

	// Graceful shutdown.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down booking-predictor")

		if grpcServer != nil {
			grpcServer.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("booking-predictor stopped")
	return err
}

// loadArtifacts fetches and validates the model, encoder and scaler and
// resolves the decision threshold for the active profile.
func loadArtifacts(
	ctx context.Context,
	cfg config.Config,
	profile valueobject.Profile,
	logger *slog.Logger,
) (*ml.Predictor, valueobject.Threshold, error) {
	loaderCfg := ml.LoaderConfig{
		Profile: profile,
		Model: artifact.Source{
			Name:   "model",
			Path:   cfg.Artifacts.ModelPath,
			URL:    cfg.Artifacts.ModelURL,
			SHA256: cfg.Artifacts.ModelSHA256,
		},
		Scaler: artifact.Source{
			Name:   "scaler",
			Path:   cfg.Artifacts.ScalerPath,
			URL:    cfg.Artifacts.ScalerURL,
			SHA256: cfg.Artifacts.ScalerSHA256,
		},
		EncodingTablePath: cfg.Artifacts.EncodingTablePath,
		EncodingMode:      cfg.Artifacts.EncodingMode,
	}
	if cfg.Artifacts.StubProbability != "" {
		p, err := cfg.StubProbability()
		if err != nil {
			return nil, valueobject.Threshold{}, err
		}
		loaderCfg.StubProbability = &p
	}

	fetcher := artifact.NewFetcher(artifact.FetcherConfig{
		Timeout:    cfg.Artifacts.FetchTimeout,
		MaxRetries: cfg.Artifacts.FetchRetries,
	}, logger)

	predictor, err := ml.LoadPredictor(ctx, loaderCfg, fetcher, logger)
	if err != nil {
		return nil, valueobject.Threshold{}, fmt.Errorf("failed to load predictor: %w", err)
	}

	fallback, err := valueobject.NewThreshold(cfg.Threshold.Default)
	if err != nil {
		return nil, valueobject.Threshold{}, err
	}
	return predictor, threshold.ForProfile(profile, cfg.Threshold.Path, fallback, logger), nil
}

func connectDatabase(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpool.NewPool(dbCtx, pgpool.Config{
		URL:      cfg.DB.URL,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	if err := pgpool.RunMigrations(cfg.DB.URL, cfg.DB.MigrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database migrations applied", "dir", cfg.DB.MigrationsDir)
	return pool, nil
}
