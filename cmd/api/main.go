package main

import (
	"context"
	"log"

	_ "transcribe_billing/docs"
	"transcribe_billing/internal/adapter/http/handlers"
	"transcribe_billing/internal/adapter/http/routes"
	"transcribe_billing/internal/adapter/persistence/repository"
	"transcribe_billing/internal/config"
	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/infrastructure/database"
	"transcribe_billing/internal/infrastructure/events"
	"transcribe_billing/internal/infrastructure/logger"
	"transcribe_billing/internal/infrastructure/payments"
	"transcribe_billing/internal/usecase"
	"transcribe_billing/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Transcription Billing API
// @version         1.0
// @description     Transcription pricing quotes and order payment lifecycle.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	repo, closeRepo, err := newOrderRepository(ctx, cfg)
	if err != nil {
		zlog.Fatal("order repository init failed", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer closeRepo()

	engine, err := pricing.NewEngine(cfg.PricingConfig())
	if err != nil {
		zlog.Fatal("pricing engine init failed", zap.Error(err))
	}

	var verifier interfaces.IPaymentVerifier
	mpVerifier, err := payments.NewMercadoPagoVerifier(cfg.MercadoPagoAccessToken, cfg.Currency, cfg.PaymentMockEnabled(), zlog)
	if err != nil {
		zlog.Warn("Mercado Pago verifier not configured, payment confirmation disabled", zap.Error(err))
	} else {
		verifier = mpVerifier
	}

	var publisher interfaces.IOrderEventPublisher = events.NewNoopOrderPublisher(zlog)
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kp := events.NewKafkaOrderPublisher(brokers, cfg.KafkaTopic, zlog)
		defer func() { _ = kp.Close() }()
		publisher = kp
		zlog.Info("order events enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	orderUseCase := usecase.NewOrderUseCase(repo, verifier, publisher, engine, usecase.OrderConfig{
		Currency:          cfg.Currency,
		MaxCreateAttempts: cfg.OrderCreateMaxAttempts,
		VerifyTimeout:     cfg.PaymentVerifyTimeout,
	}, zlog, usecase.WithReferenceGenerator(usecase.NewReferenceGenerator(cfg.OrderPrefix)))
	pricingUseCase := usecase.NewPricingUseCase(engine, cfg.Currency, zlog)

	router := routes.NewRouter(routes.Handlers{
		Order:   handlers.NewOrderHandler(orderUseCase, zlog),
		Pricing: handlers.NewPricingHandler(pricingUseCase, zlog),
	}, zlog)

	zlog.Info("starting api",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.String("pricing_version", string(engine.ActiveVersion())))
	if err := routes.Run(router, cfg.Port); err != nil {
		zlog.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func newOrderRepository(ctx context.Context, cfg *config.Config) (interfaces.IOrderRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewOrderPostgresRepository(pool), pool.Close, nil
	case config.StorageMemory:
		return repository.NewOrderMemoryRepository(), func() {}, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable), func() {}, nil
	}
}
