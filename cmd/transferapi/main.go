package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"transfer_tracker/internal/adapters/events/rabbitmq"
	"transfer_tracker/internal/adapters/restapi"
	"transfer_tracker/internal/adapters/rpc"
	"transfer_tracker/internal/adapters/storage/memory/scan_state"
	"transfer_tracker/internal/adapters/storage/memory/subscription"
	"transfer_tracker/internal/adapters/storage/memory/transfer"
	"transfer_tracker/internal/adapters/storage/postgres"
	"transfer_tracker/internal/config"
	"transfer_tracker/internal/core/application"
	"transfer_tracker/internal/core/domain/notifier"
	"transfer_tracker/internal/core/domain/repository"
	"transfer_tracker/internal/logger"
)

const (
	serviceStopTimeout = 10 * time.Second
	httpStopTimeout    = 15 * time.Second
)

// repositories groups the storage ports selected by configuration.
type repositories struct {
	state         repository.ScanStateRepository
	subscriptions repository.SubscriptionRepository
	transfers     repository.TransferRepository
	close         func()
}

// main is entry point of application.
func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: config/config.yml)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.NewAppLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Application shut down gracefully")
}

func run(cfg *config.Config, appLogger logger.AppLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := buildRepositories(ctx, cfg.Storage, appLogger)
	if err != nil {
		return err
	}
	defer repos.close()

	transferNotifier, closeNotifier, err := buildNotifier(cfg.Events, appLogger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	httpClient := &http.Client{Timeout: time.Duration(cfg.ETHClient.ClientTimeoutSeconds) * time.Second}
	ethClient, err := rpc.NewEthereumNodeAdapter(cfg.ETHClient.NodeURL, httpClient, cfg.ETHClient.ReceiptCacheSize, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create ethereum client: %w", err)
	}

	service, err := application.NewTransferService(
		repos.state, repos.subscriptions, repos.transfers, ethClient, transferNotifier, appLogger, cfg.AppService,
	)
	if err != nil {
		return fmt.Errorf("failed to create transfer service: %w", err)
	}

	apiServer, err := restapi.NewServer(service, appLogger, &cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if err := service.Start(ctx); err != nil {
		return fmt.Errorf("failed to start transfer service: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down...")

		httpCtx, cancelHTTP := context.WithTimeout(context.Background(), httpStopTimeout)
		defer cancelHTTP()
		httpErr := apiServer.Shutdown(httpCtx)

		svcCtx, cancelSvc := context.WithTimeout(context.Background(), serviceStopTimeout)
		defer cancelSvc()
		svcErr := service.Stop(svcCtx)

		return errors.Join(httpErr, svcErr)
	})

	return g.Wait()
}

func buildRepositories(ctx context.Context, cfg config.StorageConfig, appLogger logger.AppLogger) (*repositories, error) {
	switch cfg.Driver {
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		appLogger.Info("Using postgres storage")
		return &repositories{
			state:         postgres.NewScanStateStore(pool),
			subscriptions: postgres.NewSubscriptionStore(pool),
			transfers:     postgres.NewTransferStore(pool),
			close:         pool.Close,
		}, nil
	default:
		appLogger.Info("Using in-memory storage")
		return &repositories{
			state:         scan_state.NewInMemoryScanStateRepo(),
			subscriptions: subscription.NewInMemorySubscriptionRepo(),
			transfers:     transfer.NewInMemoryTransferRepo(),
			close:         func() {},
		}, nil
	}
}

func buildNotifier(cfg config.EventsConfig, appLogger logger.AppLogger) (notifier.TransferNotifier, func(), error) {
	if cfg.RabbitMQURL == "" {
		appLogger.Info("No RabbitMQ URL configured, transfer events are only logged")
		return rabbitmq.NewLoggingNotifier(appLogger), func() {}, nil
	}

	producer, err := rabbitmq.NewProducer(cfg.RabbitMQURL, cfg.Exchange, cfg.RoutingKey, appLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	closeProducer := func() {
		if err := producer.Close(); err != nil {
			appLogger.Warn("Failed to close RabbitMQ producer", "error", err)
		}
	}
	return producer, closeProducer, nil
}
