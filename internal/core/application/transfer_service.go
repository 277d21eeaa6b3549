// Package application contains the core application service logic for the transfer tracker.
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"transfer_tracker/internal/config"
	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/client"
	"transfer_tracker/internal/core/domain/notifier"
	"transfer_tracker/internal/core/domain/repository"
	"transfer_tracker/internal/logger"
	"transfer_tracker/pkg/transferparser"
)

// ErrAlreadyRunning is returned by Start when the polling loop is active.
var ErrAlreadyRunning = errors.New("service already running")

// TransferServiceImpl implements the transferparser.Parser interface and contains the core application logic.
type TransferServiceImpl struct {
	stateRepo        repository.ScanStateRepository
	subscriptionRepo repository.SubscriptionRepository
	transferRepo     repository.TransferRepository
	ethClient        client.EthereumClient
	notifier         notifier.TransferNotifier
	logger           logger.AppLogger

	pollingInterval  time.Duration
	initialScanBlock int64

	mu         sync.Mutex
	pollCtx    context.Context
	pollCancel context.CancelFunc
	stopChan   chan struct{}
}

// Compile-time check to ensure TransferServiceImpl implements transferparser.Parser
var _ transferparser.Parser = (*TransferServiceImpl)(nil)

// NewTransferService creates a new instance of TransferServiceImpl. It performs no I/O.
func NewTransferService(
	stateRepo repository.ScanStateRepository,
	subscriptionRepo repository.SubscriptionRepository,
	transferRepo repository.TransferRepository,
	ethClient client.EthereumClient,
	transferNotifier notifier.TransferNotifier,
	appLogger logger.AppLogger,
	appCfg config.ApplicationServiceConfig,
) (*TransferServiceImpl, error) {
	if appLogger == nil {
		return nil, errors.New("NewTransferService: appLogger is nil")
	}
	if stateRepo == nil {
		return nil, errors.New("NewTransferService: stateRepo is nil")
	}
	if subscriptionRepo == nil {
		return nil, errors.New("NewTransferService: subscriptionRepo is nil")
	}
	if transferRepo == nil {
		return nil, errors.New("NewTransferService: transferRepo is nil")
	}
	if ethClient == nil {
		return nil, errors.New("NewTransferService: ethClient is nil")
	}
	if transferNotifier == nil {
		return nil, errors.New("NewTransferService: transferNotifier is nil")
	}
	if appCfg.PollingIntervalSeconds <= 0 {
		return nil, fmt.Errorf("NewTransferService: polling interval must be positive, got %d", appCfg.PollingIntervalSeconds)
	}

	return &TransferServiceImpl{
		stateRepo:        stateRepo,
		subscriptionRepo: subscriptionRepo,
		transferRepo:     transferRepo,
		ethClient:        ethClient,
		notifier:         transferNotifier,
		logger:           appLogger.Component("TransferService"),
		pollingInterval:  time.Duration(appCfg.PollingIntervalSeconds) * time.Second,
		initialScanBlock: appCfg.InitialScanBlockNumber,
	}, nil
}

// GetCurrentBlock returns the number of the last fully processed block.
func (s *TransferServiceImpl) GetCurrentBlock(ctx context.Context) (blockNumber int64, err error) {
	domainBlockNumber, err := s.stateRepo.GetLastScannedBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current block from state: %w", err)
	}
	return domainBlockNumber.Value(), nil
}

// Subscribe adds a new address to be monitored. Transfers are recorded from the next scanned block on.
func (s *TransferServiceImpl) Subscribe(ctx context.Context, addressString string) (err error) {
	address, err := domain.NewAddress(addressString)
	if err != nil {
		return fmt.Errorf("address validation failed: %w", err)
	}

	if err := s.subscriptionRepo.Add(ctx, address); err != nil {
		s.logger.Error("Failed to subscribe address in repository", "address", address.String(), "error", err)
		return fmt.Errorf("failed to subscribe address in repository: %w", err)
	}

	s.logger.Info("Successfully subscribed address", "address", address.String())
	return nil
}

// GetTransfers retrieves the recorded transfers of an address.
func (s *TransferServiceImpl) GetTransfers(
	ctx context.Context,
	addressString string,
) ([]transferparser.Transfer, error) {
	address, err := domain.NewAddress(addressString)
	if err != nil {
		return nil, fmt.Errorf("address validation failed: %w", err)
	}

	transfers, err := s.transferRepo.FindByAddress(ctx, address)
	if err != nil {
		s.logger.Error("Error fetching transfers for address", "address", address.String(), "error", err)
		return nil, fmt.Errorf("failed to get transfers from repository: %w", err)
	}

	apiTransfers := make([]transferparser.Transfer, 0, len(transfers))
	for _, transfer := range transfers {
		apiTransfers = append(apiTransfers, mapDomainToAPITransfer(transfer))
	}
	return apiTransfers, nil
}

// GetConfirmation returns the confirmation of a recorded transfer.
func (s *TransferServiceImpl) GetConfirmation(
	ctx context.Context,
	hashString string,
) (transferparser.Confirmation, error) {
	hash, err := domain.NewTransactionHash(hashString)
	if err != nil {
		return transferparser.Confirmation{}, fmt.Errorf("transaction hash validation failed: %w", err)
	}

	transfer, err := s.transferRepo.FindByHash(ctx, hash)
	if err != nil {
		return transferparser.Confirmation{}, fmt.Errorf("failed to get transfer %s: %w", hash.String(), err)
	}
	return mapDomainToAPIConfirmation(transfer.Confirmation), nil
}

// Start resolves the starting block and launches the background polling loop.
// The loop outlives ctx; use Stop to end it.
func (s *TransferServiceImpl) Start(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pollCancel != nil && s.pollCtx.Err() == nil {
		return ErrAlreadyRunning
	}

	startBlock, err := s.resolveStartBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve starting block: %w", err)
	}

	s.pollCtx, s.pollCancel = context.WithCancel(context.Background())
	s.stopChan = make(chan struct{})

	go s.pollBlocks(s.pollCtx, s.stopChan, startBlock)
	s.logger.Info("Transfer service started polling", "lastScannedBlock", startBlock.Value())
	return nil
}

// Stop signals the background polling process to shut down and waits for it to complete.
func (s *TransferServiceImpl) Stop(ctx context.Context) (err error) {
	s.mu.Lock()
	if s.pollCancel == nil || s.pollCtx.Err() != nil {
		s.mu.Unlock()
		s.logger.Info("Transfer service is not running or already stopped")
		return nil
	}
	s.pollCancel()
	stopChan := s.stopChan
	s.mu.Unlock()

	s.logger.Info("Stopping transfer service...")
	select {
	case <-stopChan:
		s.logger.Info("Transfer service stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Error("Transfer service stop timed out", "error", ctx.Err())
		return ctx.Err()
	}
}

// resolveStartBlock returns the last scanned block to resume from: the persisted state,
// else the configured initial block minus one, else the chain head. A newly resolved value is persisted.
func (s *TransferServiceImpl) resolveStartBlock(ctx context.Context) (domain.BlockNumber, error) {
	persisted, err := s.stateRepo.GetLastScannedBlock(ctx)
	if err == nil {
		s.logger.Info("Resuming from persisted state", "lastScannedBlock", persisted.Value())
		return persisted, nil
	}
	if !errors.Is(err, repository.ErrScanStateNotInitialized) {
		return domain.BlockNumber{}, fmt.Errorf("failed to read scan state: %w", err)
	}

	var start domain.BlockNumber
	if s.initialScanBlock >= 0 {
		start, err = domain.NewBlockNumber(max(s.initialScanBlock-1, 0))
		if err != nil {
			return domain.BlockNumber{}, err
		}
		s.logger.Info("Starting from configured block", "initialScanBlock", s.initialScanBlock)
	} else {
		start, err = s.ethClient.GetLatestBlockNumber(ctx)
		if err != nil {
			return domain.BlockNumber{}, fmt.Errorf("failed to fetch latest block number: %w", err)
		}
		s.logger.Info("Starting from latest network block", "blockNumber", start.Value())
	}

	if err := s.stateRepo.SetLastScannedBlock(ctx, start); err != nil {
		return domain.BlockNumber{}, fmt.Errorf("failed to persist initial scan state: %w", err)
	}
	return start, nil
}
