package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transfer_tracker/internal/core/domain"
)

var (
	// errBlockUnavailable stops an iteration when the node cannot serve a block it reported as mined.
	errBlockUnavailable = errors.New("block not available from node")

	// errReceiptPending stops an iteration when a relevant transaction has no receipt yet.
	errReceiptPending = errors.New("receipt not available yet")
)

const (
	minScanTimeout   = 500 * time.Millisecond
	stateSaveTimeout = 5 * time.Second
)

// pollBlocks is the main background loop for scanning the blockchain.
func (s *TransferServiceImpl) pollBlocks(pollCtx context.Context, stopChan chan struct{}, startBlock domain.BlockNumber) {
	defer close(stopChan)
	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	s.scanBlockRange(pollCtx, startBlock)

	for {
		select {
		case <-ticker.C:
			lastScanned, err := s.stateRepo.GetLastScannedBlock(pollCtx)
			if err != nil {
				if isContextError(err) {
					return
				}
				s.logger.Error("Failed to get last scanned block before polling tick", "error", err)
				continue
			}
			s.scanBlockRange(pollCtx, lastScanned)
		case <-pollCtx.Done():
			s.logger.Info("Polling loop stopping due to context cancellation")
			return
		}
	}
}

// scanBlockRange performs a single scan iteration over (lastScanned, latest] and persists progress.
func (s *TransferServiceImpl) scanBlockRange(pollCtx context.Context, lastScanned domain.BlockNumber) {
	scanTimeout := s.pollingInterval - time.Second
	if scanTimeout < minScanTimeout {
		scanTimeout = minScanTimeout
	}
	scanCtx, cancelScan := context.WithTimeout(pollCtx, scanTimeout)
	defer cancelScan()

	logger := s.logger.With("lastScannedBlock", lastScanned.Value())

	latest, err := s.ethClient.GetLatestBlockNumber(scanCtx)
	if err != nil {
		if !isContextError(err) {
			logger.Error("Failed to get latest block number", "error", err)
		}
		return
	}

	start, end := lastScanned.Value()+1, latest.Value()
	if start > end {
		logger.Debug("No new blocks to scan", "latestBlockOnNode", end)
		return
	}

	subscriptions, err := s.subscriptionRepo.FindAll(scanCtx)
	if err != nil {
		if !isContextError(err) {
			logger.Error("Failed to get subscribed addresses", "error", err)
		}
		return
	}
	monitored := domain.NewAddressSet(subscriptions...)

	processed := lastScanned.Value()
	if len(monitored) == 0 {
		logger.Debug("No subscribed addresses, advancing without fetching blocks", "to", end)
		processed = end
	} else {
		logger.Info("Scanning blocks", "from", start, "to", end)
	blocks:
		for i := start; i <= end; i++ {
			if scanCtx.Err() != nil {
				logger.Warn("Scan interrupted", "lastProcessed", processed, "error", scanCtx.Err())
				break
			}
			blockNum, _ := domain.NewBlockNumber(i)
			if err := s.processBlock(scanCtx, blockNum, monitored); err != nil {
				switch {
				case errors.Is(err, errReceiptPending), errors.Is(err, errBlockUnavailable):
					logger.Info("Block not ready, retrying next tick", "blockNumber", i, "reason", err)
				case isContextError(err):
					logger.Warn("Scan interrupted", "lastProcessed", processed, "error", err)
				default:
					logger.Error("Failed to process block, stopping current scan iteration", "blockNumber", i, "error", err)
				}
				break blocks
			}
			processed = i
		}
	}

	if processed == lastScanned.Value() {
		return
	}
	final, _ := domain.NewBlockNumber(processed)
	// Progress is saved even when the scan timed out or the service is stopping.
	saveCtx, cancelSave := context.WithTimeout(context.WithoutCancel(pollCtx), stateSaveTimeout)
	defer cancelSave()
	if err := s.stateRepo.SetLastScannedBlock(saveCtx, final); err != nil {
		logger.Error("Failed to update last scanned block", "blockNumber", processed, "error", err)
		return
	}
	logger.Info("Updated last scanned block", "processedUpToBlock", processed)
}

// processBlock records every transfer in the block that touches a monitored address.
// Store is idempotent per hash, so a block that fails halfway is safe to process again.
func (s *TransferServiceImpl) processBlock(
	ctx context.Context,
	blockNum domain.BlockNumber,
	monitored domain.AddressSet,
) error {
	logger := s.logger.With("blockNumber", blockNum.Value())

	block, err := s.ethClient.GetBlockWithTransactions(ctx, blockNum)
	if err != nil {
		return fmt.Errorf("failed to get block %d: %w", blockNum.Value(), err)
	}
	if block == nil {
		return errBlockUnavailable
	}

	stored := 0
	for _, tx := range block.Involving(monitored) {
		transfer, err := s.buildTransfer(ctx, tx)
		if err != nil {
			if errors.Is(err, domain.ErrReceiptMismatch) {
				logger.Warn("Skipping transaction with mismatching receipt", "txHash", tx.Hash.String(), "error", err)
				continue
			}
			return err
		}

		if err := s.transferRepo.Store(ctx, transfer); err != nil {
			return fmt.Errorf("failed to store transfer %s: %w", tx.Hash.String(), err)
		}
		stored++

		if err := s.notifier.NotifyTransferConfirmed(ctx, transfer); err != nil {
			logger.Error("Failed to notify transfer", "txHash", tx.Hash.String(), "error", err)
		}
	}
	if stored > 0 {
		logger.Info("Stored transfers from block", "storedCount", stored, "blockHash", block.Hash.String())
	}
	return nil
}

// buildTransfer pairs tx with its receipt. A mismatching receipt may be a stale cache entry
// from before a reorg, so it is evicted and fetched once more before giving up.
func (s *TransferServiceImpl) buildTransfer(ctx context.Context, tx domain.Transaction) (domain.Transfer, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			s.ethClient.InvalidateReceipt(tx.Hash)
		}
		receipt, err := s.ethClient.GetTransactionReceipt(ctx, tx.Hash)
		if err != nil {
			return domain.Transfer{}, fmt.Errorf("failed to get receipt for %s: %w", tx.Hash.String(), err)
		}
		if receipt == nil {
			return domain.Transfer{}, fmt.Errorf("%w: %s", errReceiptPending, tx.Hash.String())
		}

		transfer, err := domain.BuildTransfer(tx, *receipt)
		if err == nil {
			return transfer, nil
		}
		if !errors.Is(err, domain.ErrReceiptMismatch) {
			return domain.Transfer{}, fmt.Errorf("failed to build transfer %s: %w", tx.Hash.String(), err)
		}
		lastErr = err
	}
	return domain.Transfer{}, lastErr
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
