package rpc

import (
	"fmt"
	"math"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/logger"
	"transfer_tracker/internal/utils"
)

// receiptStatusFailed is the post-Byzantium status of a reverted transaction.
const receiptStatusFailed = "0x0"

// mapRPCBlockToDomain converts the RPC DTO for a block to the domain model.
// Transactions that cannot be mapped are logged and left out.
func mapRPCBlockToDomain(rpcBlock *Block, log logger.AppLogger) (*domain.Block, error) {
	num, err := utils.HexToInt64(rpcBlock.Number)
	if err != nil {
		return nil, fmt.Errorf("invalid block number hex '%s': %w", rpcBlock.Number, err)
	}
	domainBlockNum, err := domain.NewBlockNumber(num)
	if err != nil {
		return nil, fmt.Errorf("failed creating domain block number: %w", err)
	}

	domainBlockHash, err := domain.NewBlockHash(rpcBlock.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed creating domain block hash: %w", err)
	}

	timestamp, err := utils.HexToUint64(rpcBlock.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid block timestamp hex '%s': %w", rpcBlock.Timestamp, err)
	}
	if timestamp > math.MaxInt64 {
		return nil, fmt.Errorf("block timestamp %d out of range", timestamp)
	}

	domainTxs := make([]domain.Transaction, 0, len(rpcBlock.Transactions))
	for i := range rpcBlock.Transactions {
		rpcTx := &rpcBlock.Transactions[i]
		domainTx, err := mapRPCTransactionToDomain(rpcTx, domainBlockNum, domainBlockHash, uint64(i), timestamp)
		if err != nil {
			log.Warn("Skipping unmappable transaction",
				"blockNumber", num, "position", i, "txHash", rpcTx.Hash, "error", err)
			continue
		}
		domainTxs = append(domainTxs, domainTx)
	}

	domainBlock := domain.NewBlock(domainBlockNum, domainBlockHash, timestamp, domainTxs)
	return &domainBlock, nil
}

// mapRPCTransactionToDomain converts the RPC DTO for a transaction to the domain model.
// position is used as the index when the node omits transactionIndex.
func mapRPCTransactionToDomain(
	rpcTx *Transaction,
	blockNum domain.BlockNumber,
	blockHash domain.BlockHash,
	position uint64,
	blockTimestamp uint64,
) (domain.Transaction, error) {
	hash, err := domain.NewTransactionHash(rpcTx.Hash)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid tx hash '%s': %w", rpcTx.Hash, err)
	}

	from, err := domain.NewAddress(rpcTx.From)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid tx from address '%s': %w", rpcTx.From, err)
	}

	var to domain.Address
	if rpcTx.To != nil && *rpcTx.To != "" {
		to, err = domain.NewAddress(*rpcTx.To)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid tx to address '%s': %w", *rpcTx.To, err)
		}
	}

	value, err := domain.NewWeiValue(rpcTx.Value)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid tx value '%s': %w", rpcTx.Value, err)
	}

	var gasPrice domain.WeiValue
	if rpcTx.GasPrice != "" {
		gasPrice, err = domain.NewWeiValue(rpcTx.GasPrice)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid tx gas price '%s': %w", rpcTx.GasPrice, err)
		}
	}

	index := position
	if rpcTx.TransactionIndex != nil && *rpcTx.TransactionIndex != "" {
		index, err = utils.HexToUint64(*rpcTx.TransactionIndex)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid tx index '%s': %w", *rpcTx.TransactionIndex, err)
		}
	}

	return domain.NewTransaction(hash, from, to, value, gasPrice, blockNum, blockHash, index, blockTimestamp), nil
}

// mapRPCReceiptToDomain converts the RPC DTO for a receipt to the domain model.
func mapRPCReceiptToDomain(rpcReceipt *Receipt) (*domain.Receipt, error) {
	hash, err := domain.NewTransactionHash(rpcReceipt.TransactionHash)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt tx hash '%s': %w", rpcReceipt.TransactionHash, err)
	}

	num, err := utils.HexToInt64(rpcReceipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt block number hex '%s': %w", rpcReceipt.BlockNumber, err)
	}
	blockNum, err := domain.NewBlockNumber(num)
	if err != nil {
		return nil, fmt.Errorf("failed creating domain block number: %w", err)
	}

	blockHash, err := domain.NewBlockHash(rpcReceipt.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt block hash: %w", err)
	}

	index, err := utils.HexToUint64(rpcReceipt.TransactionIndex)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt tx index '%s': %w", rpcReceipt.TransactionIndex, err)
	}

	gasUsed, err := utils.HexToUint64(rpcReceipt.GasUsed)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt gas used '%s': %w", rpcReceipt.GasUsed, err)
	}

	var effectiveGasPrice domain.WeiValue
	if rpcReceipt.EffectiveGasPrice != nil && *rpcReceipt.EffectiveGasPrice != "" {
		effectiveGasPrice, err = domain.NewWeiValue(*rpcReceipt.EffectiveGasPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid receipt effective gas price '%s': %w", *rpcReceipt.EffectiveGasPrice, err)
		}
	}

	succeeded := rpcReceipt.Status == nil || *rpcReceipt.Status != receiptStatusFailed

	return &domain.Receipt{
		TransactionHash:   hash,
		BlockNumber:       blockNum,
		BlockHash:         blockHash,
		TransactionIndex:  index,
		GasUsed:           gasUsed,
		EffectiveGasPrice: effectiveGasPrice,
		Succeeded:         succeeded,
	}, nil
}
