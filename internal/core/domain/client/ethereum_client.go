// Package client defines interfaces for external service clients, such as an Ethereum node client.
//
//go:generate mockery --name=EthereumClient --output=../../mocks/mock_client --outpkg=mock_client
package client

import (
	"context"

	"transfer_tracker/internal/core/domain"
)

// EthereumClient defines the interface for interacting with an Ethereum node.
type EthereumClient interface {
	// GetLatestBlockNumber fetches the number of the most recent block in the blockchain.
	GetLatestBlockNumber(ctx context.Context) (domain.BlockNumber, error)

	// GetBlockWithTransactions fetches a block by its number, including all transaction details.
	// It returns nil without error when the node does not know the block.
	GetBlockWithTransactions(ctx context.Context, blockNumber domain.BlockNumber) (*domain.Block, error)

	// GetTransactionReceipt fetches the receipt of an included transaction.
	// It returns nil without error when the node has no receipt yet.
	GetTransactionReceipt(ctx context.Context, hash domain.TransactionHash) (*domain.Receipt, error)

	// InvalidateReceipt drops any locally held receipt for hash so the next
	// GetTransactionReceipt asks the node again.
	InvalidateReceipt(hash domain.TransactionHash)
}
