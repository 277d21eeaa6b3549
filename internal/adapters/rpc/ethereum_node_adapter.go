// Package rpc implements an Ethereum client using JSON-RPC communication with an Ethereum node.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/client"
	"transfer_tracker/internal/logger"
	"transfer_tracker/internal/utils"
)

// ErrNilLogger is returned when the adapter is built without a logger.
var ErrNilLogger = errors.New("logger cannot be nil")

// EthereumNodeAdapter implements the client.EthereumClient interface by making JSON-RPC calls to an Ethereum node.
// Receipts of included transactions are cached by hash.
type EthereumNodeAdapter struct {
	rpcURL       string
	httpClient   *http.Client
	requestID    atomic.Int64
	receiptCache *lru.Cache
	logger       logger.AppLogger
}

// Compile-time check to ensure EthereumNodeAdapter implements client.EthereumClient
var _ client.EthereumClient = (*EthereumNodeAdapter)(nil)

// NewEthereumNodeAdapter creates a new RPC adapter.
func NewEthereumNodeAdapter(
	rpcURL string,
	httpClient *http.Client,
	receiptCacheSize int,
	appLogger logger.AppLogger,
) (*EthereumNodeAdapter, error) {
	if rpcURL == "" {
		return nil, errors.New("rpc URL cannot be empty")
	}
	if appLogger == nil {
		return nil, ErrNilLogger
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cache, err := lru.New(receiptCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt cache: %w", err)
	}
	return &EthereumNodeAdapter{
		rpcURL:       rpcURL,
		httpClient:   httpClient,
		receiptCache: cache,
		logger:       appLogger.Component("EthereumNodeAdapter"),
	}, nil
}

// GetLatestBlockNumber fetches the number of the most recent block.
func (a *EthereumNodeAdapter) GetLatestBlockNumber(ctx context.Context) (domain.BlockNumber, error) {
	respBody, err := a.doRPC(ctx, "eth_blockNumber", []interface{}{})
	if err != nil {
		return domain.BlockNumber{}, fmt.Errorf("RPC call failed: %w", err)
	}

	if isNullResult(respBody.Result) {
		return domain.BlockNumber{}, errors.New("RPC result is null for eth_blockNumber")
	}

	var resultStr string
	if err := json.Unmarshal(respBody.Result, &resultStr); err != nil {
		return domain.BlockNumber{}, fmt.Errorf("failed to unmarshal block number result: %w", err)
	}

	blockNumberInt, err := utils.HexToInt64(resultStr)
	if err != nil {
		return domain.BlockNumber{}, fmt.Errorf("failed to parse block number hex '%s': %w", resultStr, err)
	}

	return domain.NewBlockNumber(blockNumberInt)
}

// GetBlockWithTransactions fetches a block by its number and includes its transactions.
func (a *EthereumNodeAdapter) GetBlockWithTransactions(
	ctx context.Context,
	blockNumber domain.BlockNumber,
) (*domain.Block, error) {
	blockNumberHex := utils.Uint64ToHex(uint64(blockNumber.Value()))
	params := []interface{}{blockNumberHex, true}

	respBody, err := a.doRPC(ctx, "eth_getBlockByNumber", params)
	if err != nil {
		return nil, fmt.Errorf("RPC call failed: %w", err)
	}

	if isNullResult(respBody.Result) {
		a.logger.Debug("Node returned null block", "blockNumber", blockNumber.Value())
		return nil, nil
	}

	var rpcBlock Block
	if err := json.Unmarshal(respBody.Result, &rpcBlock); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block result for block %s: %w", blockNumberHex, err)
	}

	return mapRPCBlockToDomain(&rpcBlock, a.logger)
}

// GetTransactionReceipt fetches the receipt of a transaction. Pending transactions yield (nil, nil).
func (a *EthereumNodeAdapter) GetTransactionReceipt(
	ctx context.Context,
	hash domain.TransactionHash,
) (*domain.Receipt, error) {
	if cached, ok := a.receiptCache.Get(hash.String()); ok {
		receipt := cached.(domain.Receipt)
		return &receipt, nil
	}

	respBody, err := a.doRPC(ctx, "eth_getTransactionReceipt", []interface{}{hash.String()})
	if err != nil {
		return nil, fmt.Errorf("RPC call failed: %w", err)
	}

	if isNullResult(respBody.Result) {
		a.logger.Debug("Receipt not available yet", "txHash", hash.String())
		return nil, nil
	}

	var rpcReceipt Receipt
	if err := json.Unmarshal(respBody.Result, &rpcReceipt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipt for tx %s: %w", hash.String(), err)
	}

	receipt, err := mapRPCReceiptToDomain(&rpcReceipt)
	if err != nil {
		return nil, err
	}
	a.receiptCache.Add(hash.String(), *receipt)
	return receipt, nil
}

// InvalidateReceipt evicts the cached receipt for hash. A receipt cached before a reorg
// names the orphaned block and would otherwise be served forever.
func (a *EthereumNodeAdapter) InvalidateReceipt(hash domain.TransactionHash) {
	a.receiptCache.Remove(hash.String())
	a.logger.Debug("Evicted cached receipt", "txHash", hash.String())
}

// doRPC performs the actual JSON-RPC call.
func (a *EthereumNodeAdapter) doRPC(
	ctx context.Context,
	method string,
	params []interface{},
) (*JSONRPCResponse, error) {
	reqBody := JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      a.requestID.Add(1),
	}

	jsonReqBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RPC request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.rpcURL, bytes.NewReader(jsonReqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer func() {
		if errClose := httpResp.Body.Close(); errClose != nil {
			a.logger.Warn("Failed to close response body", "method", method, "error", errClose)
		}
	}()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP request failed with status %s: %s", httpResp.Status, string(bodyBytes))
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(bodyBytes, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal RPC response: %w, body: %s", err, string(bodyBytes))
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("RPC error: code=%d, message='%s'", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	return &rpcResp, nil
}

func isNullResult(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
