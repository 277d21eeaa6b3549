package rpc

import (
	"encoding/json"
)

// JSONRPCRequest represents the basic structure of a JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

// Error represents the error object in a JSON-RPC response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSONRPCResponse represents the basic structure of a JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Transaction is the subset of an eth_getBlockByNumber transaction object the tracker reads.
type Transaction struct {
	BlockHash        *string `json:"blockHash"`
	BlockNumber      *string `json:"blockNumber"`
	From             string  `json:"from"`
	Gas              string  `json:"gas"`
	GasPrice         string  `json:"gasPrice"`
	Hash             string  `json:"hash"`
	Nonce            string  `json:"nonce"`
	To               *string `json:"to"`
	TransactionIndex *string `json:"transactionIndex"`
	Value            string  `json:"value"`
	Type             string  `json:"type"`
}

// Block is the subset of an eth_getBlockByNumber result the tracker reads.
type Block struct {
	Number        string        `json:"number"`
	Hash          string        `json:"hash"`
	ParentHash    string        `json:"parentHash"`
	GasUsed       string        `json:"gasUsed"`
	Timestamp     string        `json:"timestamp"`
	Transactions  []Transaction `json:"transactions"`
	BaseFeePerGas *string       `json:"baseFeePerGas,omitempty"`
}

// Receipt is the subset of an eth_getTransactionReceipt result the tracker reads.
// Status is absent on pre-Byzantium receipts; EffectiveGasPrice on pre-London ones.
type Receipt struct {
	TransactionHash   string  `json:"transactionHash"`
	TransactionIndex  string  `json:"transactionIndex"`
	BlockHash         string  `json:"blockHash"`
	BlockNumber       string  `json:"blockNumber"`
	GasUsed           string  `json:"gasUsed"`
	EffectiveGasPrice *string `json:"effectiveGasPrice,omitempty"`
	Status            *string `json:"status,omitempty"`
}
