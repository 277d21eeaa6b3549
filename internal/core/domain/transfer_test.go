package domain_test

import (
	"fmt"
	"strings"
	"testing"

	"transfer_tracker/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T, hash, from, to string, block int64, index uint64) domain.Transaction {
	t.Helper()
	txHash, err := domain.NewTransactionHash(hash)
	require.NoError(t, err)
	fromAddr, err := domain.NewAddress(from)
	require.NoError(t, err)
	var toAddr domain.Address
	if to != "" {
		toAddr, err = domain.NewAddress(to)
		require.NoError(t, err)
	}
	value, err := domain.NewWeiValue("0xde0b6b3a7640000")
	require.NoError(t, err)
	gasPrice, err := domain.NewWeiValue("0x77359400") // 2 gwei
	require.NoError(t, err)
	blockNum, err := domain.NewBlockNumber(block)
	require.NoError(t, err)
	return domain.NewTransaction(txHash, fromAddr, toAddr, value, gasPrice, blockNum,
		mustBlockHash(t, fmt.Sprintf("0x%064x", block)), index, 1_700_000_000)
}

func TestBuildTransfer(t *testing.T) {
	tx := newTestTransaction(t,
		"0x1111111111111111111111111111111111111111111111111111111111111111",
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		100, 4)
	effective, err := domain.NewWeiValue("0x3b9aca00")
	require.NoError(t, err)

	tests := []struct {
		name        string
		receipt     domain.Receipt
		wantStatus  domain.TransferStatus
		wantFee     string
		wantErrType error
	}{
		{
			name: "Successful with effective gas price",
			receipt: domain.Receipt{
				TransactionHash:   tx.Hash,
				BlockNumber:       tx.BlockNumber,
				BlockHash:         tx.BlockHash,
				TransactionIndex:  4,
				GasUsed:           21000,
				EffectiveGasPrice: effective,
				Succeeded:         true,
			},
			wantStatus: domain.TransferStatusIncluded,
			wantFee:    "0.000021",
		},
		{
			name: "Failed falls back to transaction gas price",
			receipt: domain.Receipt{
				TransactionHash:  tx.Hash,
				BlockNumber:      tx.BlockNumber,
				BlockHash:        tx.BlockHash,
				TransactionIndex: 4,
				GasUsed:          50000,
				Succeeded:        false,
			},
			wantStatus: domain.TransferStatusFailed,
			wantFee:    "0.0001",
		},
		{
			name: "Receipt from an orphaned sibling at the same height",
			receipt: domain.Receipt{
				TransactionHash:  tx.Hash,
				BlockNumber:      tx.BlockNumber,
				BlockHash:        mustBlockHash(t, "0x"+strings.Repeat("22", 32)),
				TransactionIndex: 4,
				GasUsed:          21000,
				Succeeded:        true,
			},
			wantErrType: domain.ErrReceiptMismatch,
		},
		{
			name: "Receipt index disagrees with the block",
			receipt: domain.Receipt{
				TransactionHash:  tx.Hash,
				BlockNumber:      tx.BlockNumber,
				BlockHash:        tx.BlockHash,
				TransactionIndex: 5,
				GasUsed:          21000,
				Succeeded:        true,
			},
			wantErrType: domain.ErrReceiptMismatch,
		},
		{
			name: "Receipt from another block",
			receipt: domain.Receipt{
				TransactionHash: tx.Hash,
				BlockNumber:     mustBlockNumber(t, 101),
				GasUsed:         21000,
				Succeeded:       true,
			},
			wantErrType: domain.ErrReceiptMismatch,
		},
		{
			name: "Receipt for another transaction",
			receipt: domain.Receipt{
				TransactionHash: mustTxHash(t, "0x2222222222222222222222222222222222222222222222222222222222222222"),
				BlockNumber:     tx.BlockNumber,
				GasUsed:         21000,
				Succeeded:       true,
			},
			wantErrType: domain.ErrReceiptMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.BuildTransfer(tx, tt.receipt)
			if tt.wantErrType != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, uint64(100), got.Confirmation.BlockNumber())
			assert.Equal(t, uint64(4), got.Confirmation.TransactionIndex())
			assert.Equal(t, int64(1_700_000_000), got.Confirmation.Timestamp())
			assert.Equal(t, tt.wantFee, got.Confirmation.Fee().Decimal())
			assert.Equal(t, "ETH", got.Confirmation.Fee().Currency().Code())
			assert.Equal(t, tx, got.Transaction)
		})
	}
}

func TestParseTransferStatus(t *testing.T) {
	s, err := domain.ParseTransferStatus("failed")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusFailed, s)

	_, err = domain.ParseTransferStatus("pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransferStatus)
}

func TestBlock_Involving(t *testing.T) {
	monitored, err := domain.NewAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)

	outbound := newTestTransaction(t,
		"0x1111111111111111111111111111111111111111111111111111111111111111",
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		7, 0)
	unrelated := newTestTransaction(t,
		"0x2222222222222222222222222222222222222222222222222222222222222222",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"0xcccccccccccccccccccccccccccccccccccccccc",
		7, 1)
	creation := newTestTransaction(t,
		"0x3333333333333333333333333333333333333333333333333333333333333333",
		"0xcccccccccccccccccccccccccccccccccccccccc",
		"",
		7, 2)
	inbound := newTestTransaction(t,
		"0x4444444444444444444444444444444444444444444444444444444444444444",
		"0xcccccccccccccccccccccccccccccccccccccccc",
		"0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		7, 3)

	hash, err := domain.NewBlockHash("0x" + strings.Repeat("ab", 32))
	require.NoError(t, err)
	block := domain.NewBlock(outbound.BlockNumber, hash, 1_700_000_000,
		[]domain.Transaction{outbound, unrelated, creation, inbound})

	got := block.Involving(domain.NewAddressSet(monitored))
	assert.Equal(t, []domain.Transaction{outbound, inbound}, got)
	assert.Empty(t, block.Involving(nil))
	set := domain.NewAddressSet(monitored)
	assert.True(t, inbound.Involves(set))
	assert.False(t, creation.Involves(set))
	assert.False(t, outbound.Involves(nil))
}

func mustBlockNumber(t *testing.T, n int64) domain.BlockNumber {
	t.Helper()
	bn, err := domain.NewBlockNumber(n)
	require.NoError(t, err)
	return bn
}

func mustBlockHash(t *testing.T, s string) domain.BlockHash {
	t.Helper()
	h, err := domain.NewBlockHash(s)
	require.NoError(t, err)
	return h
}

func mustTxHash(t *testing.T, s string) domain.TransactionHash {
	t.Helper()
	h, err := domain.NewTransactionHash(s)
	require.NoError(t, err)
	return h
}
