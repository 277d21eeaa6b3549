package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"

	"transfer_tracker/internal/core/domain"
	"transfer_tracker/internal/core/domain/repository"
)

// TransferStore is a PostgreSQL implementation of repository.TransferRepository.
// Wei amounts are stored as NUMERIC(78,0) and exchanged with the driver as decimal text.
type TransferStore struct {
	pool *Pool
}

var _ repository.TransferRepository = (*TransferStore)(nil)

// NewTransferStore creates a new PostgreSQL transfer store.
func NewTransferStore(pool *Pool) *TransferStore {
	return &TransferStore{pool: pool}
}

const transferColumns = `
	tx_hash, from_address, to_address, value_wei::text, gas_price_wei::text,
	block_number, block_hash, transaction_index, block_timestamp, status,
	fee_base_units::text, fee_currency`

// Store upserts a transfer by hash.
func (s *TransferStore) Store(ctx context.Context, transfer domain.Transfer) error {
	tx := transfer.Transaction
	conf := transfer.Confirmation

	var to *string
	if !tx.To.IsZero() {
		v := tx.To.String()
		to = &v
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO transfers (
			tx_hash, from_address, to_address, value_wei, gas_price_wei,
			block_number, block_hash, transaction_index, block_timestamp, status,
			fee_base_units, fee_currency
		) VALUES ($1, $2, $3, $4::text::numeric, $5::text::numeric, $6, $7, $8, $9, $10, $11::text::numeric, $12)
		ON CONFLICT (tx_hash) DO UPDATE
		SET from_address = EXCLUDED.from_address,
		    to_address = EXCLUDED.to_address,
		    value_wei = EXCLUDED.value_wei,
		    gas_price_wei = EXCLUDED.gas_price_wei,
		    block_number = EXCLUDED.block_number,
		    block_hash = EXCLUDED.block_hash,
		    transaction_index = EXCLUDED.transaction_index,
		    block_timestamp = EXCLUDED.block_timestamp,
		    status = EXCLUDED.status,
		    fee_base_units = EXCLUDED.fee_base_units,
		    fee_currency = EXCLUDED.fee_currency
	`,
		tx.Hash.String(),
		tx.From.String(),
		to,
		tx.Value.Decimal(),
		tx.GasPrice.Decimal(),
		int64(conf.BlockNumber()),
		tx.BlockHash.String(),
		int64(conf.TransactionIndex()),
		conf.Timestamp(),
		transfer.Status.String(),
		conf.Fee().BaseUnits().String(),
		conf.Fee().Currency().Code(),
	)
	if err != nil {
		return fmt.Errorf("upsert transfer %s: %w", tx.Hash.String(), err)
	}
	return nil
}

// FindByAddress returns inbound and outbound transfers ordered by block and index.
func (s *TransferStore) FindByAddress(ctx context.Context, address domain.Address) ([]domain.Transfer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE from_address = $1 OR to_address = $1
		ORDER BY block_number, transaction_index
	`, address.String())
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	transfers := make([]domain.Transfer, 0)
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	return transfers, rows.Err()
}

// FindByHash returns a single transfer or domain.ErrTransferNotFound.
func (s *TransferStore) FindByHash(ctx context.Context, hash domain.TransactionHash) (domain.Transfer, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+transferColumns+`
		FROM transfers
		WHERE tx_hash = $1
	`, hash.String())

	transfer, err := scanTransfer(row)
	if err != nil {
		if isNotFoundError(err) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}
		return domain.Transfer{}, err
	}
	return transfer, nil
}

func scanTransfer(row pgx.Row) (domain.Transfer, error) {
	var (
		hashStr, fromStr, valueStr, gasPriceStr string
		blockHashStr                            string
		toStr                                   *string
		blockNumber, txIndex, timestamp         int64
		statusStr, feeStr, feeCurrency          string
	)
	if err := row.Scan(
		&hashStr, &fromStr, &toStr, &valueStr, &gasPriceStr,
		&blockNumber, &blockHashStr, &txIndex, &timestamp, &statusStr,
		&feeStr, &feeCurrency,
	); err != nil {
		return domain.Transfer{}, err
	}

	hash, err := domain.NewTransactionHash(hashStr)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer hash: %w", err)
	}
	from, err := domain.NewAddress(fromStr)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
	}
	var to domain.Address
	if toStr != nil {
		if to, err = domain.NewAddress(*toStr); err != nil {
			return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
		}
	}
	value, err := domain.NewWeiValue(valueStr)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s value: %w", hashStr, err)
	}
	gasPrice, err := domain.NewWeiValue(gasPriceStr)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s gas price: %w", hashStr, err)
	}
	num, err := domain.NewBlockNumber(blockNumber)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
	}
	var blockHash domain.BlockHash
	if blockHashStr != "" {
		if blockHash, err = domain.NewBlockHash(blockHashStr); err != nil {
			return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
		}
	}
	status, err := domain.ParseTransferStatus(statusStr)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
	}

	currency, ok := domain.LookupCurrency(feeCurrency)
	if !ok {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w: %s", hashStr, domain.ErrInvalidCurrency, feeCurrency)
	}
	feeUnits, ok := new(big.Int).SetString(feeStr, 10)
	if !ok {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w: fee '%s'", hashStr, domain.ErrInvalidAmount, feeStr)
	}
	fee, err := domain.NewAmount(currency, feeUnits)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
	}

	confirmation, err := domain.NewTransferConfirmation(uint64(blockNumber), uint64(txIndex), timestamp, fee)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("stored transfer %s: %w", hashStr, err)
	}

	tx := domain.NewTransaction(hash, from, to, value, gasPrice, num, blockHash, uint64(txIndex), uint64(timestamp))
	return domain.NewTransfer(tx, status, confirmation), nil
}
