package application

import (
	"transfer_tracker/internal/core/domain"
	"transfer_tracker/pkg/transferparser"
)

// mapDomainToAPITransfer converts an internal domain Transfer to the public API Transfer DTO.
func mapDomainToAPITransfer(transfer domain.Transfer) transferparser.Transfer {
	tx := transfer.Transaction
	return transferparser.Transfer{
		Hash:         tx.Hash.String(),
		From:         tx.From.String(),
		To:           tx.To.String(),
		Value:        tx.Value.String(),
		Status:       transfer.Status.String(),
		Confirmation: mapDomainToAPIConfirmation(transfer.Confirmation),
	}
}

// mapDomainToAPIConfirmation converts a TransferConfirmation to the public API Confirmation DTO.
func mapDomainToAPIConfirmation(c domain.TransferConfirmation) transferparser.Confirmation {
	fee := c.Fee()
	return transferparser.Confirmation{
		BlockNumber:      c.BlockNumber(),
		TransactionIndex: c.TransactionIndex(),
		Timestamp:        c.Timestamp(),
		Fee: transferparser.Fee{
			Amount:    fee.Decimal(),
			Currency:  fee.Currency().Code(),
			BaseUnits: fee.BaseUnits().String(),
		},
	}
}
