package domain

import (
	"math/big"
)

// Receipt holds the execution result of an included transaction.
type Receipt struct {
	TransactionHash  TransactionHash
	BlockNumber      BlockNumber
	BlockHash        BlockHash
	TransactionIndex uint64
	GasUsed          uint64
	// EffectiveGasPrice is zero when the node predates London and omits it.
	EffectiveGasPrice WeiValue
	Succeeded         bool
}

// ComputeFee returns gasUsed * gasPrice as an ETH amount.
func ComputeFee(gasUsed uint64, gasPrice WeiValue) Amount {
	fee := new(big.Int).SetUint64(gasUsed)
	fee.Mul(fee, gasPrice.BigInt())
	return Amount{currency: CurrencyETH, value: fee}
}
