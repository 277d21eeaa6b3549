package domain

// Transaction is a transaction as it appears in a block, before its receipt is known.
type Transaction struct {
	Hash        TransactionHash
	From        Address
	To          Address
	Value       WeiValue
	GasPrice    WeiValue
	BlockNumber BlockNumber
	BlockHash   BlockHash
	Index       uint64
	Timestamp   uint64
}

// NewTransaction is a simple constructor for the Transaction entity.
func NewTransaction(
	hash TransactionHash,
	from Address,
	to Address,
	value WeiValue,
	gasPrice WeiValue,
	blockNumber BlockNumber,
	blockHash BlockHash,
	index uint64,
	timestamp uint64,
) Transaction {
	return Transaction{
		Hash:        hash,
		From:        from,
		To:          to,
		Value:       value,
		GasPrice:    gasPrice,
		BlockNumber: blockNumber,
		BlockHash:   blockHash,
		Index:       index,
		Timestamp:   timestamp,
	}
}

// Involves reports whether the sender or the recipient is in addresses.
// Contract creations have no recipient and match on the sender only.
func (t Transaction) Involves(addresses AddressSet) bool {
	return addresses.Contains(t.From) || addresses.Contains(t.To)
}
