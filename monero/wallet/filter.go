package wallet

import (
	"slices"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
)

// TxFilter selects transactions for GetTransactions. The zero value selects nothing, use NewTxFilter.
type TxFilter struct {
	Incoming bool
	Outgoing bool
	Pending  bool
	Failed   bool
	Mempool  bool

	AccountIndex      *uint32
	SubaddressIndices []uint32

	// MinHeight and MaxHeight are inclusive
	MinHeight *uint64
	MaxHeight *uint64

	TxIDs []types.Hash
	// PaymentIDs matches transactions by payment id, the empty string stands for no payment id
	PaymentIDs []string
}

// NewTxFilter includes every transaction type
func NewTxFilter() *TxFilter {
	return &TxFilter{
		Incoming: true,
		Outgoing: true,
		Pending:  true,
		Failed:   true,
		Mempool:  true,
	}
}

func (f *TxFilter) filterByHeight() bool {
	return f.MinHeight != nil || f.MaxHeight != nil
}

func (f *TxFilter) matchPaymentID(tx *Transaction) bool {
	var id string
	if tx.PaymentID != nil && !isNullPaymentID(*tx.PaymentID) {
		id = *tx.PaymentID
	}
	return slices.ContainsFunc(f.PaymentIDs, func(p string) bool {
		if isNullPaymentID(p) {
			return id == ""
		}
		return p == id
	})
}

// Match applies the post-merge predicates: payment ids, transaction ids and the height range
func (f *TxFilter) Match(tx *Transaction) bool {
	if len(f.PaymentIDs) > 0 && !f.matchPaymentID(tx) {
		return false
	}
	if len(f.TxIDs) > 0 && !slices.Contains(f.TxIDs, tx.ID) {
		return false
	}
	if f.MinHeight != nil && (tx.Height == nil || *tx.Height < *f.MinHeight) {
		return false
	}
	if f.MaxHeight != nil && (tx.Height == nil || *tx.Height > *f.MaxHeight) {
		return false
	}
	return true
}
