package wallet

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	"github.com/dolthub/swiss"
)

const (
	MethodGetTransfers      = "get_transfers"
	MethodIncomingTransfers = "incoming_transfers"
	MethodGetBulkPayments   = "get_bulk_payments"
)

type getTransfersParams struct {
	In             bool     `json:"in"`
	Out            bool     `json:"out"`
	Pending        bool     `json:"pending"`
	Failed         bool     `json:"failed"`
	Pool           bool     `json:"pool"`
	FilterByHeight bool     `json:"filter_by_height"`
	MinHeight      *uint64  `json:"min_height,omitempty"`
	MaxHeight      *uint64  `json:"max_height,omitempty"`
	AccountIndex   *uint32  `json:"account_index,omitempty"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
}

type incomingTransfersParams struct {
	TransferType   string   `json:"transfer_type"`
	AccountIndex   *uint32  `json:"account_index,omitempty"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
}

type incomingTransfersResult struct {
	Transfers []Record `json:"transfers"`
}

type getBulkPaymentsParams struct {
	PaymentIDs []string `json:"payment_ids"`
}

type getBulkPaymentsResult struct {
	Payments []Record `json:"payments"`
}

type txKey struct {
	Type TxType
	ID   types.Hash
}

// txSet is the working set of one reconciliation pass, one transaction per (type, id)
type txSet struct {
	policy MergePolicy
	index  *swiss.Map[txKey, *Transaction]
	order  []*Transaction
}

func newTxSet(policy MergePolicy) *txSet {
	return &txSet{
		policy: policy,
		index:  swiss.NewMap[txKey, *Transaction](64),
	}
}

func (s *txSet) add(tx *Transaction) error {
	if tx.Type == TxUnknown {
		return fmt.Errorf("%w: id %s", ErrMissingType, tx.ID)
	}
	if tx.ID.IsZero() {
		return fmt.Errorf("%w: type %s", ErrMissingID, tx.Type)
	}
	key := txKey{Type: tx.Type, ID: tx.ID}
	if existing, ok := s.index.Get(key); ok {
		return existing.Merge(tx, s.policy)
	}
	s.index.Put(key, tx)
	s.order = append(s.order, tx)
	return nil
}

func (s *txSet) len() int {
	return s.index.Count()
}

// GetTransactions reconciles get_transfers, incoming_transfers and get_bulk_payments into one set of
// transactions, one per (type, id), matching filter. A nil filter selects everything.
//
// When incoming transactions are requested and the wallet has no incoming outputs at all, the result
// is empty without issuing further calls.
func (w *Wallet) GetTransactions(ctx context.Context, filter *TxFilter) ([]*Transaction, error) {
	if filter == nil {
		filter = NewTxFilter()
	}

	set := newTxSet(w.policy)

	params := &getTransfersParams{
		In:             filter.Incoming,
		Out:            filter.Outgoing,
		Pending:        filter.Pending,
		Failed:         filter.Failed,
		Pool:           filter.Mempool,
		FilterByHeight: filter.filterByHeight(),
		MinHeight:      filter.MinHeight,
		MaxHeight:      filter.MaxHeight,
		AccountIndex:   filter.AccountIndex,
		SubaddrIndices: filter.SubaddressIndices,
	}

	var buckets map[string][]Record
	if err := w.call(ctx, MethodGetTransfers, params, &buckets); err != nil {
		return nil, err
	}

	for _, bucket := range slices.Sorted(maps.Keys(buckets)) {
		for _, record := range buckets[bucket] {
			tx, err := InterpretTransaction(record)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", MethodGetTransfers, bucket, err)
			}
			if v, ok := record["amount"]; ok && v != nil {
				amount, err := valueUint64("amount", v)
				if err != nil {
					return nil, fmt.Errorf("%s %s: %w", MethodGetTransfers, bucket, err)
				}
				tx.Amount = &amount
			}
			if err = set.add(tx); err != nil {
				return nil, fmt.Errorf("%s %s: %w", MethodGetTransfers, bucket, err)
			}
		}
	}

	if filter.Incoming {
		var incoming incomingTransfersResult
		if err := w.call(ctx, MethodIncomingTransfers, &incomingTransfersParams{
			TransferType:   "all",
			AccountIndex:   filter.AccountIndex,
			SubaddrIndices: filter.SubaddressIndices,
		}, &incoming); err != nil {
			return nil, err
		}

		if len(incoming.Transfers) == 0 {
			utils.Debugf(logPrefix, "no incoming outputs, skipping remaining queries")
			return []*Transaction{}, nil
		}

		for _, record := range incoming.Transfers {
			tx, err := interpretIncomingOutput(record)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", MethodIncomingTransfers, err)
			}
			if err = set.add(tx); err != nil {
				return nil, fmt.Errorf("%s: %w", MethodIncomingTransfers, err)
			}
		}

		if len(filter.PaymentIDs) > 0 {
			var payments getBulkPaymentsResult
			if err := w.call(ctx, MethodGetBulkPayments, &getBulkPaymentsParams{
				PaymentIDs: wirePaymentIDs(filter.PaymentIDs),
			}, &payments); err != nil {
				return nil, err
			}

			for _, record := range payments.Payments {
				tx, err := InterpretTransaction(record)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", MethodGetBulkPayments, err)
				}
				// payment amounts repeat get_transfers amounts, not attached
				tx.Type = TxIncoming
				if err = set.add(tx); err != nil {
					return nil, fmt.Errorf("%s: %w", MethodGetBulkPayments, err)
				}
			}
		}
	}

	result := make([]*Transaction, 0, set.len())
	for _, tx := range set.order {
		if filter.Match(tx) {
			result = append(result, tx)
		}
	}

	utils.Debugf(logPrefix, "reconciled %d transactions, %d matched", set.len(), len(result))

	return result, nil
}

// GetTransaction returns every typed view of the transaction with the given id, e.g. both the outgoing and the
// incoming side of a transfer to self
func (w *Wallet) GetTransaction(ctx context.Context, id types.Hash) ([]*Transaction, error) {
	filter := NewTxFilter()
	filter.TxIDs = []types.Hash{id}
	txs, err := w.GetTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return txs, nil
}

// interpretIncomingOutput turns an incoming_transfers row into an incoming transaction holding a single output.
// The row key image identifies the output, not the transaction.
func interpretIncomingOutput(record Record) (*Transaction, error) {
	tx, err := InterpretTransaction(record)
	if err != nil {
		return nil, err
	}
	tx.Type = TxIncoming

	var output Output
	if v, ok := record["amount"]; ok && v != nil {
		if output.Amount, err = valueUint64("amount", v); err != nil {
			return nil, err
		}
	}
	if v, ok := record["spent"]; ok && v != nil {
		if output.Spent, err = valueBool("spent", v); err != nil {
			return nil, err
		}
	}
	if v, ok := record["global_index"]; ok && v != nil {
		if output.GlobalIndex, err = valueUint64("global_index", v); err != nil {
			return nil, err
		}
	}
	if v, ok := record["key_image"]; ok && v != nil {
		s, err := valueString("key_image", v)
		if err != nil {
			return nil, err
		}
		// view-only wallets report an empty key image
		if s != "" {
			if output.KeyImage, err = valueHash("key_image", v); err != nil {
				return nil, err
			}
		}
		tx.Key = nil
	}
	tx.Outputs = []Output{output}
	return tx, nil
}

// wirePaymentIDs deduplicates ids, replacing the empty id with the default sentinel
func wirePaymentIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			id = monero.DefaultPaymentID
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
