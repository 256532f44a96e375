package wallet

import (
	"context"
	"fmt"
	"slices"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

const (
	MethodTransfer      = "transfer"
	MethodTransferSplit = "transfer_split"
	MethodSweepAll      = "sweep_all"
	MethodSweepDust     = "sweep_dust"
)

// parallelResult holds the per-transaction lists returned by transfer_split, sweep_all and sweep_dust
type parallelResult struct {
	TxHashList     []types.Hash  `json:"tx_hash_list"`
	TxKeyList      []types.Bytes `json:"tx_key_list"`
	TxBlobList     []types.Bytes `json:"tx_blob_list"`
	TxMetadataList []types.Bytes `json:"tx_metadata_list"`
	FeeList        []uint64      `json:"fee_list"`
	AmountList     []uint64      `json:"amount_list"`
	MultisigTxSet  types.Bytes   `json:"multisig_txset"`
	UnsignedTxSet  types.Bytes   `json:"unsigned_txset"`
}

// transactions builds one record per index. With strict set every list must match tx_hash_list in length,
// otherwise lists the daemon omitted are allowed.
func (r *parallelResult) transactions(strict bool) ([]*Transaction, error) {
	n := len(r.TxHashList)

	lengths := []struct {
		name string
		len  int
	}{
		{"tx_key_list", len(r.TxKeyList)},
		{"tx_blob_list", len(r.TxBlobList)},
		{"tx_metadata_list", len(r.TxMetadataList)},
		{"fee_list", len(r.FeeList)},
		{"amount_list", len(r.AmountList)},
	}
	for _, l := range lengths {
		if l.len == n || (!strict && l.len == 0) {
			continue
		}
		return nil, inconsistent("%s has %d entries, tx_hash_list has %d", l.name, l.len, n)
	}

	txs := make([]*Transaction, 0, n)
	for i, id := range r.TxHashList {
		if id.IsZero() {
			return nil, fmt.Errorf("%w: index %d", ErrMissingID, i)
		}
		tx := &Transaction{ID: id}
		if i < len(r.TxKeyList) {
			tx.Key = r.TxKeyList[i]
		}
		if i < len(r.TxBlobList) {
			tx.Blob = r.TxBlobList[i]
		}
		if i < len(r.TxMetadataList) {
			tx.Metadata = r.TxMetadataList[i]
		}
		if i < len(r.FeeList) {
			tx.Fee = &r.FeeList[i]
		}
		if i < len(r.AmountList) {
			tx.Amount = &r.AmountList[i]
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func sendType(doNotRelay bool) TxType {
	if doNotRelay {
		return TxPending
	}
	return TxOutgoing
}

// Send creates a single transaction paying every destination
func (w *Wallet) Send(ctx context.Context, cfg *SendConfig) (*Transaction, error) {
	params, err := w.transferParams(cfg)
	if err != nil {
		return nil, err
	}
	params.GetTxKey = true

	var result Record
	if err = w.call(ctx, MethodTransfer, params, &result); err != nil {
		return nil, err
	}

	tx, err := InterpretTransaction(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodTransfer, err)
	}
	if tx.ID.IsZero() {
		return nil, fmt.Errorf("%s: %w", MethodTransfer, ErrMissingID)
	}
	if v, ok := result["amount"]; ok && v != nil {
		amount, err := valueUint64("amount", v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", MethodTransfer, err)
		}
		tx.Amount = &amount
	}
	tx.Type = sendType(cfg.DoNotRelay)
	tx.Destinations = slices.Clone(cfg.Destinations)
	tx.Mixin = mixinFromRingSize(cfg.RingSize)
	unlockTime := cfg.UnlockTime
	tx.UnlockTime = &unlockTime

	utils.Logf(logPrefix, "sent transaction %s to %d destinations", tx.ID, len(tx.Destinations))

	return tx, nil
}

// SendSplit lets the daemon split the payment into as many transactions as needed
func (w *Wallet) SendSplit(ctx context.Context, cfg *SendConfig) ([]*Transaction, error) {
	params, err := w.transferParams(cfg)
	if err != nil {
		return nil, err
	}
	params.GetTxKeys = true
	params.NewAlgorithm = true

	var result parallelResult
	if err = w.call(ctx, MethodTransferSplit, params, &result); err != nil {
		return nil, err
	}

	txs, err := result.transactions(false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodTransferSplit, err)
	}
	for _, tx := range txs {
		tx.Type = sendType(cfg.DoNotRelay)
		tx.Mixin = mixinFromRingSize(cfg.RingSize)
		unlockTime := cfg.UnlockTime
		tx.UnlockTime = &unlockTime
	}

	utils.Logf(logPrefix, "sent %d split transactions", len(txs))

	return txs, nil
}

// SweepAll sends every unlocked output in scope to one address. Relayed transactions are fetched back through
// GetTransactions and merged with the sweep data, so the result carries both the keys and blobs of the sweep and
// the wallet's view of each transaction.
func (w *Wallet) SweepAll(ctx context.Context, cfg *SweepConfig) ([]*Transaction, error) {
	params, err := w.sweepAllParams(cfg)
	if err != nil {
		return nil, err
	}

	var result parallelResult
	if err = w.call(ctx, MethodSweepAll, params, &result); err != nil {
		return nil, err
	}

	swept, err := result.transactions(true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodSweepAll, err)
	}

	if len(swept) == 0 {
		return []*Transaction{}, nil
	}

	if cfg.DoNotRelay {
		// not relayed, the wallet history does not know about these yet
		for _, tx := range swept {
			tx.Type = TxPending
		}
		return swept, nil
	}

	return w.mergeFetched(ctx, swept)
}

// mergeFetched re-fetches the given transactions by id and merges the given data into the fetched records
func (w *Wallet) mergeFetched(ctx context.Context, txs []*Transaction) ([]*Transaction, error) {
	ids := make([]types.Hash, 0, len(txs))
	byID := make(map[types.Hash]*Transaction, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
		byID[tx.ID] = tx
	}

	filter := NewTxFilter()
	filter.Incoming = false
	filter.TxIDs = ids

	fetched, err := w.GetTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(fetched) != len(byID) {
		return nil, inconsistent("fetched %d transactions, expected %d", len(fetched), len(byID))
	}

	for _, tx := range fetched {
		source, ok := byID[tx.ID]
		if !ok {
			return nil, inconsistent("fetched unexpected transaction %s", tx.ID)
		}
		if err = tx.Merge(source, w.policy); err != nil {
			return nil, err
		}
	}

	return fetched, nil
}

// SweepDust sends all unmixable outputs back to the wallet. An empty result means nothing was swept.
func (w *Wallet) SweepDust(ctx context.Context) ([]*Transaction, error) {
	var result parallelResult
	if err := w.call(ctx, MethodSweepDust, &struct {
		GetTxKeys     bool `json:"get_tx_keys"`
		GetTxHex      bool `json:"get_tx_hex"`
		GetTxMetadata bool `json:"get_tx_metadata"`
	}{true, true, true}, &result); err != nil {
		return nil, err
	}

	txs, err := result.transactions(false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodSweepDust, err)
	}
	for _, tx := range txs {
		tx.Type = TxOutgoing
	}
	return txs, nil
}
