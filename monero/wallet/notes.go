package wallet

import (
	"context"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
)

func (w *Wallet) SetTxNotes(ctx context.Context, ids []types.Hash, notes []string) error {
	if len(ids) != len(notes) {
		return invalidConfig("%d transaction ids but %d notes", len(ids), len(notes))
	}
	if len(ids) == 0 {
		return nil
	}
	return w.call(ctx, "set_tx_notes", map[string]any{"txids": ids, "notes": notes}, nil)
}

// GetTxNotes returns the notes of the given transactions in the same order, empty when unset
func (w *Wallet) GetTxNotes(ctx context.Context, ids []types.Hash) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	var result struct {
		Notes []string `json:"notes"`
	}
	if err := w.call(ctx, "get_tx_notes", map[string]any{"txids": ids}, &result); err != nil {
		return nil, err
	}
	if len(result.Notes) != len(ids) {
		return nil, inconsistent("requested notes of %d transactions, got %d", len(ids), len(result.Notes))
	}
	return result.Notes, nil
}
