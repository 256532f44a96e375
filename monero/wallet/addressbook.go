package wallet

import (
	"context"
)

type AddressBookEntry struct {
	Index       uint64 `json:"index"`
	Address     string `json:"address"`
	Description string `json:"description"`
	PaymentID   string `json:"payment_id,omitempty"`
}

func (w *Wallet) GetAddressBook(ctx context.Context, indices ...uint64) ([]AddressBookEntry, error) {
	params := map[string]any{}
	if len(indices) > 0 {
		params["entries"] = indices
	}
	var result struct {
		Entries []AddressBookEntry `json:"entries"`
	}
	if err := w.call(ctx, "get_address_book", params, &result); err != nil {
		return nil, err
	}
	if result.Entries == nil {
		return []AddressBookEntry{}, nil
	}
	return result.Entries, nil
}

// AddAddressBookEntry stores an entry and returns its index
func (w *Wallet) AddAddressBookEntry(ctx context.Context, addr, paymentID, description string) (uint64, error) {
	if err := validatePaymentID(paymentID); err != nil {
		return 0, err
	}
	if _, err := w.checkAddresses(addr); err != nil {
		return 0, err
	}
	params := map[string]any{"address": addr, "description": description}
	if paymentID != "" {
		params["payment_id"] = paymentID
	}
	var result struct {
		Index uint64 `json:"index"`
	}
	if err := w.call(ctx, "add_address_book", params, &result); err != nil {
		return 0, err
	}
	return result.Index, nil
}

func (w *Wallet) DeleteAddressBookEntry(ctx context.Context, index uint64) error {
	return w.call(ctx, "delete_address_book", map[string]any{"index": index}, nil)
}
