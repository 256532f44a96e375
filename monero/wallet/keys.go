package wallet

import (
	"context"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/address"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
)

type IntegratedAddress struct {
	IntegratedAddress string `json:"integrated_address"`
	StandardAddress   string `json:"standard_address"`
	PaymentID         string `json:"payment_id"`
	IsSubaddress      bool   `json:"is_subaddress,omitempty"`
}

func (w *Wallet) GetHeight(ctx context.Context) (uint64, error) {
	var result struct {
		Height uint64 `json:"height"`
	}
	if err := w.call(ctx, "get_height", nil, &result); err != nil {
		return 0, err
	}
	return result.Height, nil
}

func (w *Wallet) queryKey(ctx context.Context, keyType string) (string, error) {
	var result struct {
		Key string `json:"key"`
	}
	if err := w.call(ctx, "query_key", map[string]any{"key_type": keyType}, &result); err != nil {
		return "", err
	}
	return result.Key, nil
}

func (w *Wallet) GetMnemonicSeed(ctx context.Context) (string, error) {
	return w.queryKey(ctx, "mnemonic")
}

func (w *Wallet) GetViewKey(ctx context.Context) (types.Hash, error) {
	key, err := w.queryKey(ctx, "view_key")
	if err != nil {
		return types.ZeroHash, err
	}
	h, err := types.HashFromString(key)
	if err != nil {
		return types.ZeroHash, &ShapeError{Field: "key", Value: key, Err: err}
	}
	return h, nil
}

// MakeIntegratedAddress builds an integrated address from the primary address, or the given standard address.
// An empty payment id lets the wallet pick a random one.
func (w *Wallet) MakeIntegratedAddress(ctx context.Context, standardAddress, paymentID string) (*IntegratedAddress, error) {
	if paymentID != "" && len(paymentID) != monero.PaymentIDShortSize*2 {
		return nil, invalidConfig("integrated payment id %q must be 16 hex characters", paymentID)
	}
	if err := validatePaymentID(paymentID); err != nil {
		return nil, err
	}
	params := map[string]any{}
	if standardAddress != "" {
		if _, err := w.checkAddresses(standardAddress); err != nil {
			return nil, err
		}
		params["standard_address"] = standardAddress
	}
	if paymentID != "" {
		params["payment_id"] = paymentID
	}

	var result IntegratedAddress
	if err := w.call(ctx, "make_integrated_address", params, &result); err != nil {
		return nil, err
	}
	if result.StandardAddress == "" {
		result.StandardAddress = standardAddress
	}
	return &result, nil
}

func (w *Wallet) SplitIntegratedAddress(ctx context.Context, integratedAddress string) (*IntegratedAddress, error) {
	var result IntegratedAddress
	if err := w.call(ctx, "split_integrated_address", map[string]any{"integrated_address": integratedAddress}, &result); err != nil {
		return nil, err
	}
	result.IntegratedAddress = integratedAddress
	return &result, nil
}

// DecodeAddress parses an address locally without contacting the wallet
func (w *Wallet) DecodeAddress(addr string) (*address.Address, error) {
	return w.addresses.Decode(addr)
}
