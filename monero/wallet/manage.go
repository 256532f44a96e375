package wallet

import (
	"context"
)

// URI is a monero: payment request
type URI struct {
	Address       string `json:"address"`
	Amount        uint64 `json:"amount,omitempty"`
	PaymentID     string `json:"payment_id,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
	TxDescription string `json:"tx_description,omitempty"`
}

type MiningConfig struct {
	Threads          uint32 `json:"threads_count"`
	BackgroundMining bool   `json:"do_background_mining"`
	IgnoreBattery    bool   `json:"ignore_battery"`
}

func (w *Wallet) GetLanguages(ctx context.Context) ([]string, error) {
	var result struct {
		Languages []string `json:"languages"`
	}
	if err := w.call(ctx, "get_languages", nil, &result); err != nil {
		return nil, err
	}
	return result.Languages, nil
}

func (w *Wallet) CreateWallet(ctx context.Context, filename, password, language string) error {
	switch {
	case filename == "":
		return invalidConfig("wallet filename is required")
	case password == "":
		return invalidConfig("wallet password is required")
	case language == "":
		return invalidConfig("wallet language is required")
	}
	return w.call(ctx, "create_wallet", map[string]any{
		"filename": filename,
		"password": password,
		"language": language,
	}, nil)
}

func (w *Wallet) OpenWallet(ctx context.Context, filename, password string) error {
	switch {
	case filename == "":
		return invalidConfig("wallet filename is required")
	case password == "":
		return invalidConfig("wallet password is required")
	}
	return w.call(ctx, "open_wallet", map[string]any{
		"filename": filename,
		"password": password,
	}, nil)
}

// CloseWallet stores and closes the currently open wallet
func (w *Wallet) CloseWallet(ctx context.Context) error {
	return w.call(ctx, "close_wallet", nil, nil)
}

func (w *Wallet) Sign(ctx context.Context, data string) (string, error) {
	var result struct {
		Signature string `json:"signature"`
	}
	if err := w.call(ctx, "sign", map[string]any{"data": data}, &result); err != nil {
		return "", err
	}
	return result.Signature, nil
}

func (w *Wallet) Verify(ctx context.Context, data, addr, signature string) (bool, error) {
	var result struct {
		Good bool `json:"good"`
	}
	if err := w.call(ctx, "verify", map[string]any{
		"data":      data,
		"address":   addr,
		"signature": signature,
	}, &result); err != nil {
		return false, err
	}
	return result.Good, nil
}

func (w *Wallet) MakeURI(ctx context.Context, uri *URI) (string, error) {
	if uri == nil || uri.Address == "" {
		return "", invalidConfig("uri address is required")
	}
	if err := validatePaymentID(uri.PaymentID); err != nil {
		return "", err
	}
	var result struct {
		URI string `json:"uri"`
	}
	if err := w.call(ctx, "make_uri", uri, &result); err != nil {
		return "", err
	}
	return result.URI, nil
}

func (w *Wallet) ParseURI(ctx context.Context, uri string) (*URI, error) {
	var result struct {
		URI URI `json:"uri"`
	}
	if err := w.call(ctx, "parse_uri", map[string]any{"uri": uri}, &result); err != nil {
		return nil, err
	}
	return &result.URI, nil
}

// Save writes the wallet file to disk
func (w *Wallet) Save(ctx context.Context) error {
	return w.call(ctx, "store", nil, nil)
}

func (w *Wallet) RescanBlockchain(ctx context.Context) error {
	return w.call(ctx, "rescan_blockchain", nil, nil)
}

func (w *Wallet) RescanSpent(ctx context.Context) error {
	return w.call(ctx, "rescan_spent", nil, nil)
}

// StopWallet stores the wallet and shuts the wallet RPC server down
func (w *Wallet) StopWallet(ctx context.Context) error {
	return w.call(ctx, "stop_wallet", nil, nil)
}

func (w *Wallet) StartMining(ctx context.Context, cfg MiningConfig) error {
	if cfg.Threads == 0 {
		return invalidConfig("mining needs at least one thread")
	}
	return w.call(ctx, "start_mining", cfg, nil)
}

func (w *Wallet) StopMining(ctx context.Context) error {
	return w.call(ctx, "stop_mining", nil, nil)
}
