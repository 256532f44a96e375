package wallet

import (
	"context"
	"fmt"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/address"
)

const logPrefix = "Wallet"

// Channel issues one JSON-RPC call and decodes its result object into result.
// It is satisfied by *rpc.Client.
type Channel interface {
	JSONRPC(ctx context.Context, method string, params, result any) error
}

// Wallet talks to a monero-wallet-rpc instance. Every method issues its calls sequentially on the
// Channel and keeps no state between operations besides the decoded address cache.
type Wallet struct {
	ch        Channel
	policy    MergePolicy
	network   uint8
	addresses *address.Cache
}

type Option func(w *Wallet)

// WithMergePolicy selects how conflicting observations of the same transaction are resolved
func WithMergePolicy(policy MergePolicy) Option {
	return func(w *Wallet) {
		w.policy = policy
	}
}

// WithNetwork makes request builders reject addresses of any other network, e.g. monero.MainNetwork
func WithNetwork(network uint8) Option {
	return func(w *Wallet) {
		w.network = network
	}
}

func WithAddressCacheSize(size int) Option {
	return func(w *Wallet) {
		w.addresses = address.NewCache(size)
	}
}

func New(ch Channel, opts ...Option) *Wallet {
	w := &Wallet{
		ch:     ch,
		policy: MergeKeepFirst,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.addresses == nil {
		w.addresses = address.NewCache(256)
	}
	return w
}

func (w *Wallet) call(ctx context.Context, method string, params, result any) error {
	if err := w.ch.JSONRPC(ctx, method, params, result); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}
