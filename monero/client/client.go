package client

import (
	"sync"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/client/rpc"
	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/wallet"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	defaultLock    sync.Mutex
	defaultConfig  = &Config{URL: DefaultURL, Timeout: DefaultTimeout}
	defaultWallet  *wallet.Wallet
	defaultMetrics *rpc.Metrics
)

// SetDefaultClientSettings points the default wallet at another address, keeping the remaining settings
func SetDefaultClientSettings(address string) {
	if address == "" {
		return
	}
	defaultLock.Lock()
	defer defaultLock.Unlock()
	cfg := *defaultConfig
	cfg.URL = address
	defaultConfig = &cfg
	defaultWallet = nil
}

func SetDefaultClientConfig(cfg *Config) {
	defaultLock.Lock()
	defer defaultLock.Unlock()
	c := *cfg
	defaultConfig = &c
	defaultWallet = nil
}

// SetDefaultMetricsRegisterer enables RPC metrics on the default wallet
func SetDefaultMetricsRegisterer(registerer prometheus.Registerer) {
	defaultLock.Lock()
	defer defaultLock.Unlock()
	defaultMetrics = rpc.NewMetrics(registerer)
	defaultWallet = nil
}

// GetDefaultClient returns the process-wide wallet, created on first use
func GetDefaultClient() *wallet.Wallet {
	defaultLock.Lock()
	defer defaultLock.Unlock()
	if defaultWallet == nil {
		w, err := newWallet(defaultConfig, defaultMetrics)
		if err != nil {
			utils.Panic(err)
		}
		defaultWallet = w
	}
	return defaultWallet
}

// NewWallet builds a wallet over an rpc.Client configured from cfg
func NewWallet(cfg *Config, opts ...wallet.Option) (*wallet.Wallet, error) {
	return newWallet(cfg, nil, opts...)
}

func newWallet(cfg *Config, metrics *rpc.Metrics, opts ...wallet.Option) (*wallet.Wallet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientOpts := []rpc.ClientOption{rpc.WithHTTPClient(rpc.NewHTTPClient(cfg.Timeout))}
	if cfg.Username != "" {
		clientOpts = append(clientOpts, rpc.WithCredentials(cfg.Username, cfg.Password))
	}
	if metrics != nil {
		clientOpts = append(clientOpts, rpc.WithMetrics(metrics))
	}

	c, err := rpc.NewClient(cfg.URL, clientOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.Network != 0 {
		opts = append([]wallet.Option{wallet.WithNetwork(cfg.Network)}, opts...)
	}

	utils.Logf("Client", "using monero-wallet-rpc at %s", c.Address())

	return wallet.New(c, opts...), nil
}
