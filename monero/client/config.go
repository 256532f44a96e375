package client

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
)

const (
	DefaultURL     = "http://127.0.0.1:18083"
	DefaultTimeout = 30 * time.Second
)

// Config describes how to reach a monero-wallet-rpc instance
type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
	// Network is one of monero.MainNetwork, monero.TestNetwork or monero.StageNetwork. Zero accepts any.
	Network uint8
}

// LoadConfig reads MONERO_WALLET_RPC_URL, MONERO_WALLET_RPC_USER, MONERO_WALLET_RPC_PASSWORD,
// MONERO_WALLET_RPC_TIMEOUT and MONERO_WALLET_RPC_NETWORK. Every invalid value is reported.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		URL:      getEnvOrDefault("MONERO_WALLET_RPC_URL", DefaultURL),
		Username: os.Getenv("MONERO_WALLET_RPC_USER"),
		Password: os.Getenv("MONERO_WALLET_RPC_PASSWORD"),
	}
	var errs []error

	timeout := getEnvOrDefault("MONERO_WALLET_RPC_TIMEOUT", DefaultTimeout.String())
	if d, err := time.ParseDuration(timeout); err != nil {
		errs = append(errs, fmt.Errorf("MONERO_WALLET_RPC_TIMEOUT: invalid duration %q: %w", timeout, err))
	} else {
		cfg.Timeout = d
	}

	if network := os.Getenv("MONERO_WALLET_RPC_NETWORK"); network != "" {
		if n, err := ParseNetwork(network); err != nil {
			errs = append(errs, fmt.Errorf("MONERO_WALLET_RPC_NETWORK: %w", err))
		} else {
			cfg.Network = n
		}
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// Validate checks a Config built without LoadConfig
func (c *Config) Validate() error {
	var errs []error

	if c.URL == "" {
		errs = append(errs, errors.New("URL is required"))
	} else if u, err := url.Parse(c.URL); err != nil {
		errs = append(errs, fmt.Errorf("URL: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("URL: unsupported scheme %q", u.Scheme))
	}

	if c.Password != "" && c.Username == "" {
		errs = append(errs, errors.New("password set without username"))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative, got %s", c.Timeout))
	}

	switch c.Network {
	case 0, monero.MainNetwork, monero.TestNetwork, monero.StageNetwork:
	default:
		errs = append(errs, fmt.Errorf("unknown network %d", c.Network))
	}

	return errors.Join(errs...)
}

// ParseNetwork maps mainnet, testnet and stagenet to their address network byte
func ParseNetwork(name string) (uint8, error) {
	switch strings.ToLower(name) {
	case "mainnet", "main":
		return monero.MainNetwork, nil
	case "testnet", "test":
		return monero.TestNetwork, nil
	case "stagenet", "stage":
		return monero.StageNetwork, nil
	default:
		return 0, fmt.Errorf("unknown network %q", name)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
