package client

import (
	"testing"
	"time"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"MONERO_WALLET_RPC_URL",
		"MONERO_WALLET_RPC_USER",
		"MONERO_WALLET_RPC_PASSWORD",
		"MONERO_WALLET_RPC_TIMEOUT",
		"MONERO_WALLET_RPC_NETWORK",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.Username)
	assert.Zero(t, cfg.Network)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONERO_WALLET_RPC_URL", "https://wallet.example:18088")
	t.Setenv("MONERO_WALLET_RPC_USER", "monero")
	t.Setenv("MONERO_WALLET_RPC_PASSWORD", "hunter2")
	t.Setenv("MONERO_WALLET_RPC_TIMEOUT", "2m")
	t.Setenv("MONERO_WALLET_RPC_NETWORK", "stagenet")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		URL:      "https://wallet.example:18088",
		Username: "monero",
		Password: "hunter2",
		Timeout:  2 * time.Minute,
		Network:  monero.StageNetwork,
	}, cfg)
}

func TestLoadConfigAccumulatesErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONERO_WALLET_RPC_URL", "ftp://wallet")
	t.Setenv("MONERO_WALLET_RPC_PASSWORD", "hunter2")
	t.Setenv("MONERO_WALLET_RPC_TIMEOUT", "soon")
	t.Setenv("MONERO_WALLET_RPC_NETWORK", "moonnet")

	_, err := LoadConfig()
	require.Error(t, err)
	for _, part := range []string{"MONERO_WALLET_RPC_TIMEOUT", "MONERO_WALLET_RPC_NETWORK", "unsupported scheme", "password set without username"} {
		assert.Contains(t, err.Error(), part)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, (&Config{URL: DefaultURL}).Validate())
	require.Error(t, (&Config{}).Validate())
	require.Error(t, (&Config{URL: DefaultURL, Timeout: -time.Second}).Validate())
	require.Error(t, (&Config{URL: DefaultURL, Network: 7}).Validate())
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("Mainnet")
	require.NoError(t, err)
	assert.EqualValues(t, monero.MainNetwork, n)

	n, err = ParseNetwork("testnet")
	require.NoError(t, err)
	assert.EqualValues(t, monero.TestNetwork, n)

	_, err = ParseNetwork("regtest")
	require.Error(t, err)
}
