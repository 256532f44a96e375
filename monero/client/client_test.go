package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "0", "jsonrpc": "2.0", "result": {"height": 3200000}}`))
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	SetDefaultMetricsRegisterer(registry)
	SetDefaultClientSettings(server.URL)

	w := GetDefaultClient()
	require.Same(t, w, GetDefaultClient())

	height, err := w.GetHeight(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3200000, height)

	count, err := testutil.GatherAndCount(registry, "monero_wallet_rpc_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewWalletInvalidConfig(t *testing.T) {
	_, err := NewWallet(&Config{URL: "ftp://wallet"})
	require.Error(t, err)
}
