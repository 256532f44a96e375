package wallet

import (
	"context"
	"testing"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	ch := newMockChannel().on(MethodTransfer, `{
		"amount": 100, "fee": 2, "tx_hash": "`+testHash(1)+`", "tx_key": "ab", "tx_blob": "cd",
		"tx_metadata": "ef", "multisig_txset": "", "unsigned_txset": "", "weight": 1500
	}`)
	w := New(ch)

	tx, err := w.Send(context.Background(), &SendConfig{
		Destinations: []Destination{{Address: testAddress, Amount: 100}},
		Priority:     PriorityElevated,
		RingSize:     16,
	})
	require.NoError(t, err)

	params := ch.lastCall(MethodTransfer).Params
	assert.Equal(t, []any{map[string]any{"address": testAddress, "amount": float64(100)}}, params["destinations"])
	assert.EqualValues(t, 16, params["ring_size"])
	assert.EqualValues(t, PriorityElevated, params["priority"])
	assert.Equal(t, true, params["get_tx_key"])
	assert.Equal(t, false, params["do_not_relay"])
	assert.NotContains(t, params, "payment_id")

	assert.Equal(t, types.MustHashFromString(testHash(1)), tx.ID)
	assert.Equal(t, TxOutgoing, tx.Type)
	assert.EqualValues(t, 100, *tx.Amount)
	assert.EqualValues(t, 2, *tx.Fee)
	assert.EqualValues(t, 15, *tx.Mixin)
	assert.EqualValues(t, 0, *tx.UnlockTime)
	assert.Equal(t, types.Bytes{0xab}, tx.Key)
	assert.Equal(t, types.Bytes{0xcd}, tx.Blob)
	assert.Equal(t, []Destination{{Address: testAddress, Amount: 100}}, tx.Destinations)
}

func TestSendDoNotRelay(t *testing.T) {
	ch := newMockChannel().on(MethodTransfer, `{"amount": 1, "fee": 1, "tx_hash": "`+testHash(1)+`"}`)
	tx, err := New(ch).Send(context.Background(), &SendConfig{
		Destinations: []Destination{{Address: testAddress, Amount: 1}},
		DoNotRelay:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, TxPending, tx.Type)
	assert.Nil(t, tx.Mixin)
}

func TestSendSplit(t *testing.T) {
	ch := newMockChannel().on(MethodTransferSplit, `{
		"tx_hash_list": ["`+testHash(1)+`", "`+testHash(2)+`"],
		"tx_key_list": ["01", "02"],
		"fee_list": [3, 4],
		"amount_list": [50, 60]
	}`)

	txs, err := New(ch).SendSplit(context.Background(), &SendConfig{
		Destinations: []Destination{{Address: testAddress, Amount: 110}},
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, types.MustHashFromString(testHash(1)), txs[0].ID)
	assert.Equal(t, types.MustHashFromString(testHash(2)), txs[1].ID)
	assert.EqualValues(t, 4, *txs[1].Fee)
	assert.EqualValues(t, 60, *txs[1].Amount)
	assert.Equal(t, types.Bytes{0x02}, txs[1].Key)
	assert.Nil(t, txs[1].Blob)
	assert.Equal(t, true, ch.lastCall(MethodTransferSplit).Params["get_tx_keys"])
}

func testSweepResult() string {
	return `{
		"tx_hash_list": ["` + testHash(1) + `"],
		"tx_key_list": ["aa"],
		"tx_blob_list": ["bb"],
		"tx_metadata_list": ["cc"],
		"fee_list": [5],
		"amount_list": [100]
	}`
}

func TestSweepAll(t *testing.T) {
	ch := newMockChannel().
		on(MethodSweepAll, testSweepResult()).
		on(MethodGetTransfers, `{"out": [{"txid": "`+testHash(1)+`", "type": "out", "height": 50, "note": "x"}]}`)
	w := New(ch, WithMergePolicy(MergeStrict))

	txs, err := w.SweepAll(context.Background(), &SweepConfig{Address: testAddress, AccountIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{MethodSweepAll, MethodGetTransfers}, ch.methods())
	assert.EqualValues(t, 1, ch.lastCall(MethodSweepAll).Params["account_index"])
	assert.Equal(t, false, ch.lastCall(MethodGetTransfers).Params["in"])

	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, types.MustHashFromString(testHash(1)), tx.ID)
	assert.Equal(t, TxOutgoing, tx.Type)
	assert.EqualValues(t, 5, *tx.Fee)
	assert.EqualValues(t, 100, *tx.Amount)
	assert.EqualValues(t, 50, *tx.Height)
	assert.Equal(t, "x", *tx.Note)
	assert.Equal(t, types.Bytes{0xaa}, tx.Key)
	assert.Equal(t, types.Bytes{0xbb}, tx.Blob)
	assert.Equal(t, types.Bytes{0xcc}, tx.Metadata)
}

func TestSweepAllDoNotRelay(t *testing.T) {
	ch := newMockChannel().on(MethodSweepAll, testSweepResult())

	txs, err := New(ch).SweepAll(context.Background(), &SweepConfig{Address: testAddress, DoNotRelay: true})
	require.NoError(t, err)
	assert.Equal(t, []string{MethodSweepAll}, ch.methods())
	require.Len(t, txs, 1)
	assert.Equal(t, TxPending, txs[0].Type)
}

func TestSweepAllNothingToSweep(t *testing.T) {
	ch := newMockChannel().on(MethodSweepAll, `{}`)

	txs, err := New(ch).SweepAll(context.Background(), &SweepConfig{Address: testAddress})
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Equal(t, []string{MethodSweepAll}, ch.methods())
}

func TestSweepAllLengthMismatch(t *testing.T) {
	ch := newMockChannel().on(MethodSweepAll, `{
		"tx_hash_list": ["`+testHash(1)+`"],
		"tx_key_list": ["aa"],
		"tx_blob_list": ["bb"],
		"tx_metadata_list": ["cc"],
		"fee_list": [5, 6],
		"amount_list": [100]
	}`)

	_, err := New(ch).SweepAll(context.Background(), &SweepConfig{Address: testAddress})
	require.ErrorIs(t, err, ErrConsistency)

	var consistencyErr *ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Equal(t, []string{MethodSweepAll}, ch.methods())
}

func TestSweepAllFetchMismatch(t *testing.T) {
	ch := newMockChannel().
		on(MethodSweepAll, testSweepResult()).
		on(MethodGetTransfers, `{"out": [{"txid": "`+testHash(2)+`", "type": "out", "height": 50}]}`)

	_, err := New(ch).SweepAll(context.Background(), &SweepConfig{Address: testAddress})
	require.ErrorIs(t, err, ErrConsistency)
}

func TestSweepDust(t *testing.T) {
	ch := newMockChannel().on(MethodSweepDust, `{"tx_hash_list": ["`+testHash(3)+`"], "fee_list": [9]}`)

	txs, err := New(ch).SweepDust(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, TxOutgoing, txs[0].Type)
	assert.EqualValues(t, 9, *txs[0].Fee)
	assert.Nil(t, txs[0].Amount)

	txs, err = New(newMockChannel().on(MethodSweepDust, `{}`)).SweepDust(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSendConfigValidation(t *testing.T) {
	integrated := testIntegratedAddress(t)

	for name, cfg := range map[string]*SendConfig{
		"nil":             nil,
		"no destinations": {},
		"zero amount":     {Destinations: []Destination{{Address: testAddress}}},
		"bad address":     {Destinations: []Destination{{Address: "4abc", Amount: 1}}},
		"bad payment id":  {Destinations: []Destination{{Address: testAddress, Amount: 1}}, PaymentID: "xyz"},
		"odd payment id":  {Destinations: []Destination{{Address: testAddress, Amount: 1}}, PaymentID: "zz34567890abcdef"},
		"integrated and payment id": {
			Destinations: []Destination{{Address: integrated, Amount: 1}},
			PaymentID:    "1234567890abcdef",
		},
	} {
		ch := newMockChannel()
		_, err := New(ch).Send(context.Background(), cfg)
		require.ErrorIs(t, err, ErrInvalidConfig, name)
		assert.Empty(t, ch.calls, name)
	}

	ch := newMockChannel().on(MethodTransfer, `{"tx_hash": "`+testHash(1)+`"}`)
	_, err := New(ch).Send(context.Background(), &SendConfig{Destinations: []Destination{{Address: integrated, Amount: 1}}})
	require.NoError(t, err)
}

func TestSendNetworkValidation(t *testing.T) {
	ch := newMockChannel()
	_, err := New(ch, WithNetwork(monero.TestNetwork)).Send(context.Background(), &SendConfig{
		Destinations: []Destination{{Address: testAddress, Amount: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(ch).SweepAll(context.Background(), &SweepConfig{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(ch, WithNetwork(monero.StageNetwork)).SweepAll(context.Background(), &SweepConfig{Address: testAddress})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Empty(t, ch.calls)
}

func TestParsePriority(t *testing.T) {
	for s, expected := range map[string]Priority{
		"":         PriorityDefault,
		"default":  PriorityDefault,
		"low":      PriorityUnimportant,
		"Normal":   PriorityNormal,
		"elevated": PriorityElevated,
		"priority": PriorityHigh,
		"4":        PriorityHigh,
		"2":        PriorityNormal,
	} {
		p, err := ParsePriority(s)
		require.NoError(t, err, s)
		assert.Equal(t, expected, p, s)
	}

	_, err := ParsePriority("5")
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = ParsePriority("urgent")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
