package wallet

import (
	"testing"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMergeFillsMissing(t *testing.T) {
	id := types.MustHashFromString(testHash(1))
	a := &Transaction{ID: id, Type: TxOutgoing, Height: ptr[uint64](50), Note: ptr("x")}
	b := &Transaction{ID: id, Fee: ptr[uint64](5), Amount: ptr[uint64](100), Key: types.Bytes{0xaa}}

	require.NoError(t, a.Merge(b, MergeStrict))
	assert.EqualValues(t, 50, *a.Height)
	assert.EqualValues(t, 5, *a.Fee)
	assert.EqualValues(t, 100, *a.Amount)
	assert.Equal(t, "x", *a.Note)
	assert.Equal(t, types.Bytes{0xaa}, a.Key)
	assert.Equal(t, TxOutgoing, a.Type)

	// merged values are copies
	*b.Fee = 6
	assert.EqualValues(t, 5, *a.Fee)
}

func TestMergeConflict(t *testing.T) {
	id := types.MustHashFromString(testHash(1))

	a := &Transaction{ID: id, Type: TxIncoming, Height: ptr[uint64](50)}
	err := a.Merge(&Transaction{ID: id, Type: TxIncoming, Height: ptr[uint64](60)}, MergeStrict)
	require.ErrorIs(t, err, ErrMergeConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "height", conflict.Field)
	assert.Equal(t, id, conflict.ID)
	assert.EqualValues(t, 50, conflict.Existing)
	assert.EqualValues(t, 60, conflict.Incoming)

	a = &Transaction{ID: id, Type: TxIncoming, Height: ptr[uint64](50)}
	require.NoError(t, a.Merge(&Transaction{ID: id, Type: TxIncoming, Height: ptr[uint64](60)}, MergeKeepFirst))
	assert.EqualValues(t, 50, *a.Height)
}

func TestMergeLists(t *testing.T) {
	ki1 := types.MustHashFromString(testHash(7))
	ki2 := types.MustHashFromString(testHash(8))

	a := &Transaction{
		Destinations: []Destination{{Address: testAddress, Amount: 1}},
		Outputs:      []Output{{Amount: 1, KeyImage: ki1}},
	}
	b := &Transaction{
		Destinations: []Destination{{Address: testAddress, Amount: 1}, {Address: testAddress2, Amount: 2}},
		Outputs:      []Output{{Amount: 1, KeyImage: ki1, Spent: true}, {Amount: 2, KeyImage: ki2}},
	}

	require.NoError(t, a.Merge(b, MergeStrict))
	assert.Equal(t, []Destination{{Address: testAddress, Amount: 1}, {Address: testAddress2, Amount: 2}}, a.Destinations)
	// outputs with a key image are identified by it
	assert.Equal(t, []Output{{Amount: 1, KeyImage: ki1}, {Amount: 2, KeyImage: ki2}}, a.Outputs)
}

func TestMergeSelf(t *testing.T) {
	a := &Transaction{Height: ptr[uint64](1)}
	require.NoError(t, a.Merge(a, MergeStrict))
	require.NoError(t, a.Merge(nil, MergeStrict))
	assert.EqualValues(t, 1, *a.Height)
}

func TestPaymentIDSentinel(t *testing.T) {
	assert.False(t, (&Transaction{}).HasPaymentID())
	assert.False(t, (&Transaction{PaymentID: ptr("0000000000000000")}).HasPaymentID())
	assert.False(t, (&Transaction{PaymentID: ptr("0000000000000000000000000000000000000000000000000000000000000000")}).HasPaymentID())
	assert.True(t, (&Transaction{PaymentID: ptr("1234567890abcdef")}).HasPaymentID())
}

// genTransaction draws transactions sharing one id, where every set field takes its value from a fixed base.
// Any two of them agree wherever both are set.
func genTransaction(t *rapid.T, label string) *Transaction {
	base := struct {
		amount, fee, height uint64
		note                string
	}{10, 2, 500, "note"}

	tx := &Transaction{ID: types.MustHashFromString(testHash(9))}
	if rapid.Bool().Draw(t, label+"type") {
		tx.Type = TxOutgoing
	}
	if rapid.Bool().Draw(t, label+"amount") {
		tx.Amount = ptr(base.amount)
	}
	if rapid.Bool().Draw(t, label+"fee") {
		tx.Fee = ptr(base.fee)
	}
	if rapid.Bool().Draw(t, label+"height") {
		tx.Height = ptr(base.height)
	}
	if rapid.Bool().Draw(t, label+"note") {
		tx.Note = ptr(base.note)
	}
	if rapid.Bool().Draw(t, label+"key") {
		tx.Key = types.Bytes{1, 2, 3}
	}
	return tx
}

func TestMergeCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genTransaction(t, "a")
		b := genTransaction(t, "b")

		ab := a.Clone()
		if err := ab.Merge(b, MergeStrict); err != nil {
			t.Fatalf("merge a, b: %s", err)
		}
		ba := b.Clone()
		if err := ba.Merge(a, MergeStrict); err != nil {
			t.Fatalf("merge b, a: %s", err)
		}

		if !assert.ObjectsAreEqual(ab, ba) {
			t.Fatalf("merge is not commutative: %+v != %+v", ab, ba)
		}
	})
}

func TestMergeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genTransaction(t, "a")
		b := genTransaction(t, "b")

		once := a.Clone()
		if err := once.Merge(b, MergeStrict); err != nil {
			t.Fatalf("merge: %s", err)
		}
		twice := once.Clone()
		if err := twice.Merge(b, MergeStrict); err != nil {
			t.Fatalf("merge again: %s", err)
		}
		if err := twice.Merge(twice.Clone(), MergeStrict); err != nil {
			t.Fatalf("merge with self: %s", err)
		}

		if !assert.ObjectsAreEqual(once, twice) {
			t.Fatalf("merge is not idempotent: %+v != %+v", once, twice)
		}
	})
}
