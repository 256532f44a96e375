package wallet

import (
	"bytes"
	"slices"
	"strings"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/address"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

type TxType uint8

const (
	TxUnknown TxType = iota
	TxIncoming
	TxOutgoing
	TxPending
	TxFailed
	TxMempool
)

func (t TxType) String() string {
	switch t {
	case TxIncoming:
		return "in"
	case TxOutgoing:
		return "out"
	case TxPending:
		return "pending"
	case TxFailed:
		return "failed"
	case TxMempool:
		return "pool"
	default:
		return "unknown"
	}
}

func (t TxType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ParseTxType maps the get_transfers type names. Coinbase outputs ("block") are incoming.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(s) {
	case "in", "block":
		return TxIncoming, nil
	case "out":
		return TxOutgoing, nil
	case "pending":
		return TxPending, nil
	case "failed":
		return TxFailed, nil
	case "pool":
		return TxMempool, nil
	default:
		return TxUnknown, ErrUnknownTxType
	}
}

type Destination struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// Output is one incoming output as listed by incoming_transfers
type Output struct {
	Amount      uint64     `json:"amount"`
	Spent       bool       `json:"spent"`
	KeyImage    types.Hash `json:"key_image"`
	GlobalIndex uint64     `json:"global_index"`
}

func (o Output) same(other Output) bool {
	if !o.KeyImage.IsZero() && !other.KeyImage.IsZero() {
		return o.KeyImage == other.KeyImage
	}
	return o == other
}

// Transaction is the reconciled view of a wallet transaction. Nil fields were not reported by any call.
type Transaction struct {
	ID   types.Hash `json:"id"`
	Type TxType     `json:"type"`

	Amount     *uint64 `json:"amount,omitempty"`
	Fee        *uint64 `json:"fee,omitempty"`
	Height     *uint64 `json:"height,omitempty"`
	Timestamp  *uint64 `json:"timestamp,omitempty"`
	UnlockTime *uint64 `json:"unlock_time,omitempty"`
	Size       *uint64 `json:"size,omitempty"`
	Mixin      *uint64 `json:"mixin,omitempty"`

	PaymentID *string `json:"payment_id,omitempty"`
	Note      *string `json:"note,omitempty"`
	Address   *string `json:"address,omitempty"`

	Key      types.Bytes `json:"key,omitempty"`
	Blob     types.Bytes `json:"blob,omitempty"`
	Metadata types.Bytes `json:"metadata,omitempty"`

	DoubleSpend *bool                    `json:"double_spend,omitempty"`
	Subaddress  *address.SubaddressIndex `json:"subaddress,omitempty"`

	Destinations []Destination `json:"destinations,omitempty"`
	Outputs      []Output      `json:"outputs,omitempty"`
}

// IsConfirmed reports whether the transaction is included in a block
func (tx *Transaction) IsConfirmed() bool {
	return tx.Height != nil && *tx.Height > 0
}

// HasPaymentID is true for any payment id other than the all-zero sentinel
func (tx *Transaction) HasPaymentID() bool {
	return tx.PaymentID != nil && !isNullPaymentID(*tx.PaymentID)
}

func (tx *Transaction) Clone() *Transaction {
	c := *tx
	c.Amount = clonePtr(tx.Amount)
	c.Fee = clonePtr(tx.Fee)
	c.Height = clonePtr(tx.Height)
	c.Timestamp = clonePtr(tx.Timestamp)
	c.UnlockTime = clonePtr(tx.UnlockTime)
	c.Size = clonePtr(tx.Size)
	c.Mixin = clonePtr(tx.Mixin)
	c.PaymentID = clonePtr(tx.PaymentID)
	c.Note = clonePtr(tx.Note)
	c.Address = clonePtr(tx.Address)
	c.Key = bytes.Clone(tx.Key)
	c.Blob = bytes.Clone(tx.Blob)
	c.Metadata = bytes.Clone(tx.Metadata)
	c.DoubleSpend = clonePtr(tx.DoubleSpend)
	c.Subaddress = clonePtr(tx.Subaddress)
	c.Destinations = slices.Clone(tx.Destinations)
	c.Outputs = slices.Clone(tx.Outputs)
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

type MergePolicy uint8

const (
	// MergeKeepFirst keeps the value observed first when two observations disagree, logging the conflict
	MergeKeepFirst MergePolicy = iota
	// MergeStrict fails with a ConflictError when two observations disagree
	MergeStrict
)

type merger struct {
	id     types.Hash
	policy MergePolicy
	err    error
}

func (m *merger) conflict(field string, existing, incoming any) {
	if m.err != nil {
		return
	}
	if m.policy == MergeStrict {
		m.err = &ConflictError{ID: m.id, Field: field, Existing: existing, Incoming: incoming}
		return
	}
	utils.Noticef(logPrefix, "transaction %s: keeping %s = %v, ignoring %v", m.id, field, existing, incoming)
}

func mergePtr[T comparable](m *merger, field string, dst **T, src *T) {
	if src == nil {
		return
	}
	if *dst == nil {
		*dst = clonePtr(src)
		return
	}
	if **dst != *src {
		m.conflict(field, **dst, *src)
	}
}

func mergeBytes(m *merger, field string, dst *types.Bytes, src types.Bytes) {
	if src == nil {
		return
	}
	if *dst == nil {
		*dst = bytes.Clone(src)
		return
	}
	if !bytes.Equal(*dst, src) {
		m.conflict(field, *dst, src)
	}
}

// Merge copies into tx every field set in other that tx lacks. List entries of other not yet present in tx are appended.
// Conflicting values are resolved according to policy.
func (tx *Transaction) Merge(other *Transaction, policy MergePolicy) error {
	if other == nil || tx == other {
		return nil
	}

	m := &merger{id: tx.ID, policy: policy}

	if tx.ID.IsZero() {
		tx.ID = other.ID
		m.id = other.ID
	} else if !other.ID.IsZero() && tx.ID != other.ID {
		m.conflict("id", tx.ID, other.ID)
	}

	if tx.Type == TxUnknown {
		tx.Type = other.Type
	} else if other.Type != TxUnknown && tx.Type != other.Type {
		m.conflict("type", tx.Type, other.Type)
	}

	mergePtr(m, "amount", &tx.Amount, other.Amount)
	mergePtr(m, "fee", &tx.Fee, other.Fee)
	mergePtr(m, "height", &tx.Height, other.Height)
	mergePtr(m, "timestamp", &tx.Timestamp, other.Timestamp)
	mergePtr(m, "unlock_time", &tx.UnlockTime, other.UnlockTime)
	mergePtr(m, "size", &tx.Size, other.Size)
	mergePtr(m, "mixin", &tx.Mixin, other.Mixin)
	mergePtr(m, "payment_id", &tx.PaymentID, other.PaymentID)
	mergePtr(m, "note", &tx.Note, other.Note)
	mergePtr(m, "address", &tx.Address, other.Address)
	mergeBytes(m, "key", &tx.Key, other.Key)
	mergeBytes(m, "blob", &tx.Blob, other.Blob)
	mergeBytes(m, "metadata", &tx.Metadata, other.Metadata)
	mergePtr(m, "double_spend", &tx.DoubleSpend, other.DoubleSpend)
	mergePtr(m, "subaddress", &tx.Subaddress, other.Subaddress)

	if m.err != nil {
		return m.err
	}

	if other.Destinations != nil {
		if tx.Destinations == nil {
			tx.Destinations = slices.Clone(other.Destinations)
		} else {
			for _, d := range other.Destinations {
				if !slices.Contains(tx.Destinations, d) {
					tx.Destinations = append(tx.Destinations, d)
				}
			}
		}
	}

	if other.Outputs != nil {
		if tx.Outputs == nil {
			tx.Outputs = slices.Clone(other.Outputs)
		} else {
			for _, o := range other.Outputs {
				if !slices.ContainsFunc(tx.Outputs, o.same) {
					tx.Outputs = append(tx.Outputs, o)
				}
			}
		}
	}

	return nil
}

func isNullPaymentID(id string) bool {
	return strings.Trim(id, "0") == ""
}
