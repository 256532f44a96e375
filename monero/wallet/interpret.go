package wallet

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/address"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

type fieldSetter func(tx *Transaction, field string, v any) error

func uint64Field(target func(tx *Transaction) **uint64) fieldSetter {
	return func(tx *Transaction, field string, v any) error {
		n, err := valueUint64(field, v)
		if err != nil {
			return err
		}
		*target(tx) = &n
		return nil
	}
}

func stringField(target func(tx *Transaction) **string) fieldSetter {
	return func(tx *Transaction, field string, v any) error {
		s, err := valueString(field, v)
		if err != nil {
			return err
		}
		*target(tx) = &s
		return nil
	}
}

func bytesField(target func(tx *Transaction) *types.Bytes) fieldSetter {
	return func(tx *Transaction, field string, v any) error {
		b, err := valueBytes(field, v)
		if err != nil {
			return err
		}
		*target(tx) = b
		return nil
	}
}

func ignoreField(*Transaction, string, any) error {
	return nil
}

// transactionFields maps lower-cased wire names, including historical aliases, to the field they fill
var transactionFields = map[string]fieldSetter{
	"fee":          uint64Field(func(tx *Transaction) **uint64 { return &tx.Fee }),
	"height":       uint64Field(func(tx *Transaction) **uint64 { return &tx.Height }),
	"block_height": uint64Field(func(tx *Transaction) **uint64 { return &tx.Height }),
	"timestamp":    uint64Field(func(tx *Transaction) **uint64 { return &tx.Timestamp }),
	"unlock_time":  uint64Field(func(tx *Transaction) **uint64 { return &tx.UnlockTime }),
	"tx_size":      uint64Field(func(tx *Transaction) **uint64 { return &tx.Size }),

	"note":       stringField(func(tx *Transaction) **string { return &tx.Note }),
	"payment_id": stringField(func(tx *Transaction) **string { return &tx.PaymentID }),
	"address":    stringField(func(tx *Transaction) **string { return &tx.Address }),

	"tx_key":      bytesField(func(tx *Transaction) *types.Bytes { return &tx.Key }),
	"key_image":   bytesField(func(tx *Transaction) *types.Bytes { return &tx.Key }),
	"tx_blob":     bytesField(func(tx *Transaction) *types.Bytes { return &tx.Blob }),
	"tx_metadata": bytesField(func(tx *Transaction) *types.Bytes { return &tx.Metadata }),

	"txid":    setID,
	"tx_hash": setID,

	"type":              setType,
	"double_spend_seen": setDoubleSpend,
	"subaddr_index":     setSubaddressIndex,
	"destinations":      setDestinations,

	// meaning depends on the producing call, handled by the caller
	"amount":       ignoreField,
	"spent":        ignoreField,
	"global_index": ignoreField,

	// informational or derived, no place in the shared transaction shape
	"confirmations":                     ignoreField,
	"suggested_confirmations_threshold": ignoreField,
	"locked":                            ignoreField,
	"subaddr_indices":                   ignoreField,
	"amounts":                           ignoreField,
	"frozen":                            ignoreField,
	"unlocked":                          ignoreField,
	"pubkey":                            ignoreField,
	"transfer_type":                     ignoreField,
	"weight":                            ignoreField,
	"multisig_txset":                    ignoreField,
	"unsigned_txset":                    ignoreField,
	"spent_key_images":                  ignoreField,
	"amounts_by_dest":                   ignoreField,
}

func setID(tx *Transaction, field string, v any) (err error) {
	tx.ID, err = valueHash(field, v)
	return err
}

func setType(tx *Transaction, field string, v any) error {
	s, err := valueString(field, v)
	if err != nil {
		return err
	}
	t, err := ParseTxType(s)
	if err != nil {
		return &ShapeError{Field: field, Value: v, Err: err}
	}
	tx.Type = t
	return nil
}

func setDoubleSpend(tx *Transaction, field string, v any) error {
	b, err := valueBool(field, v)
	if err != nil {
		return err
	}
	tx.DoubleSpend = &b
	return nil
}

func setSubaddressIndex(tx *Transaction, field string, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		// incoming_transfers on older daemons sends a bare number, uninformative on its own
		return nil
	}
	major, err := valueUint32(field+".major", m["major"])
	if err != nil {
		return err
	}
	minor, err := valueUint32(field+".minor", m["minor"])
	if err != nil {
		return err
	}
	tx.Subaddress = &address.SubaddressIndex{Account: major, Offset: minor}
	return nil
}

func setDestinations(tx *Transaction, field string, v any) error {
	list, err := valueList(field, v)
	if err != nil {
		return err
	}
	destinations := make([]Destination, 0, len(list))
	for _, e := range list {
		m, err := valueObject(field, e)
		if err != nil {
			return err
		}
		var d Destination
		for k, dv := range m {
			switch k {
			case "address":
				if d.Address, err = valueString(field+".address", dv); err != nil {
					return err
				}
			case "amount":
				if d.Amount, err = valueUint64(field+".amount", dv); err != nil {
					return err
				}
			default:
				return &ShapeError{Field: field + "." + k, Value: dv, Err: ErrUnknownField}
			}
		}
		destinations = append(destinations, d)
	}
	tx.Destinations = destinations
	return nil
}

// fieldAliases maps historical wire names to the name they duplicate
var fieldAliases = map[string]string{
	"block_height": "height",
	"tx_hash":      "txid",
	"key_image":    "tx_key",
}

// InterpretTransaction builds a transaction from one raw record of any supported endpoint.
// Unknown fields are logged and dropped, malformed known fields fail, as do aliases carrying different values.
func InterpretTransaction(record Record) (*Transaction, error) {
	tx := &Transaction{}
	assigned := make(map[string]any, len(record))
	for _, key := range slices.Sorted(maps.Keys(record)) {
		v := record[key]
		if v == nil {
			continue
		}
		name := strings.ToLower(key)
		setter, ok := transactionFields[name]
		if !ok {
			utils.Noticef(logPrefix, "ignoring unexpected transaction field %q", key)
			continue
		}
		if canonical, ok := fieldAliases[name]; ok {
			name = canonical
		}
		if prev, ok := assigned[name]; ok && !reflect.DeepEqual(prev, v) {
			return nil, &ShapeError{Field: key, Value: v, Err: ErrAliasConflict}
		}
		assigned[name] = v
		if err := setter(tx, key, v); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
