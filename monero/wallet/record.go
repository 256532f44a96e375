package wallet

import (
	"bytes"
	"strconv"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

// Record is one raw response object. Numbers are kept as utils.JSONNumber so atomic amounts never pass through float64.
type Record map[string]any

func (r *Record) UnmarshalJSON(b []byte) error {
	d := utils.NewJSONDecoder(bytes.NewReader(b))
	d.UseNumber()
	m := make(map[string]any)
	if err := d.Decode(&m); err != nil {
		return err
	}
	*r = m
	return nil
}

func valueUint64(field string, v any) (uint64, error) {
	n, ok := v.(utils.JSONNumber)
	if !ok {
		return 0, &ShapeError{Field: field, Value: v}
	}
	x, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, &ShapeError{Field: field, Value: v, Err: err}
	}
	return x, nil
}

func valueUint32(field string, v any) (uint32, error) {
	n, ok := v.(utils.JSONNumber)
	if !ok {
		return 0, &ShapeError{Field: field, Value: v}
	}
	x, err := strconv.ParseUint(n.String(), 10, 32)
	if err != nil {
		return 0, &ShapeError{Field: field, Value: v, Err: err}
	}
	return uint32(x), nil
}

func valueString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Field: field, Value: v}
	}
	return s, nil
}

func valueBool(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &ShapeError{Field: field, Value: v}
	}
	return b, nil
}

func valueHash(field string, v any) (types.Hash, error) {
	s, err := valueString(field, v)
	if err != nil {
		return types.ZeroHash, err
	}
	h, err := types.HashFromString(s)
	if err != nil {
		return types.ZeroHash, &ShapeError{Field: field, Value: v, Err: err}
	}
	return h, nil
}

func valueBytes(field string, v any) (types.Bytes, error) {
	s, err := valueString(field, v)
	if err != nil {
		return nil, err
	}
	b, err := types.BytesFromString(s)
	if err != nil {
		return nil, &ShapeError{Field: field, Value: v, Err: err}
	}
	return b, nil
}

func valueObject(field string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ShapeError{Field: field, Value: v}
	}
	return m, nil
}

func valueList(field string, v any) ([]any, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Field: field, Value: v}
	}
	return l, nil
}
