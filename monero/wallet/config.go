package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/address"
	fasthex "github.com/tmthrgd/go-hex"
)

type Priority uint32

const (
	PriorityDefault Priority = iota
	PriorityUnimportant
	PriorityNormal
	PriorityElevated
	PriorityHigh
)

// SendConfig describes a transfer or transfer_split request
type SendConfig struct {
	Destinations      []Destination
	AccountIndex      uint32
	SubaddressIndices []uint32
	PaymentID         string
	Priority          Priority
	// RingSize of zero lets the daemon choose
	RingSize   uint64
	UnlockTime uint64
	// DoNotRelay builds and signs without broadcasting, the blob and metadata can be relayed later
	DoNotRelay bool
}

// SweepConfig describes a sweep_all request
type SweepConfig struct {
	Address           string
	AccountIndex      uint32
	SubaddressIndices []uint32
	PaymentID         string
	Priority          Priority
	RingSize          uint64
	UnlockTime        uint64
	DoNotRelay        bool
	// BelowAmount only sweeps outputs below this amount when non-zero
	BelowAmount uint64
}

type transferParams struct {
	Destinations   []Destination `json:"destinations"`
	AccountIndex   uint32        `json:"account_index"`
	SubaddrIndices []uint32      `json:"subaddr_indices,omitempty"`
	Priority       Priority      `json:"priority"`
	RingSize       uint64        `json:"ring_size,omitempty"`
	UnlockTime     uint64        `json:"unlock_time"`
	PaymentID      string        `json:"payment_id,omitempty"`
	DoNotRelay     bool          `json:"do_not_relay"`
	GetTxKey       bool          `json:"get_tx_key,omitempty"`
	GetTxKeys      bool          `json:"get_tx_keys,omitempty"`
	GetTxHex       bool          `json:"get_tx_hex"`
	GetTxMetadata  bool          `json:"get_tx_metadata"`
	NewAlgorithm   bool          `json:"new_algorithm,omitempty"`
}

type sweepAllParams struct {
	Address        string   `json:"address"`
	AccountIndex   uint32   `json:"account_index"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
	Priority       Priority `json:"priority"`
	RingSize       uint64   `json:"ring_size,omitempty"`
	UnlockTime     uint64   `json:"unlock_time"`
	PaymentID      string   `json:"payment_id,omitempty"`
	DoNotRelay     bool     `json:"do_not_relay"`
	BelowAmount    uint64   `json:"below_amount,omitempty"`
	GetTxKeys      bool     `json:"get_tx_keys"`
	GetTxHex       bool     `json:"get_tx_hex"`
	GetTxMetadata  bool     `json:"get_tx_metadata"`
}

func validatePaymentID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) != monero.PaymentIDShortSize*2 && len(id) != monero.PaymentIDLongSize*2 {
		return invalidConfig("payment id %q must be %d or %d hex characters", id, monero.PaymentIDShortSize*2, monero.PaymentIDLongSize*2)
	}
	if _, err := fasthex.DecodeString(id); err != nil {
		return invalidConfig("payment id %q: %s", id, err)
	}
	return nil
}

// checkAddresses decodes every address, requiring one shared network, and returns them in order
func (w *Wallet) checkAddresses(addresses ...string) ([]*address.Address, error) {
	decoded := make([]*address.Address, 0, len(addresses))
	var network uint8
	for _, s := range addresses {
		a, err := w.addresses.Decode(s)
		if err != nil {
			return nil, invalidConfig("address %q: %s", s, err)
		}
		if w.network != 0 && a.BaseNetwork() != w.network {
			return nil, invalidConfig("address %q is not on network %d", s, w.network)
		}
		if network == 0 {
			network = a.BaseNetwork()
		} else if a.BaseNetwork() != network {
			return nil, invalidConfig("address %q is on a different network than the previous destinations", s)
		}
		decoded = append(decoded, a)
	}
	return decoded, nil
}

func (w *Wallet) transferParams(cfg *SendConfig) (*transferParams, error) {
	if cfg == nil || len(cfg.Destinations) == 0 {
		return nil, invalidConfig("at least one destination is required")
	}
	if err := validatePaymentID(cfg.PaymentID); err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(cfg.Destinations))
	for i, d := range cfg.Destinations {
		if d.Amount == 0 {
			return nil, invalidConfig("destination %d has no amount", i)
		}
		addresses = append(addresses, d.Address)
	}
	decoded, err := w.checkAddresses(addresses...)
	if err != nil {
		return nil, err
	}
	for _, a := range decoded {
		if a.IsIntegrated() && cfg.PaymentID != "" {
			return nil, invalidConfig("payment id cannot be combined with integrated address %s", a)
		}
	}

	return &transferParams{
		Destinations:   cfg.Destinations,
		AccountIndex:   cfg.AccountIndex,
		SubaddrIndices: cfg.SubaddressIndices,
		Priority:       cfg.Priority,
		RingSize:       cfg.RingSize,
		UnlockTime:     cfg.UnlockTime,
		PaymentID:      cfg.PaymentID,
		DoNotRelay:     cfg.DoNotRelay,
		GetTxHex:       true,
		GetTxMetadata:  true,
	}, nil
}

func (w *Wallet) sweepAllParams(cfg *SweepConfig) (*sweepAllParams, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, invalidConfig("a destination address is required")
	}
	if err := validatePaymentID(cfg.PaymentID); err != nil {
		return nil, err
	}
	decoded, err := w.checkAddresses(cfg.Address)
	if err != nil {
		return nil, err
	}
	if decoded[0].IsIntegrated() && cfg.PaymentID != "" {
		return nil, invalidConfig("payment id cannot be combined with integrated address %s", decoded[0])
	}

	return &sweepAllParams{
		Address:        cfg.Address,
		AccountIndex:   cfg.AccountIndex,
		SubaddrIndices: cfg.SubaddressIndices,
		Priority:       cfg.Priority,
		RingSize:       cfg.RingSize,
		UnlockTime:     cfg.UnlockTime,
		PaymentID:      cfg.PaymentID,
		DoNotRelay:     cfg.DoNotRelay,
		BelowAmount:    cfg.BelowAmount,
		GetTxKeys:      true,
		GetTxHex:       true,
		GetTxMetadata:  true,
	}, nil
}

func mixinFromRingSize(ringSize uint64) *uint64 {
	if ringSize == 0 {
		return nil
	}
	mixin := ringSize - 1
	return &mixin
}

func (p Priority) String() string {
	switch p {
	case PriorityDefault:
		return "default"
	case PriorityUnimportant:
		return "unimportant"
	case PriorityNormal:
		return "normal"
	case PriorityElevated:
		return "elevated"
	case PriorityHigh:
		return "priority"
	default:
		return fmt.Sprintf("priority(%d)", uint32(p))
	}
}

// ParsePriority accepts a priority name or its numeric value
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return PriorityDefault, nil
	case "unimportant", "low":
		return PriorityUnimportant, nil
	case "normal":
		return PriorityNormal, nil
	case "elevated":
		return PriorityElevated, nil
	case "priority", "high":
		return PriorityHigh, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || Priority(n) > PriorityHigh {
		return PriorityDefault, invalidConfig("unknown priority %q", s)
	}
	return Priority(n), nil
}
