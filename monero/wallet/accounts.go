package wallet

import (
	"context"
	"fmt"
	"slices"
)

type Account struct {
	Index                uint32        `json:"index"`
	PrimaryAddress       string        `json:"primary_address"`
	Label                string        `json:"label"`
	Tag                  string        `json:"tag,omitempty"`
	Balance              uint64        `json:"balance"`
	UnlockedBalance      uint64        `json:"unlocked_balance"`
	MultisigImportNeeded bool          `json:"multisig_import_needed"`
	Subaddresses         []*Subaddress `json:"subaddresses,omitempty"`
}

type Subaddress struct {
	AccountIndex         uint32 `json:"account_index"`
	Index                uint32 `json:"index"`
	Address              string `json:"address"`
	Label                string `json:"label"`
	Balance              uint64 `json:"balance"`
	UnlockedBalance      uint64 `json:"unlocked_balance"`
	NumUnspentOutputs    uint64 `json:"num_unspent_outputs"`
	Used                 bool   `json:"used"`
	MultisigImportNeeded bool   `json:"multisig_import_needed"`
}

type getAccountsResult struct {
	SubaddressAccounts []struct {
		AccountIndex    uint32 `json:"account_index"`
		Balance         uint64 `json:"balance"`
		BaseAddress     string `json:"base_address"`
		Label           string `json:"label"`
		Tag             string `json:"tag"`
		UnlockedBalance uint64 `json:"unlocked_balance"`
	} `json:"subaddress_accounts"`
	TotalBalance         uint64 `json:"total_balance"`
	TotalUnlockedBalance uint64 `json:"total_unlocked_balance"`
}

type getBalanceParams struct {
	AccountIndex   uint32   `json:"account_index"`
	AddressIndices []uint32 `json:"address_indices,omitempty"`
}

type getBalanceResult struct {
	Balance              uint64 `json:"balance"`
	UnlockedBalance      uint64 `json:"unlocked_balance"`
	MultisigImportNeeded bool   `json:"multisig_import_needed"`
	PerSubaddress        []struct {
		AddressIndex      uint32 `json:"address_index"`
		Address           string `json:"address"`
		Balance           uint64 `json:"balance"`
		UnlockedBalance   uint64 `json:"unlocked_balance"`
		Label             string `json:"label"`
		NumUnspentOutputs uint64 `json:"num_unspent_outputs"`
	} `json:"per_subaddress"`
}

// GetAccounts lists accounts, restricted to the given tag when not empty
func (w *Wallet) GetAccounts(ctx context.Context, tag string) ([]*Account, error) {
	params := map[string]any{}
	if tag != "" {
		params["tag"] = tag
	}

	var result getAccountsResult
	if err := w.call(ctx, "get_accounts", params, &result); err != nil {
		return nil, err
	}

	accounts := make([]*Account, 0, len(result.SubaddressAccounts))
	for _, a := range result.SubaddressAccounts {
		accounts = append(accounts, &Account{
			Index:           a.AccountIndex,
			PrimaryAddress:  a.BaseAddress,
			Label:           a.Label,
			Tag:             a.Tag,
			Balance:         a.Balance,
			UnlockedBalance: a.UnlockedBalance,
		})
	}
	return accounts, nil
}

func (w *Wallet) GetAccount(ctx context.Context, index uint32) (*Account, error) {
	accounts, err := w.GetAccounts(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Index == index {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %d: %w", index, ErrNotFound)
}

func (w *Wallet) CreateAccount(ctx context.Context, label string) (*Account, error) {
	var result struct {
		AccountIndex uint32 `json:"account_index"`
		Address      string `json:"address"`
	}
	if err := w.call(ctx, "create_account", map[string]any{"label": label}, &result); err != nil {
		return nil, err
	}
	return &Account{
		Index:          result.AccountIndex,
		PrimaryAddress: result.Address,
		Label:          label,
	}, nil
}

func (w *Wallet) TagAccounts(ctx context.Context, tag string, accounts []uint32) error {
	return w.call(ctx, "tag_accounts", map[string]any{"tag": tag, "accounts": accounts}, nil)
}

func (w *Wallet) UntagAccounts(ctx context.Context, accounts []uint32) error {
	return w.call(ctx, "untag_accounts", map[string]any{"accounts": accounts}, nil)
}

// GetSubaddresses lists subaddresses of an account, all of them when indices is empty, with their balances
func (w *Wallet) GetSubaddresses(ctx context.Context, account uint32, indices []uint32) ([]*Subaddress, error) {
	params := map[string]any{"account_index": account}
	if len(indices) > 0 {
		params["address_index"] = indices
	}

	var addresses struct {
		Addresses []struct {
			Address      string `json:"address"`
			AddressIndex uint32 `json:"address_index"`
			Label        string `json:"label"`
			Used         bool   `json:"used"`
		} `json:"addresses"`
	}
	if err := w.call(ctx, "get_address", params, &addresses); err != nil {
		return nil, err
	}

	subaddresses := make([]*Subaddress, 0, len(addresses.Addresses))
	for _, a := range addresses.Addresses {
		subaddresses = append(subaddresses, &Subaddress{
			AccountIndex: account,
			Index:        a.AddressIndex,
			Address:      a.Address,
			Label:        a.Label,
			Used:         a.Used,
		})
	}

	var balance getBalanceResult
	if err := w.call(ctx, "get_balance", &getBalanceParams{AccountIndex: account, AddressIndices: indices}, &balance); err != nil {
		return nil, err
	}

	for _, b := range balance.PerSubaddress {
		i := slices.IndexFunc(subaddresses, func(s *Subaddress) bool {
			return s.Index == b.AddressIndex
		})
		if i < 0 {
			continue
		}
		s := subaddresses[i]
		if s.Address != b.Address {
			return nil, inconsistent("subaddress %d/%d reported as %s and %s", account, s.Index, s.Address, b.Address)
		}
		s.Balance = b.Balance
		s.UnlockedBalance = b.UnlockedBalance
		s.NumUnspentOutputs = b.NumUnspentOutputs
		s.MultisigImportNeeded = balance.MultisigImportNeeded
	}

	return subaddresses, nil
}

func (w *Wallet) GetSubaddress(ctx context.Context, account, index uint32) (*Subaddress, error) {
	subaddresses, err := w.GetSubaddresses(ctx, account, []uint32{index})
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(subaddresses, func(s *Subaddress) bool {
		return s.Index == index
	})
	if i < 0 {
		return nil, fmt.Errorf("subaddress %d/%d: %w", account, index, ErrNotFound)
	}
	return subaddresses[i], nil
}

func (w *Wallet) CreateSubaddress(ctx context.Context, account uint32, label string) (*Subaddress, error) {
	var result struct {
		Address      string `json:"address"`
		AddressIndex uint32 `json:"address_index"`
	}
	if err := w.call(ctx, "create_address", map[string]any{"account_index": account, "label": label}, &result); err != nil {
		return nil, err
	}
	return &Subaddress{
		AccountIndex: account,
		Index:        result.AddressIndex,
		Address:      result.Address,
		Label:        label,
	}, nil
}

func (w *Wallet) GetPrimaryAddress(ctx context.Context) (string, error) {
	var result struct {
		Address string `json:"address"`
	}
	if err := w.call(ctx, "get_address", map[string]any{"account_index": 0}, &result); err != nil {
		return "", err
	}
	return result.Address, nil
}

func (w *Wallet) balance(ctx context.Context, account uint32) (*getBalanceResult, error) {
	var result getBalanceResult
	if err := w.call(ctx, "get_balance", &getBalanceParams{AccountIndex: account}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (w *Wallet) GetBalance(ctx context.Context, account uint32) (uint64, error) {
	b, err := w.balance(ctx, account)
	if err != nil {
		return 0, err
	}
	return b.Balance, nil
}

func (w *Wallet) GetUnlockedBalance(ctx context.Context, account uint32) (uint64, error) {
	b, err := w.balance(ctx, account)
	if err != nil {
		return 0, err
	}
	return b.UnlockedBalance, nil
}

func (w *Wallet) GetSubaddressBalance(ctx context.Context, account, index uint32) (balance, unlocked uint64, err error) {
	s, err := w.GetSubaddress(ctx, account, index)
	if err != nil {
		return 0, 0, err
	}
	return s.Balance, s.UnlockedBalance, nil
}

func (w *Wallet) IsMultisigImportNeeded(ctx context.Context) (bool, error) {
	b, err := w.balance(ctx, 0)
	if err != nil {
		return false, err
	}
	return b.MultisigImportNeeded, nil
}
