package main

import (
	"fmt"
	"strconv"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/wallet"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	"github.com/urfave/cli/v2"
)

// walletAction wraps actions needing a wallet
func walletAction(f func(c *cli.Context, w *wallet.Wallet) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		w, err := newWallet(c)
		if err != nil {
			return err
		}
		return f(c, w)
	}
}

func heightCommand() *cli.Command {
	return &cli.Command{
		Name:  "height",
		Usage: "Print the wallet's synchronized height",
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			height, err := w.GetHeight(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]uint64{"height": height})
		}),
	}
}

type balanceOutput struct {
	Account         uint32 `json:"account"`
	Balance         uint64 `json:"balance"`
	UnlockedBalance uint64 `json:"unlocked_balance"`
	BalanceXMR      string `json:"balance_xmr"`
	UnlockedXMR     string `json:"unlocked_balance_xmr"`
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "balance",
		Usage: "Print the balance of an account",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "account", Aliases: []string{"a"}, Usage: "account index"},
		},
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			account := uint32(c.Uint("account"))
			balance, err := w.GetBalance(c.Context, account)
			if err != nil {
				return err
			}
			unlocked, err := w.GetUnlockedBalance(c.Context, account)
			if err != nil {
				return err
			}
			return printJSON(c, &balanceOutput{
				Account:         account,
				Balance:         balance,
				UnlockedBalance: unlocked,
				BalanceXMR:      utils.XMRUnits(balance),
				UnlockedXMR:     utils.XMRUnits(unlocked),
			})
		}),
	}
}

func accountsCommand() *cli.Command {
	return &cli.Command{
		Name:  "accounts",
		Usage: "List accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Usage: "only accounts with this tag"},
		},
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			accounts, err := w.GetAccounts(c.Context, c.String("tag"))
			if err != nil {
				return err
			}
			return printJSON(c, accounts)
		}),
	}
}

func subaddressesCommand() *cli.Command {
	return &cli.Command{
		Name:  "subaddresses",
		Usage: "List subaddresses of an account with their balances",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "account", Aliases: []string{"a"}, Usage: "account index"},
			&cli.UintSliceFlag{Name: "index", Usage: "only these subaddress indices"},
		},
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			subaddresses, err := w.GetSubaddresses(c.Context, uint32(c.Uint("account")), toUint32(c.UintSlice("index")))
			if err != nil {
				return err
			}
			return printJSON(c, subaddresses)
		}),
	}
}

func transfersCommand() *cli.Command {
	return &cli.Command{
		Name:  "transfers",
		Usage: "List reconciled wallet transactions",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "in", Value: true, Usage: "include incoming transactions"},
			&cli.BoolFlag{Name: "out", Value: true, Usage: "include outgoing transactions"},
			&cli.BoolFlag{Name: "pending", Value: true, Usage: "include pending transactions"},
			&cli.BoolFlag{Name: "failed", Value: true, Usage: "include failed transactions"},
			&cli.BoolFlag{Name: "pool", Value: true, Usage: "include transactions in the mempool"},
			&cli.UintFlag{Name: "account", Aliases: []string{"a"}, Usage: "account index"},
			&cli.UintSliceFlag{Name: "subaddress", Usage: "subaddress indices within the account"},
			&cli.Uint64Flag{Name: "min-height", Usage: "lowest block height, inclusive"},
			&cli.Uint64Flag{Name: "max-height", Usage: "highest block height, inclusive"},
			&cli.StringSliceFlag{Name: "txid", Usage: "transaction ids"},
			&cli.StringSliceFlag{Name: "payment-id", Usage: "payment ids, an empty value matches transactions without one"},
		},
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			filter := &wallet.TxFilter{
				Incoming: c.Bool("in"),
				Outgoing: c.Bool("out"),
				Pending:  c.Bool("pending"),
				Failed:   c.Bool("failed"),
				Mempool:  c.Bool("pool"),
			}
			if c.IsSet("account") {
				account := uint32(c.Uint("account"))
				filter.AccountIndex = &account
			}
			filter.SubaddressIndices = toUint32(c.UintSlice("subaddress"))
			if c.IsSet("min-height") {
				h := c.Uint64("min-height")
				filter.MinHeight = &h
			}
			if c.IsSet("max-height") {
				h := c.Uint64("max-height")
				filter.MaxHeight = &h
			}
			for _, s := range c.StringSlice("txid") {
				id, err := types.HashFromString(s)
				if err != nil {
					return fmt.Errorf("txid %q: %w", s, err)
				}
				filter.TxIDs = append(filter.TxIDs, id)
			}
			if c.IsSet("payment-id") {
				filter.PaymentIDs = c.StringSlice("payment-id")
			}

			txs, err := w.GetTransactions(c.Context, filter)
			if err != nil {
				return err
			}
			return printJSON(c, txs)
		}),
	}
}

func sendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.UintFlag{Name: "account", Aliases: []string{"a"}, Usage: "account to spend from"},
		&cli.UintSliceFlag{Name: "subaddress", Usage: "subaddress indices to spend from"},
		&cli.StringFlag{Name: "payment-id", Usage: "16 or 64 hex characters"},
		&cli.StringFlag{Name: "priority", Value: "default", Usage: "default, unimportant, normal, elevated or priority"},
		&cli.Uint64Flag{Name: "ring-size", Usage: "ring size, zero lets the wallet choose"},
		&cli.Uint64Flag{Name: "unlock-time", Usage: "block height or timestamp before which outputs stay locked"},
		&cli.BoolFlag{Name: "do-not-relay", Usage: "sign without broadcasting"},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Send XMR to one or more destinations",
		ArgsUsage: "ADDRESS AMOUNT [ADDRESS AMOUNT]...",
		Flags: append(sendFlags(),
			&cli.BoolFlag{Name: "split", Usage: "allow splitting the payment into several transactions"},
		),
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			args := c.Args().Slice()
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected ADDRESS AMOUNT pairs, got %d arguments", len(args))
			}
			priority, err := wallet.ParsePriority(c.String("priority"))
			if err != nil {
				return err
			}

			cfg := &wallet.SendConfig{
				AccountIndex:      uint32(c.Uint("account")),
				SubaddressIndices: toUint32(c.UintSlice("subaddress")),
				PaymentID:         c.String("payment-id"),
				Priority:          priority,
				RingSize:          c.Uint64("ring-size"),
				UnlockTime:        c.Uint64("unlock-time"),
				DoNotRelay:        c.Bool("do-not-relay"),
			}
			for i := 0; i < len(args); i += 2 {
				amount, err := utils.ParseXMRUnits(args[i+1])
				if err != nil {
					return fmt.Errorf("amount %q: %w", args[i+1], err)
				}
				cfg.Destinations = append(cfg.Destinations, wallet.Destination{Address: args[i], Amount: amount})
			}

			if c.Bool("split") {
				txs, err := w.SendSplit(c.Context, cfg)
				if err != nil {
					return err
				}
				return printJSON(c, txs)
			}
			tx, err := w.Send(c.Context, cfg)
			if err != nil {
				return err
			}
			return printJSON(c, tx)
		}),
	}
}

func sweepAllCommand() *cli.Command {
	return &cli.Command{
		Name:      "sweep-all",
		Usage:     "Send every unlocked output to one address",
		ArgsUsage: "ADDRESS",
		Flags: append(sendFlags(),
			&cli.StringFlag{Name: "below-amount", Usage: "only sweep outputs below this XMR amount"},
		),
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			if c.NArg() != 1 {
				return fmt.Errorf("destination address is required")
			}
			priority, err := wallet.ParsePriority(c.String("priority"))
			if err != nil {
				return err
			}
			cfg := &wallet.SweepConfig{
				Address:           c.Args().First(),
				AccountIndex:      uint32(c.Uint("account")),
				SubaddressIndices: toUint32(c.UintSlice("subaddress")),
				PaymentID:         c.String("payment-id"),
				Priority:          priority,
				RingSize:          c.Uint64("ring-size"),
				UnlockTime:        c.Uint64("unlock-time"),
				DoNotRelay:        c.Bool("do-not-relay"),
			}
			if s := c.String("below-amount"); s != "" {
				if cfg.BelowAmount, err = utils.ParseXMRUnits(s); err != nil {
					return fmt.Errorf("below amount %q: %w", s, err)
				}
			}
			txs, err := w.SweepAll(c.Context, cfg)
			if err != nil {
				return err
			}
			return printJSON(c, txs)
		}),
	}
}

func sweepDustCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep-dust",
		Usage: "Send unmixable outputs back to the wallet",
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			txs, err := w.SweepDust(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c, txs)
		}),
	}
}

func keyImagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "key-images",
		Usage: "Export or import signed key images",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Print signed key images",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "include key images exported before"},
				},
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					images, err := w.ExportKeyImages(c.Context, c.Bool("all"))
					if err != nil {
						return err
					}
					return printJSON(c, images)
				}),
			},
			{
				Name:      "import",
				Usage:     "Import signed key images from a JSON file as printed by export",
				ArgsUsage: "FILE",
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					if c.NArg() != 1 {
						return fmt.Errorf("key image file is required")
					}
					images, err := readKeyImages(c.Args().First())
					if err != nil {
						return err
					}
					result, err := w.ImportKeyImages(c.Context, images)
					if err != nil {
						return err
					}
					return printJSON(c, result)
				}),
			},
		},
	}
}

func addressBookCommand() *cli.Command {
	return &cli.Command{
		Name:  "address-book",
		Usage: "Manage the wallet address book",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print address book entries",
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					entries, err := w.GetAddressBook(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c, entries)
				}),
			},
			{
				Name:      "add",
				Usage:     "Add an entry",
				ArgsUsage: "ADDRESS [DESCRIPTION]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "payment-id", Usage: "16 or 64 hex characters"},
				},
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					if c.NArg() < 1 {
						return fmt.Errorf("address is required")
					}
					index, err := w.AddAddressBookEntry(c.Context, c.Args().Get(0), c.String("payment-id"), c.Args().Get(1))
					if err != nil {
						return err
					}
					return printJSON(c, map[string]uint64{"index": index})
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete an entry",
				ArgsUsage: "INDEX",
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					if c.NArg() != 1 {
						return fmt.Errorf("entry index is required")
					}
					index, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("index %q: %w", c.Args().First(), err)
					}
					return w.DeleteAddressBookEntry(c.Context, index)
				}),
			},
		},
	}
}

func notesCommand() *cli.Command {
	return &cli.Command{
		Name:  "notes",
		Usage: "Read or write transaction notes",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "TXID...",
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					ids, err := parseHashes(c.Args().Slice())
					if err != nil {
						return err
					}
					notes, err := w.GetTxNotes(c.Context, ids)
					if err != nil {
						return err
					}
					out := make(map[string]string, len(ids))
					for i, id := range ids {
						out[id.String()] = notes[i]
					}
					return printJSON(c, out)
				}),
			},
			{
				Name:      "set",
				ArgsUsage: "TXID NOTE",
				Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
					if c.NArg() != 2 {
						return fmt.Errorf("expected TXID NOTE")
					}
					ids, err := parseHashes(c.Args().Slice()[:1])
					if err != nil {
						return err
					}
					return w.SetTxNotes(c.Context, ids, []string{c.Args().Get(1)})
				}),
			},
		},
	}
}

func addressCommand() *cli.Command {
	return &cli.Command{
		Name:      "address",
		Usage:     "Print the primary address, or decode the given address without contacting the wallet",
		ArgsUsage: "[ADDRESS]",
		Action: walletAction(func(c *cli.Context, w *wallet.Wallet) error {
			if c.NArg() == 0 {
				primary, err := w.GetPrimaryAddress(c.Context)
				if err != nil {
					return err
				}
				return printJSON(c, map[string]string{"address": primary})
			}

			a, err := w.DecodeAddress(c.Args().First())
			if err != nil {
				return err
			}
			out := map[string]any{
				"address":    a.String(),
				"network":    a.BaseNetwork(),
				"subaddress": a.IsSubaddress(),
				"integrated": a.IsIntegrated(),
			}
			if a.PaymentID != nil {
				out["payment_id"] = types.Bytes(a.PaymentID[:])
			}
			return printJSON(c, out)
		}),
	}
}
