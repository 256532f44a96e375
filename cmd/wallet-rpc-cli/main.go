package main

import (
	"fmt"
	"os"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/client"
	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/wallet"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	"github.com/urfave/cli/v2"
)

var (
	// set via ldflags
	version = "dev"
	commit  = "unknown"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "wallet-rpc-cli",
		Usage: "Query and operate a monero-wallet-rpc instance",
		Description: `Every command prints JSON. Use --query to filter the output with a jq expression, e.g.

   wallet-rpc-cli transfers --out=false --query '.[] | select(.height > 3000000) | .id'`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "monero-wallet-rpc address",
				EnvVars: []string{"MONERO_WALLET_RPC_URL"},
				Value:   client.DefaultURL,
			},
			&cli.StringFlag{
				Name:    "rpc-user",
				Usage:   "digest authentication username, as in --rpc-login",
				EnvVars: []string{"MONERO_WALLET_RPC_USER"},
			},
			&cli.StringFlag{
				Name:    "rpc-password",
				Usage:   "digest authentication password",
				EnvVars: []string{"MONERO_WALLET_RPC_PASSWORD"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "overall timeout of each RPC call",
				EnvVars: []string{"MONERO_WALLET_RPC_TIMEOUT"},
				Value:   client.DefaultTimeout,
			},
			&cli.StringFlag{
				Name:    "network",
				Usage:   "reject addresses outside this network: mainnet, testnet or stagenet",
				EnvVars: []string{"MONERO_WALLET_RPC_NETWORK"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "error, info, notice or debug",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "shorthand for --log-level=debug",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail when wallet responses disagree about a transaction instead of keeping the first value",
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "jq expression applied to the JSON output",
			},
		},
		Before: func(c *cli.Context) error {
			utils.LogWriter = c.App.ErrWriter
			level := c.String("log-level")
			if c.Bool("debug") {
				level = "debug"
			}
			l, err := utils.ParseLogLevel(level)
			if err != nil {
				return err
			}
			utils.GlobalLogLevel = l
			return nil
		},
		Commands: []*cli.Command{
			heightCommand(),
			balanceCommand(),
			accountsCommand(),
			subaddressesCommand(),
			transfersCommand(),
			transferCommand(),
			sweepAllCommand(),
			sweepDustCommand(),
			keyImagesCommand(),
			addressBookCommand(),
			notesCommand(),
			addressCommand(),
		},
	}
}

// newWallet builds a wallet from the global flags
func newWallet(c *cli.Context) (*wallet.Wallet, error) {
	cfg := &client.Config{
		URL:      c.String("rpc-url"),
		Username: c.String("rpc-user"),
		Password: c.String("rpc-password"),
		Timeout:  c.Duration("timeout"),
	}
	if name := c.String("network"); name != "" {
		network, err := client.ParseNetwork(name)
		if err != nil {
			return nil, err
		}
		cfg.Network = network
	}

	var opts []wallet.Option
	if c.Bool("strict") {
		opts = append(opts, wallet.WithMergePolicy(wallet.MergeStrict))
	}
	return client.NewWallet(cfg, opts...)
}

func main() {
	app := newApp()
	app.ErrWriter = os.Stderr
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%s", err)
	}
}
