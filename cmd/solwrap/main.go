// Command solwrap wraps and unwraps the native coin from the terminal:
// one-shot wrap/unwrap/balance subcommands, plus an interactive menu.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/fogolabs/solwrap"
	"github.com/fogolabs/solwrap/keys"
	"github.com/fogolabs/solwrap/rpc"
)

type cliFlags struct {
	configPath string
	network    string
	rpcURL     string
	keyFile    string
	debug      bool
}

func main() {
	var flags cliFlags

	root := &cobra.Command{
		Use:           "solwrap",
		Short:         "Wrap and unwrap the native coin via its wrapped SPL token",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVarP(&flags.network, "network", "n", "", "network preset (default fogo-testnet)")
	root.PersistentFlags().StringVar(&flags.rpcURL, "rpc-url", "", "override the RPC endpoint")
	root.PersistentFlags().StringVarP(&flags.keyFile, "key", "k", "", "path to the owner key file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logs")

	root.AddCommand(
		newWrapCmd(&flags),
		newUnwrapCmd(&flags),
		newBalanceCmd(&flags),
		newMenuCmd(&flags),
	)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newWrapCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <amount>",
		Short: "Convert native coins into wrapped tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			return env.runWrap(cmd.Context(), args[0])
		},
	}
}

func newUnwrapCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unwrap <amount>",
		Short: "Convert wrapped tokens back into native coins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			return env.runUnwrap(cmd.Context(), args[0])
		},
	}
}

func newBalanceCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show native and wrapped balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			return env.runBalance(cmd.Context())
		},
	}
}

func newMenuCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive wrap/unwrap/balance menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(flags)
			if err != nil {
				return err
			}
			return env.runMenu(cmd.Context())
		},
	}
}

// env is a fully wired invocation environment.
type env struct {
	svc      *solwrap.Service
	network  solwrap.Network
	decimals uint8
}

func setup(flags *cliFlags) (*env, error) {
	level := slog.LevelInfo
	if flags.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	cfg := solwrap.DefaultConfig
	if flags.configPath != "" {
		loaded, err := solwrap.LoadConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if flags.network != "" {
		cfg.Network = flags.network
	}
	if flags.rpcURL != "" {
		cfg.RPCURL = flags.rpcURL
	}
	if flags.keyFile != "" {
		cfg.KeyFile = flags.keyFile
	}

	network, err := cfg.ResolveNetwork()
	if err != nil {
		return nil, err
	}

	owner, err := keys.Load(cfg.KeyFile)
	if err != nil {
		return nil, err
	}

	gw, err := rpc.NewClient(network.RPCURL,
		rpc.WithCommitment(network.Commitment),
		rpc.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, err
	}

	svc, err := solwrap.NewService(network, owner,
		solwrap.WithGateway(gw),
		solwrap.WithConfirmTimeout(cfg.ConfirmTimeout),
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("pipeline ready", "network", network.Name, "rpc", network.RPCURL, "owner", svc.Owner())
	return &env{svc: svc, network: network, decimals: network.Decimals}, nil
}

func (e *env) runWrap(ctx context.Context, amountArg string) error {
	amount, err := parseAmount(amountArg, e.decimals)
	if err != nil {
		return err
	}

	res, err := e.svc.Wrap(ctx, amount)
	if err != nil {
		return err
	}
	e.report("wrapped", res)
	return nil
}

func (e *env) runUnwrap(ctx context.Context, amountArg string) error {
	amount, err := parseAmount(amountArg, e.decimals)
	if err != nil {
		return err
	}

	res, err := e.svc.Unwrap(ctx, amount)
	if err != nil {
		return err
	}
	e.report("unwrapped", res)
	return nil
}

func (e *env) runBalance(ctx context.Context) error {
	balances, err := e.svc.Balances(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Owner   : %s\n", e.svc.Owner())
	fmt.Printf("Native  : %s\n", formatAmount(balances.Native, e.decimals))
	fmt.Printf("Wrapped : %s\n", formatAmount(balances.Wrapped, e.decimals))
	return nil
}

func (e *env) report(verb string, res *solwrap.Result) {
	fmt.Printf("Successfully %s.\n", verb)
	fmt.Printf("Signature : %s\n", res.Signature)
	fmt.Printf("Explorer  : %s\n", res.ExplorerURL)
	fmt.Printf("Native    : %s -> %s (%+d lamports)\n",
		formatAmount(res.Before.Native, e.decimals), formatAmount(res.After.Native, e.decimals), res.NativeDelta())
	fmt.Printf("Wrapped   : %s -> %s (%+d lamports)\n",
		formatAmount(res.Before.Wrapped, e.decimals), formatAmount(res.After.Wrapped, e.decimals), res.WrappedDelta())
}
