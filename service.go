package solwrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/fogolabs/solwrap/account"
	"github.com/fogolabs/solwrap/retry"
	"github.com/fogolabs/solwrap/rpc"
	"github.com/fogolabs/solwrap/submit"
	"github.com/fogolabs/solwrap/wrap"
)

// Gateway is the full RPC surface the pipeline consumes. *rpc.Client
// implements it; tests substitute fakes.
type Gateway interface {
	Balance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenAccountsByOwner(ctx context.Context, owner, mint solana.PublicKey) ([]rpc.TokenAccount, error)
	MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
	LatestBlockhash(ctx context.Context) (rpc.BlockhashResult, error)
	SendTransaction(ctx context.Context, txBase64 string) (solana.Signature, error)
	SignatureStatuses(ctx context.Context, sigs []solana.Signature) ([]*rpc.SignatureStatus, error)
}

// Balances is a native/wrapped balance snapshot, in lamports.
type Balances struct {
	Native  uint64
	Wrapped uint64
}

// Result reports one completed wrap or unwrap.
type Result struct {
	Signature   solana.Signature
	ExplorerURL string
	Before      Balances
	After       Balances
}

// NativeDelta is the native balance change; negative for a wrap (amount plus
// fees leave the native balance).
func (r Result) NativeDelta() int64 { return int64(r.After.Native) - int64(r.Before.Native) }

// WrappedDelta is the wrapped balance change.
func (r Result) WrappedDelta() int64 { return int64(r.After.Wrapped) - int64(r.Before.Wrapped) }

// Service runs the wrap/unwrap pipeline for one owner on one network:
// balance gate → account resolution → build → sign → submit → confirm →
// balance reconciliation.
type Service struct {
	network   Network
	owner     solana.PrivateKey
	ownerPub  solana.PublicKey
	gw        Gateway
	tracker   *account.Tracker
	resolver  *account.Resolver
	builder   wrap.Builder
	submitter *submit.Submitter
	log       *slog.Logger

	readRetry      retry.Config
	confirmTimeout time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service) error

// WithGateway substitutes the RPC gateway (tests, custom transports).
func WithGateway(gw Gateway) ServiceOption {
	return func(s *Service) error {
		s.gw = gw
		return nil
	}
}

// WithLogger sets the logger; defaults to slog.Default().
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) error {
		s.log = log
		return nil
	}
}

// WithSubmitter substitutes the submitter, mainly to tighten the poll
// schedule in tests.
func WithSubmitter(sub *submit.Submitter) ServiceOption {
	return func(s *Service) error {
		s.submitter = sub
		return nil
	}
}

// WithConfirmTimeout caps the wall-clock time spent waiting for a submitted
// transaction to reach the target commitment. Zero means attempt-bounded only.
func WithConfirmTimeout(d time.Duration) ServiceOption {
	return func(s *Service) error {
		s.confirmTimeout = d
		return nil
	}
}

// NewService wires the pipeline for the given network and owner key.
func NewService(network Network, owner solana.PrivateKey, opts ...ServiceOption) (*Service, error) {
	if len(owner) == 0 {
		return nil, fmt.Errorf("%w: owner", wrap.ErrMissingSigner)
	}
	mint, err := solana.PublicKeyFromBase58(network.WrappedMint)
	if err != nil {
		return nil, fmt.Errorf("invalid wrapped mint %q: %w", network.WrappedMint, err)
	}

	s := &Service{
		network:   network,
		owner:     owner,
		ownerPub:  owner.PublicKey(),
		builder:   wrap.Builder{Mint: mint, Decimals: network.Decimals},
		log:       slog.Default(),
		readRetry: retry.DefaultConfig,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.gw == nil {
		client, err := rpc.NewClient(network.RPCURL, rpc.WithCommitment(network.Commitment))
		if err != nil {
			return nil, err
		}
		s.gw = client
	}
	s.tracker = account.NewTracker(s.gw, mint)
	s.resolver = account.NewResolver(s.gw, mint)
	if s.submitter == nil {
		s.submitter = submit.New(s.gw, network.Commitment)
	}
	return s, nil
}

// Owner returns the owner's address.
func (s *Service) Owner() solana.PublicKey { return s.ownerPub }

// Balances returns the owner's current native and wrapped balances.
func (s *Service) Balances(ctx context.Context) (Balances, error) {
	native, err := s.tracker.NativeBalance(ctx, s.ownerPub)
	if err != nil {
		return Balances{}, err
	}
	wrapped, err := s.tracker.WrappedBalance(ctx, s.ownerPub)
	if err != nil {
		return Balances{}, err
	}
	return Balances{Native: native, Wrapped: wrapped}, nil
}

// Wrap converts amount native lamports into wrapped tokens credited to the
// owner's existing token account.
func (s *Service) Wrap(ctx context.Context, amount uint64) (*Result, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	before, err := s.Balances(ctx)
	if err != nil {
		return nil, err
	}
	if before.Native < amount {
		return nil, fmt.Errorf("%w: native balance %d < %d", ErrInsufficientFunds, before.Native, amount)
	}

	destination, err := s.resolver.WrapDestination(ctx, s.ownerPub)
	if err != nil {
		return nil, err
	}
	s.log.Info("wrapping", "owner", s.ownerPub, "destination", destination, "amount", amount)

	set, eph, err := s.prepare(ctx, func(rent uint64) (wrap.InstructionSet, *wrap.Ephemeral) {
		return s.builder.Wrap(s.ownerPub, destination, amount, rent)
	})
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, set, eph, before)
}

// Unwrap converts amount wrapped tokens back into native lamports paid to
// the owner.
func (s *Service) Unwrap(ctx context.Context, amount uint64) (*Result, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	before, err := s.Balances(ctx)
	if err != nil {
		return nil, err
	}
	if before.Wrapped < amount {
		return nil, fmt.Errorf("%w: wrapped balance %d < %d", ErrInsufficientFunds, before.Wrapped, amount)
	}

	source, err := s.resolver.UnwrapSource(ctx, s.ownerPub)
	if err != nil {
		return nil, err
	}
	s.log.Info("unwrapping", "owner", s.ownerPub, "source", source, "amount", amount)

	set, eph, err := s.prepare(ctx, func(rent uint64) (wrap.InstructionSet, *wrap.Ephemeral) {
		return s.builder.Unwrap(s.ownerPub, source, amount, rent)
	})
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, set, eph, before)
}

// prepare fetches the rent minimum and hands it to the direction-specific
// builder call.
func (s *Service) prepare(ctx context.Context, build func(rent uint64) (wrap.InstructionSet, *wrap.Ephemeral)) (wrap.InstructionSet, *wrap.Ephemeral, error) {
	rent, err := s.gw.MinimumBalanceForRentExemption(ctx, wrap.TokenAccountSize)
	if err != nil {
		return wrap.InstructionSet{}, nil, err
	}
	set, eph := build(rent)
	return set, eph, nil
}

// execute signs, submits, confirms, and reconciles balances. The blockhash
// is fetched last so the validity window starts as late as possible.
func (s *Service) execute(ctx context.Context, set wrap.InstructionSet, eph *wrap.Ephemeral, before Balances) (*Result, error) {
	blockhash, err := s.gw.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := wrap.SignRequest(wrap.Request{
		Instructions:    set,
		FeePayer:        s.ownerPub,
		RecentBlockhash: blockhash.Blockhash,
	}, s.owner, eph)
	if err != nil {
		return nil, err
	}

	sig, err := s.submitter.Submit(ctx, raw)
	if err != nil {
		return nil, err
	}
	s.log.Info("transaction submitted", "signature", sig, "explorer", s.network.ExplorerTxURL+sig.String())

	confirmCtx := ctx
	if s.confirmTimeout > 0 {
		var cancel context.CancelFunc
		confirmCtx, cancel = context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()
	}
	if err := s.submitter.AwaitConfirmation(confirmCtx, sig); err != nil {
		return nil, err
	}

	// Post-submit reads are idempotent; ride out transient node hiccups.
	after, err := retry.Do(ctx, s.readRetry, func(err error) bool { return true }, func() (Balances, error) {
		return s.Balances(ctx)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("balances reconciled",
		"native_before", before.Native, "native_after", after.Native,
		"wrapped_before", before.Wrapped, "wrapped_after", after.Wrapped)

	return &Result{
		Signature:   sig,
		ExplorerURL: s.network.ExplorerTxURL + sig.String(),
		Before:      before,
		After:       after,
	}, nil
}
