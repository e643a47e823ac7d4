// Package account answers read-only balance and token-account questions
// against the ledger: how much an owner holds natively and wrapped, and
// which token account a wrap or unwrap should target.
package account

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/fogolabs/solwrap/rpc"
)

// Gateway is the slice of the RPC surface this package reads from.
type Gateway interface {
	Balance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenAccountsByOwner(ctx context.Context, owner, mint solana.PublicKey) ([]rpc.TokenAccount, error)
}

// Tracker queries balances. It holds no state and performs no caching.
type Tracker struct {
	gw   Gateway
	mint solana.PublicKey
}

// NewTracker returns a tracker for the given wrapped mint.
func NewTracker(gw Gateway, mint solana.PublicKey) *Tracker {
	return &Tracker{gw: gw, mint: mint}
}

// NativeBalance returns the owner's native balance in lamports.
func (t *Tracker) NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	return t.gw.Balance(ctx, owner)
}

// WrappedBalance returns the sum of balances across every token account the
// owner holds for the wrapped mint. An owner may hold several such accounts;
// reporting only the first would under-state their funds. No accounts at all
// means a balance of zero.
func (t *Tracker) WrappedBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	accounts, err := t.gw.TokenAccountsByOwner(ctx, owner, t.mint)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, a := range accounts {
		total += a.Amount
	}
	return total, nil
}
