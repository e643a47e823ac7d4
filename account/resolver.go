package account

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/gagliardetto/solana-go"

	"github.com/fogolabs/solwrap/rpc"
)

var (
	// ErrNoDestinationAccount indicates the owner holds no token account for
	// the wrapped mint. Wrapping requires an existing destination; the
	// pipeline never creates a persistent one.
	ErrNoDestinationAccount = errors.New("no wrapped-token account exists for owner")

	// ErrNoFundedSource indicates no token account for the wrapped mint
	// holds a positive balance to unwrap from.
	ErrNoFundedSource = errors.New("no wrapped-token account holds a positive balance")
)

// Resolver locates the token account an operation targets. When several
// accounts qualify, the one with the lowest address (byte order) wins, so
// the choice does not depend on the node's response ordering.
type Resolver struct {
	gw   Gateway
	mint solana.PublicKey
}

// NewResolver returns a resolver for the given wrapped mint.
func NewResolver(gw Gateway, mint solana.PublicKey) *Resolver {
	return &Resolver{gw: gw, mint: mint}
}

// WrapDestination returns the existing token account wrapped funds are
// credited to.
func (r *Resolver) WrapDestination(ctx context.Context, owner solana.PublicKey) (solana.PublicKey, error) {
	accounts, err := r.gw.TokenAccountsByOwner(ctx, owner, r.mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if len(accounts) == 0 {
		return solana.PublicKey{}, ErrNoDestinationAccount
	}
	return lowestAddress(accounts), nil
}

// UnwrapSource returns a token account holding a positive wrapped balance to
// draw the unwrap amount from.
func (r *Resolver) UnwrapSource(ctx context.Context, owner solana.PublicKey) (solana.PublicKey, error) {
	accounts, err := r.gw.TokenAccountsByOwner(ctx, owner, r.mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	funded := accounts[:0:0]
	for _, a := range accounts {
		if a.Amount > 0 {
			funded = append(funded, a)
		}
	}
	if len(funded) == 0 {
		return solana.PublicKey{}, ErrNoFundedSource
	}
	return lowestAddress(funded), nil
}

func lowestAddress(accounts []rpc.TokenAccount) solana.PublicKey {
	sorted := make([]rpc.TokenAccount, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Address[:], sorted[j].Address[:]) < 0
	})
	return sorted[0].Address
}
