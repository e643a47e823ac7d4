// Package submit broadcasts signed transactions and waits for them to reach
// a target commitment level. Broadcast is a one-shot: a rejected or lost
// transaction is surfaced, never resubmitted, because a second attempt could
// double-fund the ephemeral account before the first is observed.
package submit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/fogolabs/solwrap/retry"
	"github.com/fogolabs/solwrap/rpc"
)

var (
	// ErrConfirmationTimeout indicates the transaction did not reach the
	// target commitment before the poll budget ran out. The transaction may
	// still land afterwards; the caller must re-check before retrying.
	ErrConfirmationTimeout = errors.New("transaction not confirmed before deadline")

	// ErrTransactionFailed indicates the ledger executed the transaction
	// and it failed; the raw error payload is attached.
	ErrTransactionFailed = errors.New("transaction failed on ledger")

	// errNotConfirmed drives the poll loop; it never escapes this package.
	errNotConfirmed = errors.New("transaction not yet confirmed")
)

// commitmentRank orders finality levels so "at least confirmed" queries work.
var commitmentRank = map[string]int{
	"processed": 1,
	"confirmed": 2,
	"finalized": 3,
}

// Gateway is the slice of the RPC surface this package uses.
type Gateway interface {
	SendTransaction(ctx context.Context, txBase64 string) (solana.Signature, error)
	SignatureStatuses(ctx context.Context, sigs []solana.Signature) ([]*rpc.SignatureStatus, error)
}

// Submitter broadcasts serialized transactions and polls for confirmation.
type Submitter struct {
	gw         Gateway
	commitment string
	poll       retry.Config
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithPollConfig overrides the confirmation poll schedule.
func WithPollConfig(cfg retry.Config) Option {
	return func(s *Submitter) { s.poll = cfg }
}

// New creates a submitter targeting the given commitment level.
func New(gw Gateway, commitment string, opts ...Option) *Submitter {
	s := &Submitter{
		gw:         gw,
		commitment: commitment,
		poll: retry.Config{
			MaxAttempts:  20,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     4 * time.Second,
			Multiplier:   1.5,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit broadcasts the signed transaction bytes with preflight simulation
// enabled and returns the resulting signature. Ledger rejections come back
// verbatim as *rpc.Error.
func (s *Submitter) Submit(ctx context.Context, raw []byte) (solana.Signature, error) {
	if len(raw) == 0 {
		return solana.Signature{}, errors.New("submit: empty transaction")
	}
	return s.gw.SendTransaction(ctx, base64.StdEncoding.EncodeToString(raw))
}

// AwaitConfirmation polls the signature status until the target commitment
// is reached, the transaction fails on-ledger, or the poll budget runs out.
// Status reads are idempotent, so transient transport errors are retried
// within the same budget.
func (s *Submitter) AwaitConfirmation(ctx context.Context, sig solana.Signature) error {
	target, ok := commitmentRank[s.commitment]
	if !ok {
		return fmt.Errorf("submit: unknown commitment %q", s.commitment)
	}

	_, err := retry.Do(ctx, s.poll, s.retryable, func() (struct{}, error) {
		statuses, err := s.gw.SignatureStatuses(ctx, []solana.Signature{sig})
		if err != nil {
			return struct{}{}, err
		}
		if len(statuses) == 0 || statuses[0] == nil {
			return struct{}{}, errNotConfirmed
		}

		st := statuses[0]
		if st.Failed() {
			return struct{}{}, fmt.Errorf("%w: %s: %s", ErrTransactionFailed, sig, st.Err)
		}
		if commitmentRank[st.ConfirmationStatus] < target {
			return struct{}{}, errNotConfirmed
		}
		return struct{}{}, nil
	})

	if errors.Is(err, errNotConfirmed) {
		return fmt.Errorf("%w: %s", ErrConfirmationTimeout, sig)
	}
	return err
}

// retryable: keep polling while unconfirmed, and ride out transport blips.
// An on-ledger failure or a ledger-level rejection of the query is final.
func (s *Submitter) retryable(err error) bool {
	if errors.Is(err, ErrTransactionFailed) {
		return false
	}
	var ledgerErr *rpc.Error
	return !errors.As(err, &ledgerErr)
}
