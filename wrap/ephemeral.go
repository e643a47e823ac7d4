package wrap

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrEphemeralSpent indicates a second signing attempt with the same
// ephemeral keypair. Each handle co-signs exactly one transaction.
var ErrEphemeralSpent = errors.New("ephemeral keypair already spent")

// Ephemeral is a single-use keypair for the auxiliary token account that
// lives and dies inside one transaction. The private key is surrendered to
// exactly one signing call and wiped afterwards; the handle is never reused
// across operations, so the created account address can never collide.
type Ephemeral struct {
	pub   solana.PublicKey
	key   solana.PrivateKey
	spent bool
}

// NewEphemeral generates a fresh keypair.
func NewEphemeral() *Ephemeral {
	w := solana.NewWallet()
	return &Ephemeral{pub: w.PublicKey(), key: w.PrivateKey}
}

// PublicKey returns the account address. Valid even after the key is spent.
func (e *Ephemeral) PublicKey() solana.PublicKey { return e.pub }

// Spent reports whether the private key has already been surrendered.
func (e *Ephemeral) Spent() bool { return e.spent }

// take hands over the private key exactly once. The handle keeps no copy.
func (e *Ephemeral) take() (solana.PrivateKey, error) {
	if e.spent {
		return nil, ErrEphemeralSpent
	}
	key := e.key
	e.key = nil
	e.spent = true
	return key, nil
}

// wipe zeroes key material once it is no longer needed.
func wipe(key solana.PrivateKey) {
	for i := range key {
		key[i] = 0
	}
}
