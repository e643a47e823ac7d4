package wrap

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrMissingSigner indicates that key material for a required signer was
// unavailable at signing time.
var ErrMissingSigner = errors.New("required signer key unavailable")

// Request is a transaction ready to be signed: the instruction sequence, the
// fee payer, and the block reference bounding its validity window. The
// required signers are always the owner (fee payer) and the ephemeral
// account, which must co-sign to assert its own address.
type Request struct {
	Instructions    InstructionSet
	FeePayer        solana.PublicKey
	RecentBlockhash solana.Hash
}

// SignRequest signs the request with the owner key and the ephemeral
// keypair and returns the serialized, ready-to-broadcast transaction bytes.
// The ephemeral handle is consumed: its private material is wiped before
// returning, success or not.
func SignRequest(req Request, owner solana.PrivateKey, eph *Ephemeral) ([]byte, error) {
	if len(owner) == 0 {
		return nil, fmt.Errorf("%w: owner", ErrMissingSigner)
	}

	ephKey, err := eph.take()
	if err != nil {
		return nil, err
	}
	defer wipe(ephKey)

	tx, err := solana.NewTransaction(
		req.Instructions.Instructions(),
		req.RecentBlockhash,
		solana.TransactionPayer(req.FeePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("assemble transaction: %w", err)
	}

	ownerPub := owner.PublicKey()
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		switch {
		case key.Equals(ownerPub):
			return &owner
		case key.Equals(eph.PublicKey()):
			return &ephKey
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingSigner, err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}
	return raw, nil
}
