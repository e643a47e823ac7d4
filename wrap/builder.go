package wrap

import "github.com/gagliardetto/solana-go"

// InstructionSet is the ordered instruction sequence of one atomic
// transaction. The order is load-bearing: each instruction depends on
// ledger state produced by the previous one.
type InstructionSet struct {
	ixs []solana.Instruction
}

// Len returns the number of instructions.
func (s InstructionSet) Len() int { return len(s.ixs) }

// Instructions returns a copy of the sequence in execution order.
func (s InstructionSet) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, len(s.ixs))
	copy(out, s.ixs)
	return out
}

// Builder assembles wrap and unwrap instruction sequences for one mint.
type Builder struct {
	// Mint is the wrapped-native token mint.
	Mint solana.PublicKey

	// Decimals is the mint's decimal count, asserted by TransferChecked.
	Decimals uint8
}

// Wrap converts amount native lamports into wrapped tokens credited to
// destination. A fresh ephemeral account is over-funded by amount on
// creation; initializing it as a token account of the wrapped-native mint
// turns that surplus into wrapped balance, which the transfer moves to the
// real destination before the close reclaims the rent deposit.
func (b Builder) Wrap(owner, destination solana.PublicKey, amount, rentMinimum uint64) (InstructionSet, *Ephemeral) {
	eph := NewEphemeral()
	return InstructionSet{ixs: []solana.Instruction{
		newCreateAccount(owner, eph.PublicKey(), rentMinimum+amount, TokenAccountSize, solana.TokenProgramID),
		newInitializeAccount(eph.PublicKey(), b.Mint, owner),
		newTransferChecked(eph.PublicKey(), b.Mint, destination, owner, amount, b.Decimals),
		newCloseAccount(eph.PublicKey(), owner, owner),
	}}, eph
}

// Unwrap converts amount wrapped tokens held in source back into native
// lamports paid to the owner. The ephemeral account is funded with the rent
// deposit only; the transfer parks the wrapped amount in it, and closing an
// account of the wrapped-native mint releases that amount as native
// currency to the owner.
func (b Builder) Unwrap(owner, source solana.PublicKey, amount, rentMinimum uint64) (InstructionSet, *Ephemeral) {
	eph := NewEphemeral()
	return InstructionSet{ixs: []solana.Instruction{
		newCreateAccount(owner, eph.PublicKey(), rentMinimum, TokenAccountSize, solana.TokenProgramID),
		newInitializeAccount(eph.PublicKey(), b.Mint, owner),
		newTransferChecked(source, b.Mint, eph.PublicKey(), owner, amount, b.Decimals),
		newCloseAccount(eph.PublicKey(), owner, owner),
	}}, eph
}
