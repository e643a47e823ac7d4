// Package wrap builds and signs the atomic instruction sequences that
// convert between the native coin and its wrapped token. Both directions
// pivot on an ephemeral token account created and closed within the same
// transaction.
package wrap

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// TokenAccountSize is the byte size of an SPL token account; the rent
// exemption deposit is quoted for this size.
const TokenAccountSize = 165

// Instruction discriminators, encoded by hand on the wire.
const (
	systemCreateAccount uint32 = 0

	tokenInitializeAccount byte = 1
	tokenCloseAccount      byte = 9
	tokenTransferChecked   byte = 12
)

// newCreateAccount funds and allocates a new account owned by the given
// program. Both the funder and the new account must sign.
func newCreateAccount(funder, newAccount solana.PublicKey, lamports, space uint64, owningProgram solana.PublicKey) solana.Instruction {
	data := make([]byte, 0, 4+8+8+32)
	data = binary.LittleEndian.AppendUint32(data, systemCreateAccount)
	data = binary.LittleEndian.AppendUint64(data, lamports)
	data = binary.LittleEndian.AppendUint64(data, space)
	data = append(data, owningProgram.Bytes()...)

	return solana.NewInstruction(
		solana.SystemProgramID,
		solana.AccountMetaSlice{
			solana.Meta(funder).WRITE().SIGNER(),
			solana.Meta(newAccount).WRITE().SIGNER(),
		},
		data,
	)
}

// newInitializeAccount turns a freshly created account into a token account
// for the given mint. Any native lamports above the rent deposit become the
// account's wrapped balance.
func newInitializeAccount(account, mint, owner solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.TokenProgramID,
		solana.AccountMetaSlice{
			solana.Meta(account).WRITE(),
			solana.Meta(mint),
			solana.Meta(owner),
			solana.Meta(solana.SysVarRentPubkey),
		},
		[]byte{tokenInitializeAccount},
	)
}

// newTransferChecked moves amount between two token accounts of the same
// mint, with the mint's decimals asserted on-ledger.
// Data format: [12, amount (u64 LE), decimals (u8)].
func newTransferChecked(source, mint, destination, owner solana.PublicKey, amount uint64, decimals uint8) solana.Instruction {
	data := make([]byte, 0, 1+8+1)
	data = append(data, tokenTransferChecked)
	data = binary.LittleEndian.AppendUint64(data, amount)
	data = append(data, decimals)

	return solana.NewInstruction(
		solana.TokenProgramID,
		solana.AccountMetaSlice{
			solana.Meta(source).WRITE(),
			solana.Meta(mint),
			solana.Meta(destination).WRITE(),
			solana.Meta(owner).SIGNER(),
		},
		data,
	)
}

// newCloseAccount closes a token account and pays its entire lamport balance
// to destination. For the wrapped-native mint this releases the wrapped
// balance as native currency.
func newCloseAccount(account, destination, owner solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.TokenProgramID,
		solana.AccountMetaSlice{
			solana.Meta(account).WRITE(),
			solana.Meta(destination).WRITE(),
			solana.Meta(owner).SIGNER(),
		},
		[]byte{tokenCloseAccount},
	)
}
