package wrap

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

var (
	testOwner = solana.MustPublicKeyFromBase58("9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde")
	testMint  = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	testDest  = solana.MustPublicKeyFromBase58("Config1111111111111111111111111111111111111")
)

func TestNewCreateAccount(t *testing.T) {
	newAccount := solana.NewWallet().PublicKey()
	ix := newCreateAccount(testOwner, newAccount, 1_002_039_280, TokenAccountSize, solana.TokenProgramID)

	if !ix.ProgramID().Equals(solana.SystemProgramID) {
		t.Errorf("program = %s, want system program", ix.ProgramID())
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data() error: %v", err)
	}
	if len(data) != 52 {
		t.Fatalf("data length = %d, want 52", len(data))
	}
	if disc := binary.LittleEndian.Uint32(data[0:4]); disc != 0 {
		t.Errorf("discriminator = %d, want 0", disc)
	}
	if lamports := binary.LittleEndian.Uint64(data[4:12]); lamports != 1_002_039_280 {
		t.Errorf("lamports = %d, want 1002039280", lamports)
	}
	if space := binary.LittleEndian.Uint64(data[12:20]); space != TokenAccountSize {
		t.Errorf("space = %d, want %d", space, TokenAccountSize)
	}
	if !bytes.Equal(data[20:52], solana.TokenProgramID.Bytes()) {
		t.Error("owning program bytes do not match the token program")
	}

	metas := ix.Accounts()
	if len(metas) != 2 {
		t.Fatalf("accounts = %d, want 2", len(metas))
	}
	for i, meta := range metas {
		if !meta.IsSigner || !meta.IsWritable {
			t.Errorf("account %d must be a writable signer", i)
		}
	}
	if !metas[0].PublicKey.Equals(testOwner) || !metas[1].PublicKey.Equals(newAccount) {
		t.Error("account order must be funder, new account")
	}
}

func TestNewInitializeAccount(t *testing.T) {
	acct := solana.NewWallet().PublicKey()
	ix := newInitializeAccount(acct, testMint, testOwner)

	if !ix.ProgramID().Equals(solana.TokenProgramID) {
		t.Errorf("program = %s, want token program", ix.ProgramID())
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data() error: %v", err)
	}
	if !bytes.Equal(data, []byte{1}) {
		t.Errorf("data = %v, want [1]", data)
	}

	metas := ix.Accounts()
	want := []solana.PublicKey{acct, testMint, testOwner, solana.SysVarRentPubkey}
	if len(metas) != len(want) {
		t.Fatalf("accounts = %d, want %d", len(metas), len(want))
	}
	for i, pk := range want {
		if !metas[i].PublicKey.Equals(pk) {
			t.Errorf("account %d = %s, want %s", i, metas[i].PublicKey, pk)
		}
	}
	if !metas[0].IsWritable {
		t.Error("token account must be writable")
	}
}

func TestNewTransferChecked(t *testing.T) {
	source := solana.NewWallet().PublicKey()
	ix := newTransferChecked(source, testMint, testDest, testOwner, 1_000_000_000, 9)

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data() error: %v", err)
	}
	if len(data) != 10 {
		t.Fatalf("data length = %d, want 10", len(data))
	}
	if data[0] != 12 {
		t.Errorf("discriminator = %d, want 12", data[0])
	}
	if amount := binary.LittleEndian.Uint64(data[1:9]); amount != 1_000_000_000 {
		t.Errorf("amount = %d, want 1000000000", amount)
	}
	if data[9] != 9 {
		t.Errorf("decimals = %d, want 9", data[9])
	}

	metas := ix.Accounts()
	if len(metas) != 4 {
		t.Fatalf("accounts = %d, want 4", len(metas))
	}
	if !metas[0].IsWritable || !metas[2].IsWritable {
		t.Error("source and destination must be writable")
	}
	if !metas[3].IsSigner {
		t.Error("owner must sign the transfer")
	}
}

func TestNewCloseAccount(t *testing.T) {
	acct := solana.NewWallet().PublicKey()
	ix := newCloseAccount(acct, testOwner, testOwner)

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data() error: %v", err)
	}
	if !bytes.Equal(data, []byte{9}) {
		t.Errorf("data = %v, want [9]", data)
	}

	metas := ix.Accounts()
	if len(metas) != 3 {
		t.Fatalf("accounts = %d, want 3", len(metas))
	}
	if !metas[0].PublicKey.Equals(acct) || !metas[1].PublicKey.Equals(testOwner) {
		t.Error("account order must be account, destination, owner")
	}
	if !metas[2].IsSigner {
		t.Error("owner must sign the close")
	}
}
