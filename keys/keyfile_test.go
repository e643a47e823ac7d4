package keys

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func writeKeyFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}

func TestLoadBase58(t *testing.T) {
	wallet := solana.NewWallet()
	path := writeKeyFile(t, "accounts.txt", wallet.PrivateKey.String()+"\n")

	key, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Errorf("loaded key derives %s, want %s", key.PublicKey(), wallet.PublicKey())
	}
}

func TestLoadKeygenJSON(t *testing.T) {
	wallet := solana.NewWallet()
	// json.Marshal base64-encodes []byte, so build the array form explicitly.
	values := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		values[i] = int(b)
	}
	arr, err := json.Marshal(values)
	if err != nil {
		t.Fatal(err)
	}
	path := writeKeyFile(t, "id.json", string(arr))

	key, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Errorf("loaded key derives %s, want %s", key.PublicKey(), wallet.PublicKey())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", "   \n"},
		{"not base58", "0OIl-not-base58"},
		{"wrong length base58", "abc"},
		{"short JSON array", "[1,2,3]"},
		{"out of range byte", `[` + repeatBytes(63) + `,300]`},
		{"malformed JSON", `[1,2,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKeyFile(t, "key", tt.content)
			if _, err := Load(path); !errors.Is(err, ErrInvalidKeyFile) {
				t.Errorf("error = %v, want ErrInvalidKeyFile", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrInvalidKeyFile) {
		t.Errorf("error = %v, want ErrInvalidKeyFile", err)
	}
}

func repeatBytes(n int) string {
	out := "1"
	for i := 1; i < n; i++ {
		out += ",1"
	}
	return out
}
