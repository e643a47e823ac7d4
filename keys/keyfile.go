// Package keys loads the owner's secret key material from local storage.
// Two on-disk formats are accepted: a single line of base58 (the wallet
// export format) and the solana-keygen JSON byte array.
package keys

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

const keyLength = 64 // ed25519 seed + public key

// ErrInvalidKeyFile indicates unreadable or malformed key material.
var ErrInvalidKeyFile = errors.New("invalid key file")

// Load reads a private key from path, auto-detecting the format.
func Load(path string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFile, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidKeyFile, path)
	}

	if strings.HasPrefix(content, "[") {
		return parseKeygenJSON(content)
	}
	return parseBase58(content)
}

func parseBase58(content string) (solana.PrivateKey, error) {
	raw, err := base58.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: not base58: %v", ErrInvalidKeyFile, err)
	}
	if len(raw) != keyLength {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidKeyFile, len(raw), keyLength)
	}
	return solana.PrivateKey(raw), nil
}

func parseKeygenJSON(content string) (solana.PrivateKey, error) {
	var values []int
	if err := json.Unmarshal([]byte(content), &values); err != nil {
		return nil, fmt.Errorf("%w: not a JSON byte array: %v", ErrInvalidKeyFile, err)
	}
	if len(values) != keyLength {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidKeyFile, len(values), keyLength)
	}

	raw := make([]byte, keyLength)
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: byte %d out of range", ErrInvalidKeyFile, i)
		}
		raw[i] = byte(v)
	}
	return solana.PrivateKey(raw), nil
}
