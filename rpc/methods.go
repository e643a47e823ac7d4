package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// TokenAccount is one parsed token account returned by the node.
type TokenAccount struct {
	Address solana.PublicKey
	Amount  uint64
}

// BlockhashResult is the value of getLatestBlockhash.
type BlockhashResult struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// SignatureStatus mirrors one entry of getSignatureStatuses. A nil entry in
// the returned slice means the node does not know the signature yet.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	ConfirmationStatus string          `json:"confirmationStatus"`
	Err                json.RawMessage `json:"err"`
}

// Failed reports whether the transaction executed and failed.
func (s *SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// MinimumBalanceForRentExemption returns the lamport deposit an account of
// the given byte size must hold to persist.
func (c *Client) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	raw, err := c.Call(ctx, MethodGetMinimumBalanceForRentExemption, []any{size})
	if err != nil {
		return 0, err
	}
	var lamports uint64
	if err := json.Unmarshal(raw, &lamports); err != nil {
		return 0, fmt.Errorf("rpc: decode rent exemption: %w", err)
	}
	return lamports, nil
}

// LatestBlockhash returns a recent block reference for transaction validity.
func (c *Client) LatestBlockhash(ctx context.Context) (BlockhashResult, error) {
	raw, err := c.Call(ctx, MethodGetLatestBlockhash, []any{map[string]any{"commitment": c.commitment}})
	if err != nil {
		return BlockhashResult{}, err
	}

	var out struct {
		Value struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return BlockhashResult{}, fmt.Errorf("rpc: decode latest blockhash: %w", err)
	}

	hash, err := solana.HashFromBase58(out.Value.Blockhash)
	if err != nil {
		return BlockhashResult{}, fmt.Errorf("rpc: invalid blockhash %q: %w", out.Value.Blockhash, err)
	}
	return BlockhashResult{Blockhash: hash, LastValidBlockHeight: out.Value.LastValidBlockHeight}, nil
}

// Balance returns the owner's native balance in lamports.
func (c *Client) Balance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	raw, err := c.Call(ctx, MethodGetBalance, []any{owner.String(), map[string]any{"commitment": c.commitment}})
	if err != nil {
		return 0, err
	}
	var out struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("rpc: decode balance: %w", err)
	}
	return out.Value, nil
}

// TokenAccountsByOwner returns every token account the owner holds for the
// given mint, in the order the node reports them.
func (c *Client) TokenAccountsByOwner(ctx context.Context, owner, mint solana.PublicKey) ([]TokenAccount, error) {
	raw, err := c.Call(ctx, MethodGetTokenAccountsByOwner, []any{
		owner.String(),
		map[string]any{"mint": mint.String()},
		map[string]any{"encoding": "jsonParsed"},
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Value []struct {
			Pubkey  string `json:"pubkey"`
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							TokenAmount struct {
								Amount string `json:"amount"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("rpc: decode token accounts: %w", err)
	}

	accounts := make([]TokenAccount, 0, len(out.Value))
	for _, entry := range out.Value {
		addr, err := solana.PublicKeyFromBase58(entry.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("rpc: invalid token account address %q: %w", entry.Pubkey, err)
		}
		amount, err := strconv.ParseUint(entry.Account.Data.Parsed.Info.TokenAmount.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("rpc: invalid token amount %q: %w",
				entry.Account.Data.Parsed.Info.TokenAmount.Amount, err)
		}
		accounts = append(accounts, TokenAccount{Address: addr, Amount: amount})
	}
	return accounts, nil
}

// SendTransaction broadcasts base64-encoded signed transaction bytes with
// preflight simulation enabled and returns the resulting signature.
func (c *Client) SendTransaction(ctx context.Context, txBase64 string) (solana.Signature, error) {
	raw, err := c.Call(ctx, MethodSendTransaction, []any{
		txBase64,
		map[string]any{
			"skipPreflight":       false,
			"preflightCommitment": c.commitment,
			"encoding":            "base64",
		},
	})
	if err != nil {
		return solana.Signature{}, err
	}

	var sig string
	if err := json.Unmarshal(raw, &sig); err != nil {
		return solana.Signature{}, fmt.Errorf("rpc: decode transaction signature: %w", err)
	}
	out, err := solana.SignatureFromBase58(sig)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("rpc: invalid transaction signature %q: %w", sig, err)
	}
	return out, nil
}

// SignatureStatuses returns the confirmation status for each signature;
// entries are nil for signatures the node has not seen.
func (c *Client) SignatureStatuses(ctx context.Context, sigs []solana.Signature) ([]*SignatureStatus, error) {
	encoded := make([]string, len(sigs))
	for i, s := range sigs {
		encoded[i] = s.String()
	}

	raw, err := c.Call(ctx, MethodGetSignatureStatuses, []any{
		encoded,
		map[string]any{"searchTransactionHistory": false},
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Value []*SignatureStatus `json:"value"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("rpc: decode signature statuses: %w", err)
	}
	return out.Value, nil
}
