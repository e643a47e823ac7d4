// Package solwrap converts between a ledger's native coin and its wrapped
// SPL-token representation. It builds, signs and submits the atomic
// create→initialize→transfer→close instruction sequence around a short-lived
// auxiliary token account, then reconciles balances before and after.
//
// The Service type is the entry point; the rpc, account, wrap and submit
// subpackages hold the individual pipeline stages.
package solwrap

import "fmt"

// wrappedNativeMint is the mint whose token accounts release their balance
// as native currency when closed. Shared by every SVM network.
const wrappedNativeMint = "So11111111111111111111111111111111111111112"

// Network carries the per-network constants injected into the RPC gateway
// and the transaction builder.
type Network struct {
	// Name is the network identifier (e.g. "fogo-testnet").
	Name string

	// RPCURL is the HTTPS JSON-RPC endpoint of the ledger node.
	RPCURL string

	// ExplorerTxURL is the explorer prefix a transaction signature is
	// appended to for user-visible links.
	ExplorerTxURL string

	// WrappedMint is the base58 mint address of the wrapped native token.
	WrappedMint string

	// Decimals is the native coin's decimal count (lamports per coin = 10^Decimals).
	Decimals uint8

	// Commitment is the finality level used for queries and preflight.
	Commitment string
}

// Network presets. Addresses verified against the public cluster endpoints.
var (
	FogoTestnet = Network{
		Name:          "fogo-testnet",
		RPCURL:        "https://testnet.fogo.io/",
		ExplorerTxURL: "https://fogoscan.com/tx/",
		WrappedMint:   wrappedNativeMint,
		Decimals:      9,
		Commitment:    "finalized",
	}

	SolanaMainnet = Network{
		Name:          "solana-mainnet",
		RPCURL:        "https://api.mainnet-beta.solana.com",
		ExplorerTxURL: "https://explorer.solana.com/tx/",
		WrappedMint:   wrappedNativeMint,
		Decimals:      9,
		Commitment:    "finalized",
	}

	SolanaDevnet = Network{
		Name:          "solana-devnet",
		RPCURL:        "https://api.devnet.solana.com",
		ExplorerTxURL: "https://explorer.solana.com/tx/",
		WrappedMint:   wrappedNativeMint,
		Decimals:      9,
		Commitment:    "finalized",
	}
)

var networksByName = map[string]Network{
	FogoTestnet.Name:   FogoTestnet,
	SolanaMainnet.Name: SolanaMainnet,
	SolanaDevnet.Name:  SolanaDevnet,
}

// LookupNetwork returns the preset for the given network name.
func LookupNetwork(name string) (Network, error) {
	n, ok := networksByName[name]
	if !ok {
		return Network{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
	return n, nil
}

// NetworkNames lists the available preset names.
func NetworkNames() []string {
	names := make([]string, 0, len(networksByName))
	for name := range networksByName {
		names = append(names, name)
	}
	return names
}
