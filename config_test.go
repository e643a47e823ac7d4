package solwrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
network: solana-devnet
rpc_url: https://rpc.example.test/
key_file: /secrets/owner.key
request_timeout: 10s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Network != "solana-devnet" {
		t.Errorf("network = %q", cfg.Network)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("request_timeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.ConfirmTimeout != DefaultConfig.ConfirmTimeout {
		t.Errorf("confirm_timeout = %v, want default %v", cfg.ConfirmTimeout, DefaultConfig.ConfirmTimeout)
	}

	network, err := cfg.ResolveNetwork()
	if err != nil {
		t.Fatalf("ResolveNetwork error: %v", err)
	}
	if network.RPCURL != "https://rpc.example.test/" {
		t.Errorf("rpc url = %q, override must win over the preset", network.RPCURL)
	}
	if network.ExplorerTxURL != SolanaDevnet.ExplorerTxURL {
		t.Errorf("explorer = %q, preset must fill unset fields", network.ExplorerTxURL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file must be reported")
	}
}

func TestResolveNetworkUnknown(t *testing.T) {
	cfg := Config{Network: "testnet-of-nowhere"}
	if _, err := cfg.ResolveNetwork(); !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("error = %v, want ErrUnknownNetwork", err)
	}
}

func TestLookupNetwork(t *testing.T) {
	for _, name := range NetworkNames() {
		n, err := LookupNetwork(name)
		if err != nil {
			t.Errorf("LookupNetwork(%q) error: %v", name, err)
			continue
		}
		if n.RPCURL == "" || n.WrappedMint == "" || n.Commitment == "" {
			t.Errorf("preset %q is incomplete: %+v", name, n)
		}
		if n.Decimals != 9 {
			t.Errorf("preset %q decimals = %d, want 9", name, n.Decimals)
		}
	}

	if _, err := LookupNetwork("atlantis"); !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("error = %v, want ErrUnknownNetwork", err)
	}
}
