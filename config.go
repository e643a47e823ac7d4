package solwrap

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML file configuration. Every field is optional; unset
// fields fall back to the chosen network preset or a default.
type Config struct {
	// Network selects a preset ("fogo-testnet", "solana-mainnet", ...).
	Network string `yaml:"network"`

	// RPCURL overrides the preset endpoint.
	RPCURL string `yaml:"rpc_url"`

	// ExplorerTxURL overrides the preset explorer prefix.
	ExplorerTxURL string `yaml:"explorer_tx_url"`

	// Commitment overrides the preset finality level.
	Commitment string `yaml:"commitment"`

	// KeyFile is the path to the owner's secret key material.
	KeyFile string `yaml:"key_file"`

	// RequestTimeout bounds each individual RPC call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ConfirmTimeout bounds the post-submit confirmation poll.
	ConfirmTimeout time.Duration `yaml:"confirm_timeout"`
}

// DefaultConfig is the configuration used when no file is given.
var DefaultConfig = Config{
	Network:        FogoTestnet.Name,
	KeyFile:        "accounts.txt",
	RequestTimeout: 30 * time.Second,
	ConfirmTimeout: 45 * time.Second,
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Network == "" {
		c.Network = DefaultConfig.Network
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultConfig.RequestTimeout
	}
	if c.ConfirmTimeout == 0 {
		c.ConfirmTimeout = DefaultConfig.ConfirmTimeout
	}
}

// ResolveNetwork merges the config's overrides onto its network preset.
func (c *Config) ResolveNetwork() (Network, error) {
	n, err := LookupNetwork(c.Network)
	if err != nil {
		return Network{}, err
	}
	if c.RPCURL != "" {
		n.RPCURL = c.RPCURL
	}
	if c.ExplorerTxURL != "" {
		n.ExplorerTxURL = c.ExplorerTxURL
	}
	if c.Commitment != "" {
		n.Commitment = c.Commitment
	}
	return n, nil
}
