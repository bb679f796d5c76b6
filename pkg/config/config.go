package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultDerivationPath is the BIP44 base path for Ethereum accounts.
	// The address index is appended as a fifth segment.
	DefaultDerivationPath = "m/44'/60'/0'/0"

	DefaultNetwork = "mainnet"

	// DefaultWordCount is the mnemonic length used when none is requested.
	DefaultWordCount = 12

	KeystoreExtension = ".json"
)

// networks maps every supported network name to its chain ID.
var networks = map[string]uint64{
	"mainnet": 1,
	"sepolia": 11155111,
	"goerli":  5,
	"holesky": 17000,
}

// Config holds process-wide settings. It is constructed once at startup and
// passed by reference into the wallet manager.
type Config struct {
	WalletDir      string `json:"wallet_dir" env:"WEB3WALLET_WALLET_DIR"`
	DefaultNetwork string `json:"default_network" env:"WEB3WALLET_DEFAULT_NETWORK"`

	// LowMemoryKDF selects a smaller Argon2id profile for constrained hosts.
	LowMemoryKDF bool `json:"low_memory_kdf" env:"WEB3WALLET_LOW_MEMORY_KDF"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		WalletDir:      filepath.Join(home, ".web3wallet", "wallets"),
		DefaultNetwork: DefaultNetwork,
	}
}

// DefaultConfigPath returns the standard location of the config file.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".web3wallet", "config.json")
}

// LoadConfig reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if !IsSupportedNetwork(cfg.DefaultNetwork) {
		return nil, fmt.Errorf("unsupported default network %q", cfg.DefaultNetwork)
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// IsSupportedNetwork reports whether name is a known network profile.
func IsSupportedNetwork(name string) bool {
	_, ok := networks[name]
	return ok
}

// ChainID returns the numeric chain identifier for a network name.
func ChainID(name string) (uint64, bool) {
	id, ok := networks[name]
	return id, ok
}

// SupportedNetworks returns the known network names in stable order.
func SupportedNetworks() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
