package wallet

import (
	"fmt"
	"time"

	"github.com/clawforge/web3wallet/pkg/config"
	"github.com/clawforge/web3wallet/pkg/keystore"
	"github.com/clawforge/web3wallet/pkg/logger"
)

// Manager orchestrates the mnemonic engine, the HD derivation engine and the
// keystore into the create/import/load/derive operations the CLI exposes.
// Each operation either fully succeeds or leaves no partial state behind.
type Manager struct {
	cfg   *config.Config
	store *keystore.Store
}

// NewManager wires a manager to the configured wallet directory.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		cfg:   cfg,
		store: keystore.NewStore(cfg.WalletDir),
	}
}

// Store exposes the underlying keystore store, mainly for listing.
func (m *Manager) Store() *keystore.Store {
	return m.store
}

// CreateOptions parameterizes Create. Password is only required when
// SaveAlias is set.
type CreateOptions struct {
	Words      int
	Network    string
	Passphrase string
	SaveAlias  string
	Password   []byte
	Force      bool
}

// CreateResult reports a freshly generated wallet. The mnemonic is shown
// exactly once; it is not retained by the manager.
type CreateResult struct {
	Mnemonic  string `json:"mnemonic"`
	Address   string `json:"address"`
	Path      string `json:"derivation_path"`
	Network   string `json:"network"`
	ChainID   uint64 `json:"chain_id"`
	WalletTyp string `json:"wallet_type"`
	SavedTo   string `json:"saved_to,omitempty"`
}

// Create generates a new HD wallet and optionally persists it encrypted.
func (m *Manager) Create(opts CreateOptions) (*CreateResult, error) {
	network := m.networkOrDefault(opts.Network)

	// Password policy runs before any entropy or KDF work.
	if opts.SaveAlias != "" {
		if err := ValidatePassword(opts.Password); err != nil {
			return nil, err
		}
	}

	words := opts.Words
	if words == 0 {
		words = config.DefaultWordCount
	}
	mnemonic, err := GenerateMnemonic(words)
	if err != nil {
		return nil, err
	}

	w, err := FromMnemonic(mnemonic, opts.Passphrase, network)
	if err != nil {
		return nil, err
	}
	defer w.Wipe()

	result := &CreateResult{
		Mnemonic:  mnemonic,
		Address:   w.Address.Hex(),
		Path:      w.BasePath + "/0",
		Network:   network,
		WalletTyp: string(w.Type),
	}
	result.ChainID, _ = config.ChainID(network)

	if opts.SaveAlias != "" {
		path, err := m.save(w, opts.SaveAlias, opts.Password, opts.Force)
		if err != nil {
			return nil, err
		}
		result.SavedTo = path
	}

	logger.InfoCF("wallet", "Wallet created", map[string]any{
		"address": result.Address,
		"network": network,
		"words":   words,
		"saved":   result.SavedTo != "",
	})
	return result, nil
}

// ImportOptions parameterizes Import. Exactly one of Mnemonic or PrivateKey
// must be set.
type ImportOptions struct {
	Mnemonic   string
	PrivateKey string
	Network    string
	Passphrase string
	SaveAlias  string
	Password   []byte
	Force      bool
}

// ImportResult reports an imported wallet.
type ImportResult struct {
	Address   string `json:"address"`
	Network   string `json:"network"`
	ChainID   uint64 `json:"chain_id"`
	WalletTyp string `json:"wallet_type"`
	SavedTo   string `json:"saved_to,omitempty"`
}

// Import builds a wallet from an existing mnemonic or raw private key. A
// private-key origin is recorded as Imported, which disables derivation.
func (m *Manager) Import(opts ImportOptions) (*ImportResult, error) {
	network := m.networkOrDefault(opts.Network)

	if opts.SaveAlias != "" {
		if err := ValidatePassword(opts.Password); err != nil {
			return nil, err
		}
	}

	var (
		w   *Wallet
		err error
	)
	switch {
	case opts.Mnemonic != "" && opts.PrivateKey != "":
		return nil, fmt.Errorf("%w: provide either a mnemonic or a private key, not both", ErrInvalidPrivateKey)
	case opts.Mnemonic != "":
		w, err = FromMnemonic(opts.Mnemonic, opts.Passphrase, network)
	case opts.PrivateKey != "":
		w, err = FromPrivateKey(opts.PrivateKey, network)
	default:
		return nil, fmt.Errorf("%w: nothing to import", ErrInvalidPrivateKey)
	}
	if err != nil {
		return nil, err
	}
	defer w.Wipe()

	result := &ImportResult{
		Address:   w.Address.Hex(),
		Network:   network,
		WalletTyp: string(w.Type),
	}
	result.ChainID, _ = config.ChainID(network)

	if opts.SaveAlias != "" {
		path, err := m.save(w, opts.SaveAlias, opts.Password, opts.Force)
		if err != nil {
			return nil, err
		}
		result.SavedTo = path
	}

	logger.InfoCF("wallet", "Wallet imported", map[string]any{
		"address": result.Address,
		"network": network,
		"type":    result.WalletTyp,
	})
	return result, nil
}

// LoadOptions parameterizes Load. With AddressOnly set no password is needed
// and the crypto block is never touched. Passphrase must repeat the BIP39
// passphrase given at creation when DeriveIndex is set.
type LoadOptions struct {
	File        string
	Password    []byte
	Passphrase  string
	AddressOnly bool
	DeriveIndex *uint32
}

// LoadResult reports a loaded wallet. Mnemonic or PrivateKey is set only
// after a successful decryption, matching the wallet type.
type LoadResult struct {
	Metadata   keystore.Metadata `json:"metadata"`
	Mnemonic   string            `json:"mnemonic,omitempty"`
	PrivateKey string            `json:"private_key,omitempty"`
	Derived    *DerivedAccount   `json:"derived,omitempty"`
}

// Load reads a keystore file. Metadata is available without a password; the
// secret requires decryption, and an HD wallet can additionally re-derive a
// specific index.
func (m *Manager) Load(opts LoadOptions) (*LoadResult, error) {
	doc, err := m.store.Load(opts.File)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Metadata: doc.Metadata}
	if opts.AddressOnly {
		return result, nil
	}

	secret, err := keystore.Decrypt(doc.Crypto, opts.Password)
	if err != nil {
		return nil, err
	}
	defer keystore.Wipe(secret)

	switch doc.Metadata.WalletType {
	case keystore.TypeHDWallet:
		result.Mnemonic = string(secret)
		if opts.DeriveIndex != nil {
			w, err := FromMnemonic(result.Mnemonic, opts.Passphrase, doc.Metadata.Network)
			if err != nil {
				return nil, err
			}
			defer w.Wipe()
			// The stored address is index 0 under the creation passphrase.
			// A different passphrase yields an unrelated wallet, so a
			// mismatch must error rather than report foreign addresses.
			if w.Address.Hex() != doc.Metadata.Address {
				return nil, ErrPassphraseMismatch
			}
			result.Derived, err = w.DeriveAccount(*opts.DeriveIndex)
			if err != nil {
				return nil, err
			}
		}
	case keystore.TypeImported:
		if opts.DeriveIndex != nil {
			return nil, ErrDerivationUnsupported
		}
		result.PrivateKey = string(secret)
	}

	logger.InfoCF("wallet", "Wallet loaded", map[string]any{
		"alias":   doc.Metadata.Alias,
		"address": doc.Metadata.Address,
	})
	return result, nil
}

// DeriveOptions parameterizes batch derivation. The seed source is either a
// raw mnemonic or a saved keystore file plus password.
type DeriveOptions struct {
	Mnemonic   string
	File       string
	Password   []byte
	Passphrase string
	StartIndex uint32
	Count      uint32
}

// DeriveResult reports a batch of derived addresses in ascending index
// order. Nothing is persisted.
type DeriveResult struct {
	Address  string           `json:"address"`
	Network  string           `json:"network"`
	Accounts []DerivedAccount `json:"accounts"`
}

// Derive performs batch derivation. Imported keystores cannot derive.
func (m *Manager) Derive(opts DeriveOptions) (*DeriveResult, error) {
	network := m.cfg.DefaultNetwork
	mnemonic := opts.Mnemonic
	storedAddress := ""

	if opts.File != "" {
		doc, err := m.store.Load(opts.File)
		if err != nil {
			return nil, err
		}
		if doc.Metadata.WalletType != keystore.TypeHDWallet {
			return nil, ErrDerivationUnsupported
		}
		secret, err := keystore.Decrypt(doc.Crypto, opts.Password)
		if err != nil {
			return nil, err
		}
		mnemonic = string(secret)
		keystore.Wipe(secret)
		network = doc.Metadata.Network
		storedAddress = doc.Metadata.Address
	}

	w, err := FromMnemonic(mnemonic, opts.Passphrase, network)
	if err != nil {
		return nil, err
	}
	defer w.Wipe()

	if storedAddress != "" && w.Address.Hex() != storedAddress {
		return nil, ErrPassphraseMismatch
	}

	accounts, err := w.DeriveAccounts(opts.StartIndex, opts.Count)
	if err != nil {
		return nil, err
	}
	return &DeriveResult{
		Address:  w.Address.Hex(),
		Network:  network,
		Accounts: accounts,
	}, nil
}

// List returns the clear metadata of every wallet in the configured
// directory. No password is required.
func (m *Manager) List() ([]keystore.Metadata, error) {
	return m.store.List()
}

// save encrypts the wallet secret and writes the keystore document.
func (m *Manager) save(w *Wallet, alias string, password []byte, force bool) (string, error) {
	kdf := keystore.DefaultArgon2()
	if m.cfg.LowMemoryKDF {
		kdf = keystore.LowMemoryArgon2()
	}

	secret := w.Secret()
	defer wipe(secret)

	crypto, err := keystore.Encrypt(secret, password, kdf)
	if err != nil {
		return "", err
	}

	doc := &keystore.Document{
		Version: keystore.FormatVersion,
		Metadata: keystore.Metadata{
			Alias:      alias,
			Address:    w.Address.Hex(),
			CreatedAt:  w.CreatedAt.Format(time.RFC3339),
			Network:    w.Network,
			WalletType: string(w.Type),
		},
		Crypto: crypto,
	}
	return m.store.Save(doc, force)
}

func (m *Manager) networkOrDefault(network string) string {
	if network == "" {
		return m.cfg.DefaultNetwork
	}
	return network
}
