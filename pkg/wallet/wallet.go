package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/clawforge/web3wallet/pkg/config"
	"github.com/clawforge/web3wallet/pkg/keystore"
)

// Type distinguishes mnemonic-backed wallets, which support further
// derivation, from single-key imports, which do not.
type Type string

const (
	TypeHD       Type = keystore.TypeHDWallet
	TypeImported Type = keystore.TypeImported
)

// Wallet is the in-memory aggregate of a wallet's origin secret, its first
// address and its network. Secret fields are unexported; callers go through
// Secret() and must Wipe() the wallet when done.
type Wallet struct {
	Type      Type
	Address   common.Address
	BasePath  string
	Network   string
	CreatedAt time.Time

	mnemonic   string
	privateKey []byte
	passphrase string
}

// FromMnemonic builds an HD wallet. The first address is derived at the
// canonical path (base path, address index 0).
func FromMnemonic(phrase, passphrase, network string) (*Wallet, error) {
	if !config.IsSupportedNetwork(network) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedNetwork, network,
			strings.Join(config.SupportedNetworks(), ", "))
	}
	if err := ValidateMnemonic(phrase); err != nil {
		return nil, err
	}
	phrase = normalizeMnemonic(phrase)

	seed := MnemonicToSeed(phrase, passphrase)
	defer wipe(seed)

	basePath, err := ParsePath(config.DefaultDerivationPath)
	if err != nil {
		return nil, err
	}
	kp, err := DeriveKey(seed, append(basePath, 0))
	if err != nil {
		return nil, err
	}
	defer kp.Wipe()

	return &Wallet{
		Type:       TypeHD,
		Address:    kp.Address,
		BasePath:   config.DefaultDerivationPath,
		Network:    network,
		CreatedAt:  time.Now().UTC(),
		mnemonic:   phrase,
		passphrase: passphrase,
	}, nil
}

// FromPrivateKey builds an imported wallet from a raw secp256k1 key given as
// 64 hex characters, with or without the 0x prefix.
func FromPrivateKey(hexKey, network string) (*Wallet, error) {
	if !config.IsSupportedNetwork(network) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedNetwork, network,
			strings.Join(config.SupportedNetworks(), ", "))
	}

	keyStr := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if len(keyStr) != 64 {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidPrivateKey, len(keyStr))
	}
	keyBytes, err := hex.DecodeString(keyStr)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid hex", ErrInvalidPrivateKey)
	}

	priv, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		wipe(keyBytes)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return &Wallet{
		Type:       TypeImported,
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		BasePath:   config.DefaultDerivationPath,
		Network:    network,
		CreatedAt:  time.Now().UTC(),
		privateKey: keyBytes,
	}, nil
}

// Mnemonic returns the backing phrase, empty for imported wallets.
func (w *Wallet) Mnemonic() string {
	return w.mnemonic
}

// Secret returns a copy of the encryption payload: the mnemonic in UTF-8 for
// HD wallets, the private key as 64 hex characters for imported ones. The
// caller must wipe the copy.
func (w *Wallet) Secret() []byte {
	if w.Type == TypeHD {
		return []byte(w.mnemonic)
	}
	return []byte(hex.EncodeToString(w.privateKey))
}

// DeriveAccount derives the address at the given index under the wallet's
// base path. Imported wallets have no seed and cannot derive.
func (w *Wallet) DeriveAccount(index uint32) (*DerivedAccount, error) {
	accs, err := w.DeriveAccounts(index, 1)
	if err != nil {
		return nil, err
	}
	return &accs[0], nil
}

// DeriveAccounts derives count consecutive addresses starting at index.
func (w *Wallet) DeriveAccounts(start, count uint32) ([]DerivedAccount, error) {
	if w.Type != TypeHD {
		return nil, ErrDerivationUnsupported
	}
	seed := MnemonicToSeed(w.mnemonic, w.passphrase)
	defer wipe(seed)

	basePath, err := ParsePath(w.BasePath)
	if err != nil {
		return nil, err
	}
	return DeriveRange(seed, basePath, start, count)
}

// Wipe clears the wallet's secret material. The wallet is unusable for
// derivation afterwards.
func (w *Wallet) Wipe() {
	wipe(w.privateKey)
	w.privateKey = nil
	// Strings are immutable in Go; dropping the references is the best
	// available disposal for the phrase itself.
	w.mnemonic = ""
	w.passphrase = ""
}
