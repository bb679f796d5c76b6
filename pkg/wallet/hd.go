package wallet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MaxDeriveCount bounds a single batch derivation.
const MaxDeriveCount = 10_000

// KeyPair is a derived secp256k1 key and its Ethereum address. It is owned
// by the operation that derived it and must be wiped once the dependent
// address or signature exists.
type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

// Wipe zeroes the backing words of the private scalar.
func (kp *KeyPair) Wipe() {
	if kp == nil || kp.PrivateKey == nil {
		return
	}
	bits := kp.PrivateKey.D.Bits()
	for i := range bits {
		bits[i] = 0
	}
	kp.PrivateKey = nil
}

// DerivedAccount is one entry of a batch derivation. It carries no secret
// material.
type DerivedAccount struct {
	Index   uint32 `json:"index"`
	Address string `json:"address"`
	Path    string `json:"derivation_path"`
}

// ParsePath parses a derivation path string such as "m/44'/60'/0'/0".
func ParsePath(s string) (accounts.DerivationPath, error) {
	path, err := accounts.ParseDerivationPath(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPathSegment, err)
	}
	return path, nil
}

// DeriveKey walks a BIP32 derivation path from a 64-byte seed to the child
// key at its end. Hardened segments require the parent private key.
func DeriveKey(seed []byte, path accounts.DerivationPath) (*KeyPair, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	defer master.Zero()

	key := master
	for _, index := range path {
		if index >= hdkeychain.HardenedKeyStart && !key.IsPrivate() {
			return nil, ErrHardenedFromPublic
		}
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %v", ErrInvalidPathSegment, index, err)
		}
	}
	defer key.Zero()

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	privBytes := priv.Serialize()
	ecdsaKey, err := crypto.ToECDSA(privBytes)
	wipe(privBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to convert derived key: %w", err)
	}

	return &KeyPair{
		PrivateKey: ecdsaKey,
		Address:    crypto.PubkeyToAddress(ecdsaKey.PublicKey),
	}, nil
}

// DeriveAddress computes the EIP-55 checksummed address for a public key:
// Keccak-256 over the 64-byte uncompressed point, low 20 bytes, mixed-case
// hex per the hash of the lowercase address.
func DeriveAddress(pub *ecdsa.PublicKey) string {
	return crypto.PubkeyToAddress(*pub).Hex()
}

// DeriveRange derives count consecutive accounts starting at start, appending
// the index as the final segment of basePath. Re-invoking with the same
// inputs reproduces the same sequence bit for bit. Keys are wiped as soon as
// each address is computed; only addresses are returned.
func DeriveRange(seed []byte, basePath accounts.DerivationPath, start, count uint32) ([]DerivedAccount, error) {
	if count == 0 || count > MaxDeriveCount {
		return nil, ErrDeriveCountExceeded
	}
	if err := validateEthereumBase(basePath); err != nil {
		return nil, err
	}

	out := make([]DerivedAccount, 0, count)
	for i := uint32(0); i < count; i++ {
		index := start + i
		if index >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: address index %d out of range", ErrInvalidPathSegment, index)
		}
		path := append(append(accounts.DerivationPath{}, basePath...), index)

		kp, err := DeriveKey(seed, path)
		if err != nil {
			return nil, err
		}
		out = append(out, DerivedAccount{
			Index:   index,
			Address: kp.Address.Hex(),
			Path:    path.String(),
		})
		kp.Wipe()
	}
	return out, nil
}

// validateEthereumBase enforces the fixed BIP44 prefix: purpose 44',
// coin type 60'.
func validateEthereumBase(path accounts.DerivationPath) error {
	if len(path) < 2 ||
		path[0] != hdkeychain.HardenedKeyStart+44 ||
		path[1] != hdkeychain.HardenedKeyStart+60 {
		return fmt.Errorf("%w: base path must start with m/44'/60'", ErrInvalidPathSegment)
	}
	return nil
}
