package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// FormatVersion is the current keystore document version.
const FormatVersion = "1.0.0"

// Wallet type tags stored in keystore metadata.
const (
	TypeHDWallet = "HDWallet"
	TypeImported = "Imported"
)

// Metadata identifies a wallet without requiring a password. It is stored in
// the clear so wallets can be listed without decryption.
type Metadata struct {
	Alias      string `json:"alias"`
	Address    string `json:"address"`
	CreatedAt  string `json:"created_at"`
	Network    string `json:"network"`
	WalletType string `json:"wallet_type"`
}

// CryptoBlock holds the encrypted payload and everything needed to decrypt
// it given the right password. All byte fields are hex encoded.
type CryptoBlock struct {
	Cipher     string    `json:"cipher"`
	Ciphertext string    `json:"ciphertext"`
	IV         string    `json:"iv"`
	KDF        KDFConfig `json:"kdf"`
	MAC        string    `json:"mac"`
}

// Document is the versioned on-disk keystore format, one JSON document per
// wallet file.
type Document struct {
	Version  string      `json:"version"`
	Metadata Metadata    `json:"metadata"`
	Crypto   CryptoBlock `json:"crypto"`
}

// Encode serializes the document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return data, nil
}

// Decode parses and validates a keystore document.
func Decode(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks structural invariants without touching the password or any
// cryptographic state.
func (d *Document) Validate() error {
	if d.Version != FormatVersion {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, d.Version)
	}

	if !isHexAddress(d.Metadata.Address) {
		return fmt.Errorf("%w: invalid address", ErrMalformedDocument)
	}
	if d.Metadata.Network == "" {
		return fmt.Errorf("%w: missing network", ErrMalformedDocument)
	}
	switch d.Metadata.WalletType {
	case TypeHDWallet, TypeImported:
	default:
		return fmt.Errorf("%w: unknown wallet type %q", ErrMalformedDocument, d.Metadata.WalletType)
	}

	if d.Crypto.Cipher != CipherAESGCM {
		return fmt.Errorf("%w: %q", ErrUnsupportedCipher, d.Crypto.Cipher)
	}
	switch d.Crypto.KDF.Type {
	case KDFArgon2id:
		p := d.Crypto.KDF.Params
		if p.MemoryKiB == 0 || p.Iterations == 0 || p.Parallelism == 0 {
			return fmt.Errorf("%w: zero argon2id parameter", ErrInvalidKDFParams)
		}
	case KDFPBKDF2:
		if d.Crypto.KDF.Params.Iterations == 0 {
			return fmt.Errorf("%w: zero pbkdf2 iteration count", ErrInvalidKDFParams)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKDF, d.Crypto.KDF.Type)
	}

	if _, err := hex.DecodeString(d.Crypto.Ciphertext); err != nil || d.Crypto.Ciphertext == "" {
		return fmt.Errorf("%w: invalid ciphertext hex", ErrMalformedDocument)
	}
	iv, err := hex.DecodeString(d.Crypto.IV)
	if err != nil || len(iv) != nonceLength {
		return fmt.Errorf("%w: invalid iv", ErrMalformedDocument)
	}
	mac, err := hex.DecodeString(d.Crypto.MAC)
	if err != nil || len(mac) != macLength {
		return fmt.Errorf("%w: invalid mac", ErrMalformedDocument)
	}
	salt, err := hex.DecodeString(d.Crypto.KDF.Params.Salt)
	if err != nil || len(salt) != saltLength {
		return fmt.Errorf("%w: invalid salt", ErrMalformedDocument)
	}
	return nil
}

func isHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) != 42 {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}
