package wallet

import (
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"
)

// entropyBits maps supported word counts to BIP39 entropy sizes.
var entropyBits = map[int]int{
	12: 128,
	24: 256,
}

// GenerateMnemonic draws fresh entropy and encodes it as a BIP39 phrase.
// Only 12 and 24 word phrases are supported.
func GenerateMnemonic(wordCount int) (string, error) {
	bits, ok := entropyBits[wordCount]
	if !ok {
		return "", fmt.Errorf("%w: got %d", ErrInvalidWordCount, wordCount)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	defer wipe(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks word count, wordlist membership and the entropy
// checksum. Unknown words are reported before the checksum so the user sees
// the actual typo.
func ValidateMnemonic(phrase string) error {
	words := strings.Fields(strings.TrimSpace(phrase))
	if _, ok := entropyBits[len(words)]; !ok {
		return fmt.Errorf("%w: got %d", ErrInvalidWordCount, len(words))
	}
	for _, word := range words {
		if _, ok := bip39.GetWordIndex(word); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWord, word)
		}
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return ErrChecksumMismatch
	}
	return nil
}

// MnemonicToSeed stretches a valid mnemonic (and optional BIP39 passphrase)
// into the standard 64-byte seed. Deterministic; the caller must wipe the
// returned seed after use.
func MnemonicToSeed(phrase, passphrase string) []byte {
	return bip39.NewSeed(normalizeMnemonic(phrase), passphrase)
}

// normalizeMnemonic collapses whitespace so seeds do not depend on how the
// phrase was typed.
func normalizeMnemonic(phrase string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(phrase)), " ")
}

// wipe overwrites b with zeroes.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
