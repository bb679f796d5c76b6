package keystore

import "errors"

var (
	// ErrCryptoFailed covers both MAC mismatch and AEAD authentication
	// failure. The two are deliberately indistinguishable so an attacker
	// cannot tell which check rejected the input.
	ErrCryptoFailed = errors.New("invalid password or corrupted keystore file")

	// ErrUnsupportedVersion is returned when the document version field is
	// not one this build understands.
	ErrUnsupportedVersion = errors.New("unsupported keystore version")

	// ErrUnsupportedCipher is returned for cipher identifiers other than
	// aes-256-gcm.
	ErrUnsupportedCipher = errors.New("unsupported keystore cipher")

	// ErrUnsupportedKDF is returned for KDF identifiers outside
	// {argon2id, pbkdf2}.
	ErrUnsupportedKDF = errors.New("unsupported key derivation function")

	// ErrMalformedDocument is returned when required fields are missing or
	// of the wrong shape.
	ErrMalformedDocument = errors.New("malformed keystore document")

	// ErrInvalidKDFParams is returned for out-of-range KDF parameters such
	// as a zero memory cost.
	ErrInvalidKDFParams = errors.New("invalid KDF parameters")

	// ErrAliasCollision is returned when saving would overwrite an existing
	// keystore file and force was not requested.
	ErrAliasCollision = errors.New("wallet alias already exists")

	// ErrInvalidAlias is returned for empty aliases or names that would
	// escape the wallet directory.
	ErrInvalidAlias = errors.New("invalid wallet alias")

	// ErrNotFound is returned when the named keystore file does not exist.
	ErrNotFound = errors.New("keystore file not found")

	// ErrEntropy is returned when the system random source fails. Treated
	// as fatal, never retried.
	ErrEntropy = errors.New("entropy source unavailable")
)
