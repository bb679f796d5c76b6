package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/clawforge/web3wallet/pkg/wallet"
)

// passwordEnvVar overrides the interactive prompt. Reserved for automated
// testing; never set it in normal use.
const passwordEnvVar = "WEB3WALLET_PASSWORD"

// readPassword obtains the wallet password, masked, from the terminal. With
// confirm set the password is read twice and must match. The caller must
// wipe the returned bytes.
func readPassword(confirm bool) ([]byte, error) {
	if env := os.Getenv(passwordEnvVar); env != "" {
		return []byte(env), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: set " + passwordEnvVar + " or run interactively")
	}

	first, err := promptOnce("Enter password: ")
	if err != nil {
		return nil, err
	}
	if !confirm {
		return first, nil
	}

	second, err := promptOnce("Confirm password: ")
	if err != nil {
		wipeBytes(first)
		return nil, err
	}
	defer wipeBytes(second)

	if string(first) != string(second) {
		wipeBytes(first)
		return nil, wallet.ErrPasswordMismatch
	}
	return first, nil
}

func promptOnce(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	wipeBytes(raw)
	return out, nil
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
