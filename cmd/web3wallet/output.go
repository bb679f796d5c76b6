package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/clawforge/web3wallet/pkg/keystore"
	"github.com/clawforge/web3wallet/pkg/wallet"
)

// renderJSON prints the structured success envelope.
func renderJSON(data any) error {
	out, err := json.MarshalIndent(map[string]any{
		"success": true,
		"data":    data,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// renderedError marks an error that has already been printed, so main does
// not print it a second time.
type renderedError struct {
	err error
}

func (e renderedError) Error() string { return e.err.Error() }
func (e renderedError) Unwrap() error { return e.err }

// renderError prints a failure in the selected format and passes the error
// back for the process exit code.
func renderError(err error) error {
	if flagOutput == "json" {
		out, _ := json.MarshalIndent(map[string]any{
			"success": false,
			"error": map[string]any{
				"kind":    string(wallet.KindOf(err)),
				"message": err.Error(),
			},
		}, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return renderedError{err: err}
}

// shortAddress renders the first 6 and last 4 characters for table output.
func shortAddress(addr string) string {
	if len(addr) >= 42 {
		return addr[:6] + "..." + addr[38:]
	}
	return addr
}

func renderCreateResult(res *wallet.CreateResult) error {
	if flagOutput == "json" {
		return renderJSON(res)
	}

	fmt.Println("New wallet created.")
	fmt.Println()
	fmt.Printf("  Mnemonic:  %s\n", res.Mnemonic)
	fmt.Printf("  Address:   %s\n", res.Address)
	fmt.Printf("  Path:      %s\n", res.Path)
	fmt.Printf("  Network:   %s (chain id %d)\n", res.Network, res.ChainID)
	if res.SavedTo != "" {
		fmt.Printf("\nWallet saved to %s\n", res.SavedTo)
	}
	fmt.Println("\nWrite the mnemonic down and store it safely. It is shown only once.")
	return nil
}

func renderImportResult(res *wallet.ImportResult) error {
	if flagOutput == "json" {
		return renderJSON(res)
	}

	fmt.Println("Wallet imported.")
	fmt.Println()
	fmt.Printf("  Address:   %s\n", res.Address)
	fmt.Printf("  Type:      %s\n", res.WalletTyp)
	fmt.Printf("  Network:   %s (chain id %d)\n", res.Network, res.ChainID)
	if res.SavedTo != "" {
		fmt.Printf("\nWallet saved to %s\n", res.SavedTo)
	}
	return nil
}

func renderLoadResult(res *wallet.LoadResult, file string) error {
	if flagOutput == "json" {
		return renderJSON(res)
	}

	fmt.Printf("Loading wallet from %s\n\n", file)
	fmt.Printf("  Alias:     %s\n", res.Metadata.Alias)
	fmt.Printf("  Address:   %s\n", res.Metadata.Address)
	fmt.Printf("  Network:   %s\n", res.Metadata.Network)
	fmt.Printf("  Type:      %s\n", res.Metadata.WalletType)
	fmt.Printf("  Created:   %s\n", res.Metadata.CreatedAt)
	if res.Mnemonic != "" {
		fmt.Printf("  Mnemonic:  %s\n", res.Mnemonic)
	}
	if res.PrivateKey != "" {
		fmt.Printf("  Key:       0x%s\n", res.PrivateKey)
	}
	if res.Derived != nil {
		fmt.Printf("\n  Derived #%d: %s (%s)\n", res.Derived.Index, res.Derived.Address, res.Derived.Path)
	}
	return nil
}

func renderDeriveResult(res *wallet.DeriveResult) error {
	if flagOutput == "json" {
		return renderJSON(res)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tADDRESS\tPATH")
	for _, acc := range res.Accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\n", acc.Index, acc.Address, acc.Path)
	}
	return w.Flush()
}

func renderList(items []keystore.Metadata) error {
	if flagOutput == "json" {
		return renderJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("No wallets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tADDRESS\tNETWORK\tTYPE\tCREATED")
	for _, md := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			md.Alias, shortAddress(md.Address), md.Network, md.WalletType, md.CreatedAt)
	}
	return w.Flush()
}
