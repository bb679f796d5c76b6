package main

import (
	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/wallet"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved wallets",
	Long: "Enumerate keystore files in the wallet directory and print their " +
		"clear metadata. No password is required.",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := wallet.NewManager(cfg).List()
		if err != nil {
			return renderError(err)
		}
		return renderList(items)
	},
}
