package main

import (
	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/wallet"
)

var (
	loadAddressOnly bool
	loadDeriveIndex int32
	loadPassphrase  string
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a saved wallet",
	Long: "Read a keystore file from the wallet directory. With " +
		"--address-only the clear metadata is shown without a password; " +
		"otherwise the wallet secret is decrypted.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := wallet.LoadOptions{
			File:        args[0],
			Passphrase:  loadPassphrase,
			AddressOnly: loadAddressOnly,
		}

		if !loadAddressOnly {
			password, err := readPassword(false)
			if err != nil {
				return renderError(err)
			}
			defer wipeBytes(password)
			opts.Password = password
		}
		if cmd.Flags().Changed("derive") {
			idx := uint32(loadDeriveIndex)
			opts.DeriveIndex = &idx
		}

		res, err := wallet.NewManager(cfg).Load(opts)
		if err != nil {
			return renderError(err)
		}
		return renderLoadResult(res, args[0])
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadAddressOnly, "address-only", false, "show metadata only, no password required")
	loadCmd.Flags().Int32VarP(&loadDeriveIndex, "derive", "d", 0, "re-derive the address at this index (HD wallets only)")
	loadCmd.Flags().StringVar(&loadPassphrase, "passphrase", "", "BIP39 passphrase used when the wallet was created")
}
