package main

import (
	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/wallet"
)

var (
	deriveMnemonic   string
	deriveFile       string
	deriveStart      uint32
	deriveCount      uint32
	derivePassphrase string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a batch of addresses",
	Long: "Derive consecutive addresses under m/44'/60'/0'/0 from either a " +
		"raw mnemonic or a saved keystore file. Nothing is persisted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := wallet.DeriveOptions{
			Mnemonic:   deriveMnemonic,
			File:       deriveFile,
			Passphrase: derivePassphrase,
			StartIndex: deriveStart,
			Count:      deriveCount,
		}

		if deriveFile != "" {
			password, err := readPassword(false)
			if err != nil {
				return renderError(err)
			}
			defer wipeBytes(password)
			opts.Password = password
		}

		res, err := wallet.NewManager(cfg).Derive(opts)
		if err != nil {
			return renderError(err)
		}
		return renderDeriveResult(res)
	},
}

func init() {
	deriveCmd.Flags().StringVarP(&deriveMnemonic, "mnemonic", "m", "", "BIP39 mnemonic phrase to derive from")
	deriveCmd.Flags().StringVarP(&deriveFile, "file", "F", "", "saved keystore file to derive from")
	deriveCmd.Flags().Uint32Var(&deriveStart, "start-index", 0, "first address index")
	deriveCmd.Flags().Uint32Var(&deriveCount, "count", 1, "number of addresses to derive")
	deriveCmd.Flags().StringVar(&derivePassphrase, "passphrase", "", "optional BIP39 passphrase")
}
