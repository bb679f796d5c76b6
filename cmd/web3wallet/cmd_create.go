package main

import (
	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/config"
	"github.com/clawforge/web3wallet/pkg/wallet"
)

var (
	createWords      int
	createNetwork    string
	createSave       string
	createForce      bool
	createPassphrase string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new HD wallet",
	Long: "Generate a new BIP39 mnemonic, derive the first address at " +
		"m/44'/60'/0'/0/0 and optionally save it as an encrypted keystore file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := wallet.CreateOptions{
			Words:      createWords,
			Network:    createNetwork,
			Passphrase: createPassphrase,
			SaveAlias:  createSave,
			Force:      createForce,
		}

		if createSave != "" {
			password, err := readPassword(true)
			if err != nil {
				return renderError(err)
			}
			defer wipeBytes(password)
			opts.Password = password
		}

		res, err := wallet.NewManager(cfg).Create(opts)
		if err != nil {
			return renderError(err)
		}
		return renderCreateResult(res)
	},
}

func init() {
	createCmd.Flags().IntVarP(&createWords, "words", "w", config.DefaultWordCount, "mnemonic word count (12 or 24)")
	createCmd.Flags().StringVarP(&createNetwork, "network", "n", "", "target network (default from config)")
	createCmd.Flags().StringVarP(&createSave, "save", "s", "", "save the wallet under this alias")
	createCmd.Flags().BoolVarP(&createForce, "force", "f", false, "overwrite an existing alias")
	createCmd.Flags().StringVar(&createPassphrase, "passphrase", "", "optional BIP39 passphrase")
}
