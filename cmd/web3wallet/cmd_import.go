package main

import (
	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/wallet"
)

var (
	importMnemonic   string
	importPrivateKey string
	importNetwork    string
	importSave       string
	importForce      bool
	importPassphrase string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a wallet from a mnemonic or private key",
	Long: "Import an existing wallet. A mnemonic yields an HD wallet; a raw " +
		"private key yields an imported wallet without derivation support.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := wallet.ImportOptions{
			Mnemonic:   importMnemonic,
			PrivateKey: importPrivateKey,
			Network:    importNetwork,
			Passphrase: importPassphrase,
			SaveAlias:  importSave,
			Force:      importForce,
		}

		if importSave != "" {
			password, err := readPassword(true)
			if err != nil {
				return renderError(err)
			}
			defer wipeBytes(password)
			opts.Password = password
		}

		res, err := wallet.NewManager(cfg).Import(opts)
		if err != nil {
			return renderError(err)
		}
		return renderImportResult(res)
	},
}

func init() {
	importCmd.Flags().StringVarP(&importMnemonic, "mnemonic", "m", "", "BIP39 mnemonic phrase to import")
	importCmd.Flags().StringVarP(&importPrivateKey, "private-key", "k", "", "raw private key (64 hex characters)")
	importCmd.Flags().StringVarP(&importNetwork, "network", "n", "", "target network (default from config)")
	importCmd.Flags().StringVarP(&importSave, "save", "s", "", "save the wallet under this alias")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "overwrite an existing alias")
	importCmd.Flags().StringVar(&importPassphrase, "passphrase", "", "optional BIP39 passphrase")
}
