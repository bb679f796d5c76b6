package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clawforge/web3wallet/pkg/config"
	"github.com/clawforge/web3wallet/pkg/logger"
)

const version = "1.0.0"

var (
	flagOutput  string
	flagVerbose bool
	flagConfig  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "web3wallet",
	Version: version,
	Short:   "Ethereum HD wallet CLI",
	Long: "Generate, import, and manage Ethereum wallets with BIP39/BIP44 " +
		"compliance and MetaMask-compatible addresses.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(flagVerbose)

		path := flagConfig
		if path == "" {
			path = config.DefaultConfigPath()
		}
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "output format (table|json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "configuration file path")

	rootCmd.AddCommand(createCmd, importCmd, loadCmd, deriveCmd, listCmd)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command. Errors raised before a RunE handler
// (unknown flags, bad arguments, config failures) have not been rendered
// yet and are printed here; everything else was already printed by
// renderError.
func run(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var rendered renderedError
		if !errors.As(err, &rendered) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
