package main

import (
	"os"

	cmd "github.com/mosaicnetworks/utxochain/cmd/utxochain/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(
		cmd.NewKeygenCmd(),
		cmd.NewSimulateCmd(),
		cmd.NewMineCmd(),
		cmd.VersionCmd,
	)

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
