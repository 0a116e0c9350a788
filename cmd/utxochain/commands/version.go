package commands

import (
	"fmt"
	"runtime"

	"github.com/mosaicnetworks/utxochain/src/version"
	"github.com/spf13/cobra"
)

// VersionCmd displays the version of utxochain being used
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("utxochain %s (%s %s/%s)\n", version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
