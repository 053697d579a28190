package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version    = "dev"
	BuildTime  = "unknown"
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show hookmsg version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(outWriter(), "hookmsg version %s (built at %s)\n", Version, BuildTime)
		},
	}
)

func init() {
	rootCmd.AddCommand(versionCmd)
}
