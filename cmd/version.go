package cmd

import "github.com/spf13/cobra"

// version is stamped by goreleaser via -ldflags; source builds report
// (devel) and refuse self-update.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("carpick %s\n", version)
	},
}
