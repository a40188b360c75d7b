package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the waclaw version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("waclaw %s\n", version)
	},
}
