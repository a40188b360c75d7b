// Package cli implements the waclaw command tree.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/WaClaw/WaClaw/internal/cli.version=1.2.3"
	version = "0.3.0"
	logo    = "\n" +
		" __        __     ____ _\n" +
		" \\ \\      / /_ _ / ___| | __ ___      __\n" +
		"  \\ \\ /\\ / / _` | |   | |/ _` \\ \\ /\\ / /\n" +
		"   \\ V  V / (_| | |___| | (_| |\\ V  V /\n" +
		"    \\_/\\_/ \\__,_|\\____|_|\\__,_| \\_/\\_/\n"
)

var rootCmd = &cobra.Command{
	Use:   "waclaw",
	Short: "WaClaw - WhatsApp Gatekeeper Agent",
	Long:  color.CyanString(logo) + "\nA role-gated WhatsApp assistant: elite aide for the Boss, gatekeeper for everyone else.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(statusCmd)
}

func printHeader(title string) {
	fmt.Println(color.CyanString(logo))
	fmt.Println(color.New(color.Bold).Sprint(title))
	fmt.Println()
}
