package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "console",
		Short:   "Admin console for the ticketing system",
		Version: version,
		Long: `console serves the ticketing admin web interface: agent management
and the role-based navigation sidebar, backed by the ticketing REST API.`,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(issueTokenCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the console version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
