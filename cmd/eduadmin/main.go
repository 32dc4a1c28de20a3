package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eduadmin",
	Short: "EduMarket admin dashboard",
	Long: `eduadmin serves the EduMarket administration dashboard in front of the
EduMarket REST API, and offers a few maintenance commands against the same API.

Examples:
  # Start the dashboard (default command)
  eduadmin serve

  # Print the category tree as YAML
  eduadmin tree categories -o yaml --token "$ADMIN_TOKEN"

  # Renumber menu sibling order 1..n
  eduadmin normalize menus`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var token string

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API bearer token for maintenance commands (default $ADMIN_TOKEN)")
	rootCmd.AddCommand(serveCmd, treeCmd, normalizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
