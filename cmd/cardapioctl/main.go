// Command cardapioctl is the operator CLI: schema migration, catalog
// inspection and development tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardapioctl",
		Short:         "Operate a CardápioTech deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newCatalogCmd(),
		newTokenCmd(),
	)
	return root
}
