package cmd

import (
	"github.com/lehigh-university-libraries/photogallery/internal/catalogcmd"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog file tools",
		Long: `Tools for working with catalog files offline: validating them, listing
their contents, converting between formats, and checking image locators.`,
	}

	cmd.AddCommand(catalogcmd.NewValidateCmd())
	cmd.AddCommand(catalogcmd.NewListCmd())
	cmd.AddCommand(catalogcmd.NewConvertCmd())
	cmd.AddCommand(catalogcmd.NewCheckCmd())

	return cmd
}
