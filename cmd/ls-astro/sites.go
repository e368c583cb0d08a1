package main

import (
	"github.com/spf13/cobra"
)

func newSitesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List telescope locations",
		Long:  "List the built-in telescope locations plus any loaded from the sites file. The configured location is marked with *.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locs := a.registry.All()
			if a.jsonOut {
				return writeJSON(a.out, exportSites(locs, a.cfg.Location))
			}
			_, err := a.out.Write([]byte(a.theme.RenderSites(locs, a.cfg.Location)))
			return err
		},
	}
}
