package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golcore/gol/internal/catalog"
	"github.com/golcore/gol/internal/config"
)

// NewSavesCommand lists the saves recorded in the catalog.
func NewSavesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List saves recorded in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.Config)
			if err != nil {
				return err
			}
			if cfg.CatalogPath == "" {
				return fmt.Errorf("no catalog path configured (set catalog_path or GOL_CATALOG_PATH)")
			}

			cat, err := catalog.Open(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer cat.Close()

			entries, err := cat.List(cmd.Context())
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no saves recorded")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-20s  %dx%d  gen %d  %s\n",
					e.ID, e.Name, e.Width, e.Height, e.Generation, e.Path)
			}
			return nil
		},
	}
	return cmd
}
