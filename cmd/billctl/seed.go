package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bill-detail/internal/infrastructure/fixtures"
	"github.com/jhoicas/bill-detail/internal/infrastructure/storage"
	"github.com/jhoicas/bill-detail/pkg/config"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga locales, facturas y líneas desde un archivo YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fixtures.Load(file)
			if err != nil {
				return err
			}
			if c.cfg.DB.Driver == config.DriverMemory {
				c.log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al terminar el proceso")
			}
			return c.withBackend(cmd.Context(), func(b *storage.Backend) error {
				st, err := f.Apply(cmd.Context(), b.Seeder)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "seed: %d shops, %d bills, %d items\n", st.Shops, st.Bills, st.Items)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "testdata/fixtures.yaml", "archivo de fixtures")
	return cmd
}
