package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bill-detail/internal/infrastructure/storage"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
)

func newPrintCmd(c *cli) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "print <bill-id>",
		Short: "Exporta bill_<id>.pdf (sobrescribe si existe)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = c.cfg.Export.OutputDir
			}
			return c.withBackend(cmd.Context(), func(b *storage.Backend) error {
				detail, export := c.useCases(b, outDir)
				v := view.NewDetailView(id, detail, export, c.style())
				res, err := v.Print(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s (%d bytes, %d items)\n", res.Path, res.Bytes, res.Items)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directorio de salida (por defecto EXPORT_OUTPUT_DIR)")
	return cmd
}
