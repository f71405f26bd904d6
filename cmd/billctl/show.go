package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bill-detail/internal/infrastructure/storage"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
)

func newShowCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <bill-id>",
		Short: "Muestra el detalle de una factura",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withBackend(cmd.Context(), func(b *storage.Backend) error {
				detail, export := c.useCases(b, c.cfg.Export.OutputDir)
				v := view.NewDetailView(id, detail, export, c.style())
				if err := v.Load(cmd.Context()); err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(c.out)
					enc.SetIndent("", "  ")
					return enc.Encode(v.Snapshot())
				}
				return view.WriteText(c.out, v.Snapshot())
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON en lugar de texto")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id de factura inválido %q: debe ser un entero positivo", raw)
	}
	return id, nil
}
