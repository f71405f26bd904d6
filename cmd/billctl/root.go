package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	infrapdf "github.com/jhoicas/bill-detail/internal/infrastructure/pdf"
	"github.com/jhoicas/bill-detail/internal/infrastructure/storage"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
	"github.com/jhoicas/bill-detail/pkg/config"
	"github.com/jhoicas/bill-detail/pkg/logger"
)

// cli estado compartido por los subcomandos; se llena en PersistentPreRunE.
type cli struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "billctl",
		Short: "Detalle de facturas: consulta, exportación a PDF y carga de datos",
		Long: `billctl usa la misma configuración que la API (variables de entorno o .env):
DB_DRIVER=postgres|sqlite|memory, DATABASE_URL, SQLITE_PATH, FIXTURES_PATH,
EXPORT_OUTPUT_DIR, EXPORT_COMPRESS, VIEW_*.

Ejemplos:
  billctl seed --file testdata/fixtures.yaml
  billctl show 1
  billctl print 1 --out ./pdfs`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.App.LogLevel
			if c.verbose {
				level = "debug"
			}
			c.cfg = cfg
			c.log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: c.errOut}).Zerolog()
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newShowCmd(c),
		newPrintCmd(c),
		newSeedCmd(c),
		newTokenCmd(c),
	)
	return root
}

// withBackend abre el almacén configurado y lo libera al terminar fn.
func (c *cli) withBackend(ctx context.Context, fn func(b *storage.Backend) error) error {
	b, err := storage.Open(ctx, c.cfg.DB, c.log)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

// useCases arma los casos de uso sobre el almacén abierto.
func (c *cli) useCases(b *storage.Backend, outputDir string) (*billing.DetailUseCase, *billing.ExportUseCase) {
	gen := infrapdf.NewMarotoPDFGenerator(infrapdf.Config{
		Title:    c.cfg.View.Title,
		Compress: c.cfg.Export.Compress,
	})
	detail := billing.NewDetailUseCase(b.Store, nil, c.log)
	export := billing.NewExportUseCase(b.Store, gen, billing.ExportConfig{OutputDir: outputDir}, nil, c.log)
	return detail, export
}

func (c *cli) style() view.Style {
	s := view.DefaultStyle()
	s.Title = c.cfg.View.Title
	s.Currency = c.cfg.View.Currency
	s.PartyFormat = c.cfg.View.PartyFormat
	return s
}
