package billing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bill-detail/internal/domain"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

// ExportConfig destino de los PDFs exportados. OutputDir vacío = directorio de trabajo.
type ExportConfig struct {
	OutputDir string
}

// ExportResult describe un PDF escrito a disco.
type ExportResult struct {
	ExportID string
	BillID   int64
	Path     string
	Bytes    int
	Items    int
}

// ExportUseCase genera el PDF de una factura. No comparte datos con la vista:
// cada llamada abre su propia sesión y vuelve a consultar factura, local y líneas.
type ExportUseCase struct {
	store     repository.BillStore
	generator BillPDFGenerator
	cfg       ExportConfig
	observer  Observer
	log       zerolog.Logger
}

// NewExportUseCase construye el caso de uso. observer puede ser nil.
func NewExportUseCase(
	store repository.BillStore,
	generator BillPDFGenerator,
	cfg ExportConfig,
	observer Observer,
	log zerolog.Logger,
) *ExportUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &ExportUseCase{store: store, generator: generator, cfg: cfg, observer: observer, log: log}
}

// FileName nombre determinista del PDF de una factura.
func FileName(billID int64) string {
	return fmt.Sprintf("bill_%d.pdf", billID)
}

// Render consulta la factura y devuelve el PDF en memoria junto con su nombre de archivo.
func (uc *ExportUseCase) Render(ctx context.Context, billID int64) (pdfBytes []byte, filename string, err error) {
	pdfBytes, _, err = uc.render(ctx, billID)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, FileName(billID), nil
}

// Export escribe bill_<id>.pdf en OutputDir, sobrescribiendo si ya existe.
// El documento se genera completo en memoria antes de tocar el disco; un fallo de
// escritura puede dejar un archivo parcial.
func (uc *ExportUseCase) Export(ctx context.Context, billID int64) (result *ExportResult, err error) {
	defer func() { uc.observer.ObserveExport(err) }()

	exportID := uuid.NewString()
	log := uc.log.With().Str("export_id", exportID).Int64("bill_id", billID).Logger()

	pdfBytes, detail, err := uc.render(ctx, billID)
	if err != nil {
		log.Error().Err(err).Str("kind", domain.KindOf(err).String()).Msg("exportación fallida")
		return nil, err
	}

	dir := uc.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.E(domain.KindRenderFailure, "export: crear directorio", err)
	}
	path := filepath.Join(dir, FileName(billID))
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("escritura del PDF fallida")
		return nil, domain.E(domain.KindRenderFailure, "export: escribir "+path, err)
	}

	log.Info().Str("path", path).Int("bytes", len(pdfBytes)).Msg("PDF exportado")
	return &ExportResult{
		ExportID: exportID,
		BillID:   billID,
		Path:     path,
		Bytes:    len(pdfBytes),
		Items:    len(detail.Items),
	}, nil
}

func (uc *ExportUseCase) render(ctx context.Context, billID int64) ([]byte, *BillDetail, error) {
	session, err := openSession(ctx, uc.store, "export")
	if err != nil {
		return nil, nil, err
	}
	defer closeSession(uc.log, session, billID)

	detail, err := fetchDetail(ctx, session, billID)
	if err != nil {
		return nil, nil, err
	}

	pdfBytes, err := uc.generator.GenerateBillPDF(ctx, detail)
	if err != nil {
		return nil, nil, domain.E(domain.KindRenderFailure, fmt.Sprintf("pdf: generar factura %d", billID), err)
	}
	if len(pdfBytes) == 0 {
		return nil, nil, domain.E(domain.KindRenderFailure, fmt.Sprintf("pdf: generar factura %d", billID), fmt.Errorf("documento vacío"))
	}
	return pdfBytes, detail, nil
}
