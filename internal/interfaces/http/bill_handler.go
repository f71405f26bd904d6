package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/application/dto"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
)

// BillHandler API JSON de facturas. Cada petición crea su propia vista.
type BillHandler struct {
	detail *billing.DetailUseCase
	export *billing.ExportUseCase
	style  view.Style
}

// NewBillHandler construye el handler.
func NewBillHandler(detail *billing.DetailUseCase, export *billing.ExportUseCase, style view.Style) *BillHandler {
	return &BillHandler{detail: detail, export: export, style: style}
}

// List página de facturas.
// GET /api/bills?limit=&offset=
func (h *BillHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit y offset deben ser enteros"})
	}
	page.DefaultPage()

	bills, err := h.detail.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeJSONError(c, err)
	}
	out := dto.BillListResponse{
		Items: make([]dto.BillSummary, 0, len(bills)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, b := range bills {
		out.Items = append(out.Items, dto.ToBillSummary(b))
	}
	return c.JSON(out)
}

// GetByID detalle de la factura con las cuatro regiones del panel.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseBillID(c)
	if err != nil {
		return writeJSONError(c, err)
	}
	v := view.NewDetailView(id, h.detail, h.export, h.style)
	if err := v.Load(c.UserContext()); err != nil {
		return writeJSONError(c, err)
	}
	return c.JSON(v.Snapshot())
}

// DownloadPDF devuelve el PDF sin escribirlo a disco.
// GET /api/bills/:id/pdf
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := parseBillID(c)
	if err != nil {
		return writeJSONError(c, err)
	}
	pdfBytes, filename, err := h.export.Render(c.UserContext(), id)
	if err != nil {
		return writeJSONError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdfBytes)
}

// Print exporta bill_<id>.pdf al directorio configurado.
// POST /api/bills/:id/print
func (h *BillHandler) Print(c *fiber.Ctx) error {
	id, err := parseBillID(c)
	if err != nil {
		return writeJSONError(c, err)
	}
	v := view.NewDetailView(id, h.detail, h.export, h.style)
	res, err := v.Print(c.UserContext())
	if err != nil {
		return writeJSONError(c, err)
	}
	return c.JSON(dto.ExportResponse{
		ExportID: res.ExportID,
		BillID:   res.BillID,
		File:     filepath.Base(res.Path),
		Path:     res.Path,
		Bytes:    res.Bytes,
		Items:    res.Items,
	})
}
