package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/application/dto"
	"github.com/jhoicas/bill-detail/internal/domain"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler host HTML de la vista: lista de selección, panel de detalle e impresión.
type PageHandler struct {
	detail *billing.DetailUseCase
	export *billing.ExportUseCase
	style  view.Style
	log    zerolog.Logger
}

// NewPageHandler construye el handler.
func NewPageHandler(detail *billing.DetailUseCase, export *billing.ExportUseCase, style view.Style, log zerolog.Logger) *PageHandler {
	return &PageHandler{detail: detail, export: export, style: style, log: log}
}

type listPage struct {
	Title        string
	Bills        []dto.BillSummary
	Limit        int
	HasPrev      bool
	PrevOffset   int
	HasNext      bool
	NextOffset   int
	WindowWidth  int
	WindowHeight int
}

type messagePage struct {
	Heading string
	Text    string
	Class   string
	Back    string
}

// List lista de selección; cada factura se abre en una ventana propia.
// GET /bills
func (h *PageHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	bills, err := h.detail.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return h.renderError(c, err, "")
	}

	style := h.style.WithDefaults()
	data := listPage{
		Title:        style.Title,
		Bills:        make([]dto.BillSummary, 0, len(bills)),
		Limit:        page.Limit,
		HasPrev:      page.Offset > 0,
		PrevOffset:   max(page.Offset-page.Limit, 0),
		HasNext:      len(bills) == page.Limit,
		NextOffset:   page.Offset + page.Limit,
		WindowWidth:  style.WindowWidth,
		WindowHeight: style.WindowHeight,
	}
	for _, b := range bills {
		data.Bills = append(data.Bills, dto.ToBillSummary(b))
	}
	return h.render(c, fiber.StatusOK, "list.html", data)
}

// Open maneja la selección del formulario de la lista.
// Sin selección responde con un aviso; no es un error del dominio.
// POST /bills/open
func (h *PageHandler) Open(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.FormValue("bill_id"))
	if raw == "" {
		return h.render(c, fiber.StatusBadRequest, "message.html", messagePage{
			Heading: "NO_SELECTION",
			Text:    "Please select a bill first",
			Class:   "warning",
			Back:    "/bills",
		})
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return h.renderError(c, errInvalidID, "/bills")
	}
	return c.Redirect(fmt.Sprintf("/bills/%d", id), fiber.StatusSeeOther)
}

// Detail panel de una factura.
// GET /bills/:id
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	id, err := parseBillID(c)
	if err != nil {
		return h.renderError(c, err, "/bills")
	}
	v := view.NewDetailView(id, h.detail, h.export, h.style)
	if err := v.Load(c.UserContext()); err != nil {
		return h.renderError(c, err, "/bills")
	}
	return h.render(c, fiber.StatusOK, "detail.html", v.Snapshot())
}

// Print exporta el PDF y muestra la notificación.
// POST /bills/:id/print
func (h *PageHandler) Print(c *fiber.Ctx) error {
	id, err := parseBillID(c)
	if err != nil {
		return h.renderError(c, err, "/bills")
	}
	back := fmt.Sprintf("/bills/%d", id)
	v := view.NewDetailView(id, h.detail, h.export, h.style)
	res, err := v.Print(c.UserContext())
	if err != nil {
		return h.renderError(c, err, back)
	}
	return h.render(c, fiber.StatusOK, "message.html", messagePage{
		Heading: "PDF",
		Text:    "Bill exported to " + res.Path,
		Back:    back,
	})
}

func (h *PageHandler) renderError(c *fiber.Ctx, err error, back string) error {
	status, body := httpError(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("kind", domain.KindOf(err).String()).Str("path", c.Path()).Msg("error en página")
	}
	return h.render(c, status, "message.html", messagePage{
		Heading: body.Code,
		Text:    body.Message,
		Class:   "error",
		Back:    back,
	})
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("plantilla %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
