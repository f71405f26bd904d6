// Package view contiene el modelo de presentación del detalle de factura.
// Es independiente del host: el handler HTTP lo pinta como HTML/JSON y billctl como texto.
package view

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bill-detail/internal/application/billing"
)

// State ciclo de vida de una vista.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateExportAttempted
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateExportAttempted:
		return "export_attempted"
	default:
		return "unloaded"
	}
}

// Loader fuente de datos de la vista (billing.DetailUseCase).
type Loader interface {
	Load(ctx context.Context, billID int64) (*billing.BillDetail, error)
}

// Exporter acción "imprimir" de la vista (billing.ExportUseCase).
type Exporter interface {
	Export(ctx context.Context, billID int64) (*billing.ExportResult, error)
}

// ItemRow línea enumerada (Index empieza en 1).
type ItemRow struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

// TotalRow fila de la región de totales.
type TotalRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Snapshot copia inmutable de lo que muestra la vista.
type Snapshot struct {
	BillID        int64      `json:"bill_id"`
	State         string     `json:"state"`
	Title         string     `json:"title"`
	BillLabel     string     `json:"bill_label"`
	PartyCaption  string     `json:"party_caption"`
	Party         string     `json:"party"`
	ItemsCaption  string     `json:"items_caption"`
	Items         []ItemRow  `json:"items"`
	TotalsCaption string     `json:"totals_caption"`
	Totals        []TotalRow `json:"totals"`
}

// DetailView panel ligado a una factura. No es seguro para uso concurrente:
// cada host crea su propia vista.
type DetailView struct {
	billID   int64
	loader   Loader
	exporter Exporter
	style    Style

	state  State
	party  string
	items  []ItemRow
	totals []TotalRow
}

// NewDetailView construye el layout estático; los datos llegan con Load.
func NewDetailView(billID int64, loader Loader, exporter Exporter, style Style) *DetailView {
	v := &DetailView{
		billID:   billID,
		loader:   loader,
		exporter: exporter,
		style:    style.WithDefaults(),
	}
	v.totals = make([]TotalRow, len(v.style.TotalLabels))
	for i, l := range v.style.TotalLabels {
		v.totals[i] = TotalRow{Label: l}
	}
	v.items = []ItemRow{}
	return v
}

// BillID factura a la que está ligada la vista.
func (v *DetailView) BillID() int64 { return v.billID }

// State estado actual.
func (v *DetailView) State() State { return v.state }

// Style estilo efectivo (con valores por defecto aplicados).
func (v *DetailView) Style() Style { return v.style }

// Load consulta los datos y repinta las regiones. Si falla, la vista conserva
// exactamente lo que mostraba antes y el error clasificado se devuelve al host.
func (v *DetailView) Load(ctx context.Context) error {
	detail, err := v.loader.Load(ctx, v.billID)
	if err != nil {
		return fmt.Errorf("cargar factura %d: %w", v.billID, err)
	}

	party := fmt.Sprintf(v.style.PartyFormat, detail.Shop.FloorNo, detail.Shop.ShopNo)

	items := make([]ItemRow, 0, len(detail.Items))
	for i, it := range detail.Items {
		items = append(items, ItemRow{Index: i + 1, Description: it.Description})
	}

	t := detail.Bill.Totals()
	values := [3]decimal.Decimal{t.GeneralTotal, t.PriceAmount, t.AnnualCost}
	totals := make([]TotalRow, len(values))
	for i, val := range values {
		totals[i] = TotalRow{Label: v.style.TotalLabels[i], Value: FormatMoney(val, v.style.Currency)}
	}

	v.party, v.items, v.totals = party, items, totals
	if v.state == StateUnloaded {
		v.state = StateLoaded
	}
	return nil
}

// Print exporta el PDF de la factura de la vista y devuelve la ruta escrita.
func (v *DetailView) Print(ctx context.Context) (*billing.ExportResult, error) {
	v.state = StateExportAttempted
	res, err := v.exporter.Export(ctx, v.billID)
	if err != nil {
		return nil, fmt.Errorf("imprimir factura %d: %w", v.billID, err)
	}
	return res, nil
}

// Snapshot copia del contenido actual de las cuatro regiones.
func (v *DetailView) Snapshot() Snapshot {
	return Snapshot{
		BillID:        v.billID,
		State:         v.state.String(),
		Title:         v.style.Title,
		BillLabel:     fmt.Sprintf("%s %d", v.style.BillLabel, v.billID),
		PartyCaption:  v.style.PartyCaption,
		Party:         v.party,
		ItemsCaption:  v.style.ItemsCaption,
		Items:         append([]ItemRow{}, v.items...),
		TotalsCaption: v.style.TotalsCaption,
		Totals:        append([]TotalRow{}, v.totals...),
	}
}

// FormatMoney siempre con dos decimales: 12 → "12.00". Sin separadores de miles.
func FormatMoney(d decimal.Decimal, currency string) string {
	return currency + d.StringFixed(2)
}
