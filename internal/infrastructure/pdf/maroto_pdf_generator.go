// Package pdf dibuja la factura de un local en tamaño carta.
//
// Layout de la página (de arriba hacia abajo):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: GLOBAL CITY MANAGEMENT            │  Bill No.      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOCAL: piso + número                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LÍNEAS: # | Descripción                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARIFAS: unidades / tarifa / kW / cuota país / legales      │
//	│  TOTALES: total general / precio / costo anual               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BLOQUES: firmantes adicionales │ puntos de tiempo           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/domain/entity"
)

var _ billing.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Alto de cada renglón dentro de un bloque multilínea (mm).
const blockLineHeight = 4.5

// DefaultTitle encabezado fijo del documento.
const DefaultTitle = "GLOBAL CITY MANAGEMENT"

// Config opciones del generador.
type Config struct {
	Title    string
	Compress bool
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	cfg Config
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(cfg Config) *MarotoPDFGenerator {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &MarotoPDFGenerator{cfg: cfg}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(ctx context.Context, detail *billing.BillDetail) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if detail == nil || detail.Bill == nil || detail.Shop == nil {
		return nil, fmt.Errorf("pdf: detalle incompleto")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithCompression(g.cfg.Compress).
		WithTitle(fmt.Sprintf("Bill %d", detail.Bill.ID), false).
		WithAuthor(g.cfg.Title, false).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.cfg.Title, detail.Bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shopRow(detail.Shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ITEMS"))
	m.AddRows(itemRows(detail.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("CHARGES"))
	m.AddRows(amountRows([][2]string{
		{"Gross Units", money(detail.Bill.GrossUnits)},
		{"Unit Rate", money(detail.Bill.UnitRate)},
		{"Per kW Rate", money(detail.Bill.KWRate)},
		{"Country Fee", money(detail.Bill.CountryFee)},
		{"Legal Fees", money(detail.Bill.LegalFees)},
	}, false)...)

	t := detail.Bill.Totals()
	m.AddRows(sectionTitle("TOTALS"))
	m.AddRows(amountRows([][2]string{
		{"General Total", money(t.GeneralTotal)},
		{"Price Amount", money(t.PriceAmount)},
		{"Annual Cost", money(t.AnnualCost)},
	}, true)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sequenceBlocks(detail.Bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, bill *entity.Bill) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("BILL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("No. %d", bill.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func shopRow(shop *entity.ShopProfile) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SHOP PROFILE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Floor: %s   |   Shop No: %s", nonEmpty(shop.FloorNo, "-"), nonEmpty(shop.ShopNo, "-")),
				props.Text{Size: 9, Top: 6}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// itemRows una fila por línea, enumerada desde 1. Sin líneas no se dibuja nada.
func itemRows(items []*entity.BillLineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d.", i+1), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 2})),
			col.New(11).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

func amountRows(pairs [][2]string, bold bool) []core.Row {
	style := fontstyle.Normal
	var color *props.Color
	if bold {
		style = fontstyle.Bold
		color = colorPrimary
	}
	rows := make([]core.Row, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(p[0]+":", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})),
			col.New(3).Add(text.New(p[1], props.Text{Style: style, Size: 9, Align: align.Right, Right: 1, Color: color})),
		))
	}
	return rows
}

// sequenceBlocks dibuja las dos secuencias numéricas lado a lado; el alto de la fila
// y el desplazamiento de cada renglón salen del número de líneas del bloque más largo.
func sequenceBlocks(bill *entity.Bill) core.Row {
	left := blockLines(bill.AdditionalSignatory)
	right := blockLines(bill.TimePoints)
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	height := blockLineHeight*float64(n+1) + 2

	return row.New(height).Add(
		col.New(6).Add(block("ADDITIONAL SIGNATORY", left)...),
		col.New(6).Add(block("TIME POINTS", right)...),
	)
}

func block(caption string, lines []string) []core.Component {
	comps := []core.Component{
		text.New(caption, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	}
	for i, l := range lines {
		comps = append(comps, text.New(l, props.Text{
			Size: 8, Color: colorGray, Left: 2, Top: 1 + blockLineHeight*float64(i+1),
		}))
	}
	return comps
}

func blockLines(values []decimal.Decimal) []string {
	if len(values) == 0 {
		return []string{"-"}
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = money(v)
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formato fijo de dos decimales, sin separadores de miles.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
