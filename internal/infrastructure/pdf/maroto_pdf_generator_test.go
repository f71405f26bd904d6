package pdf_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
	"github.com/jhoicas/bill-detail/internal/infrastructure/memory"
	"github.com/jhoicas/bill-detail/internal/infrastructure/pdf"
)

func detail(items ...string) *billing.BillDetail {
	d := &billing.BillDetail{
		Bill: &entity.Bill{
			ID:                  15,
			ShopID:              4,
			GrossUnits:          decimal.NewFromInt(340),
			UnitRate:            decimal.RequireFromString("0.75"),
			KWRate:              decimal.RequireFromString("1.2"),
			CountryFee:          decimal.NewFromInt(5),
			LegalFees:           decimal.NewFromInt(2),
			GeneralTotal:        decimal.NewFromInt(12),
			PriceAmount:         decimal.RequireFromString("262"),
			AnnualCost:          decimal.RequireFromString("3144.5"),
			AdditionalSignatory: []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(20)},
			TimePoints:          []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3)},
		},
		Shop: &entity.ShopProfile{ID: 4, FloorNo: "1", ShopNo: "G-03"},
	}
	for _, it := range items {
		d.Items = append(d.Items, &entity.BillLineItem{BillID: 15, Description: it})
	}
	return d
}

func TestMarotoPDFGenerator_GeneraPDFValido(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(pdf.Config{Compress: false})

	out, err := g.GenerateBillPDF(context.Background(), detail("Electricity", "Water"))
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "debe empezar con la cabecera PDF")
	assert.True(t, bytes.Contains(out, []byte("GLOBAL CITY MANAGEMENT")), "el encabezado fijo debe aparecer en el contenido")
	assert.True(t, bytes.Contains(out, []byte("Electricity")))
	assert.True(t, bytes.Contains(out, []byte("3144.50")), "montos con dos decimales")
	assert.True(t, bytes.Contains(out, []byte("TOTALS")))
}

func TestMarotoPDFGenerator_SinLineasConservaTotales(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(pdf.Config{})

	out, err := g.GenerateBillPDF(context.Background(), detail())
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("TOTALS")))
	assert.True(t, bytes.Contains(out, []byte("12.00")))
}

func TestMarotoPDFGenerator_DetalleIncompleto(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(pdf.Config{})
	_, err := g.GenerateBillPDF(context.Background(), &billing.BillDetail{})
	assert.Error(t, err)
}

func TestMarotoPDFGenerator_CompresionReduceTamano(t *testing.T) {
	d := detail("A", "B", "C", "D")
	plain, err := pdf.NewMarotoPDFGenerator(pdf.Config{}).GenerateBillPDF(context.Background(), d)
	require.NoError(t, err)
	packed, err := pdf.NewMarotoPDFGenerator(pdf.Config{Compress: true}).GenerateBillPDF(context.Background(), d)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

// Exportación completa: caso de uso + generador real + disco.
func TestExport_EscribeBillPDFEnDirectorio(t *testing.T) {
	dir := t.TempDir()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, func(w repository.BillWriter) error {
		d := detail("Electricity")
		if err := w.CreateShopProfile(ctx, d.Shop); err != nil {
			return err
		}
		if err := w.CreateBill(ctx, d.Bill); err != nil {
			return err
		}
		return w.CreateLineItem(ctx, d.Items[0])
	}))

	uc := billing.NewExportUseCase(store, pdf.NewMarotoPDFGenerator(pdf.Config{}),
		billing.ExportConfig{OutputDir: dir}, nil, zerolog.Nop())

	first, err := uc.Export(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bill_15.pdf"), first.Path)

	second, err := uc.Export(ctx, 15)
	require.NoError(t, err, "exportar dos veces sobrescribe sin error")

	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("GLOBAL CITY MANAGEMENT")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
