package view_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/domain"
	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
)

type stubLoader struct {
	detail *billing.BillDetail
	err    error
}

func (s *stubLoader) Load(context.Context, int64) (*billing.BillDetail, error) {
	return s.detail, s.err
}

type stubExporter struct {
	calls int
	err   error
}

func (s *stubExporter) Export(_ context.Context, id int64) (*billing.ExportResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &billing.ExportResult{BillID: id, Path: billing.FileName(id)}, nil
}

func sampleDetail(items ...string) *billing.BillDetail {
	d := &billing.BillDetail{
		Bill: &entity.Bill{
			ID: 7, ShopID: 2,
			GeneralTotal: decimal.NewFromInt(12),
			PriceAmount:  decimal.RequireFromString("3.5"),
			AnnualCost:   decimal.RequireFromString("1200.456"),
		},
		Shop:  &entity.ShopProfile{ID: 2, FloorNo: "4", ShopNo: "C-07"},
		Items: []*entity.BillLineItem{},
	}
	for i, desc := range items {
		d.Items = append(d.Items, &entity.BillLineItem{ID: int64(i + 1), BillID: 7, Description: desc})
	}
	return d
}

func TestDetailView_LayoutAntesDeCargar(t *testing.T) {
	v := view.NewDetailView(7, &stubLoader{}, &stubExporter{}, view.Style{})
	s := v.Snapshot()

	assert.Equal(t, view.StateUnloaded, v.State())
	assert.Equal(t, "GLOBAL CITY MANAGEMENT", s.Title)
	assert.Equal(t, "Bill No. 7", s.BillLabel)
	assert.Empty(t, s.Party)
	assert.Empty(t, s.Items)
	require.Len(t, s.Totals, 3)
	assert.Equal(t, "General Total", s.Totals[0].Label)
	assert.Empty(t, s.Totals[0].Value)
}

func TestDetailView_Load_PintaRegiones(t *testing.T) {
	loader := &stubLoader{detail: sampleDetail("Electricidad", "Agua", "Seguridad")}
	v := view.NewDetailView(7, loader, &stubExporter{}, view.DefaultStyle())

	require.NoError(t, v.Load(context.Background()))
	s := v.Snapshot()

	assert.Equal(t, "loaded", s.State)
	assert.Equal(t, "Floor 4, Shop C-07", s.Party)
	require.Len(t, s.Items, 3)
	for i, it := range s.Items {
		assert.Equal(t, i+1, it.Index, "índice 1-based en orden de visualización")
	}
	assert.Equal(t, "Seguridad", s.Items[2].Description)

	assert.Equal(t, "12.00", s.Totals[0].Value)
	assert.Equal(t, "3.50", s.Totals[1].Value)
	assert.Equal(t, "1200.46", s.Totals[2].Value)
}

func TestDetailView_Load_FalloConservaEstadoPrevio(t *testing.T) {
	loader := &stubLoader{detail: sampleDetail("Electricidad", "Agua")}
	v := view.NewDetailView(7, loader, &stubExporter{}, view.DefaultStyle())
	require.NoError(t, v.Load(context.Background()))
	before := v.Snapshot()

	loader.detail = nil
	loader.err = domain.E(domain.KindNotFound, "get shop profile 2", nil)
	err := v.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, v.Snapshot(), "ninguna fila se crea ni se destruye al fallar")
}

func TestDetailView_Load_FalloSinCargaPrevia(t *testing.T) {
	loader := &stubLoader{err: domain.E(domain.KindStoreUnavailable, "load", errors.New("timeout"))}
	v := view.NewDetailView(7, loader, &stubExporter{}, view.DefaultStyle())

	err := v.Load(context.Background())
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
	assert.Equal(t, view.StateUnloaded, v.State())
	assert.Empty(t, v.Snapshot().Items)
}

func TestDetailView_Print(t *testing.T) {
	exp := &stubExporter{}
	v := view.NewDetailView(7, &stubLoader{detail: sampleDetail()}, exp, view.DefaultStyle())
	require.NoError(t, v.Load(context.Background()))

	res, err := v.Print(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bill_7.pdf", res.Path)
	assert.Equal(t, view.StateExportAttempted, v.State())

	exp.err = domain.E(domain.KindRenderFailure, "pdf", errors.New("disk full"))
	_, err = v.Print(context.Background())
	assert.ErrorIs(t, err, domain.ErrRenderFailure)
	assert.Equal(t, 2, exp.calls)
}

func TestDetailView_EstiloExplicito(t *testing.T) {
	st := view.DefaultStyle()
	st.PartyFormat = "Piso %s / Local %s"
	st.Currency = "$"
	v := view.NewDetailView(7, &stubLoader{detail: sampleDetail()}, &stubExporter{}, st)
	require.NoError(t, v.Load(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, "Piso 4 / Local C-07", s.Party)
	assert.Equal(t, "$12.00", s.Totals[0].Value)

	// El estilo de una vista no afecta a otra.
	other := view.NewDetailView(8, &stubLoader{}, &stubExporter{}, view.DefaultStyle())
	assert.Equal(t, "Floor %s, Shop %s", other.Style().PartyFormat)
}

func TestFormatMoney_DosDecimales(t *testing.T) {
	cases := map[string]string{
		"12":       "12.00",
		"0":        "0.00",
		"3.1":      "3.10",
		"2.345":    "2.35",
		"-7.5":     "-7.50",
		"99999.99": "99999.99",
	}
	for in, want := range cases {
		assert.Equal(t, want, view.FormatMoney(decimal.RequireFromString(in), ""), "in=%s", in)
	}
}

func TestWriteText(t *testing.T) {
	v := view.NewDetailView(7, &stubLoader{detail: sampleDetail("Electricidad")}, &stubExporter{}, view.DefaultStyle())
	require.NoError(t, v.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, view.WriteText(&buf, v.Snapshot()))
	out := buf.String()

	assert.Contains(t, out, "GLOBAL CITY MANAGEMENT")
	assert.Contains(t, out, "Floor 4, Shop C-07")
	assert.Contains(t, out, "1.  Electricidad")
	assert.Contains(t, out, "12.00")
}
