package billing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bill-detail/internal/application/billing"
	"github.com/jhoicas/bill-detail/internal/domain"
	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
	"github.com/jhoicas/bill-detail/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	calls int
	err   error
	last  *billing.BillDetail
}

func (g *fakeGenerator) GenerateBillPDF(_ context.Context, d *billing.BillDetail) ([]byte, error) {
	g.calls++
	g.last = d
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type brokenStore struct{ err error }

func (b brokenStore) Open(context.Context) (repository.BillSession, error) { return nil, b.err }

type recordingObserver struct{ loads, exports []error }

func (o *recordingObserver) ObserveLoad(err error)   { o.loads = append(o.loads, err) }
func (o *recordingObserver) ObserveExport(err error) { o.exports = append(o.exports, err) }

// newStore crea bill 1 (local 1, 2 líneas), bill 2 (sin líneas) y bill 3 (local inexistente).
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, func(w repository.BillWriter) error {
		if err := w.CreateShopProfile(ctx, &entity.ShopProfile{ID: 1, FloorNo: "3", ShopNo: "A-12"}); err != nil {
			return err
		}
		bills := []*entity.Bill{
			{ID: 1, ShopID: 1, GeneralTotal: decimal.NewFromInt(12), PriceAmount: decimal.RequireFromString("10.5"), AnnualCost: decimal.RequireFromString("144.129")},
			{ID: 2, ShopID: 1, GeneralTotal: decimal.NewFromInt(7)},
			{ID: 3, ShopID: 42},
		}
		for _, b := range bills {
			if err := w.CreateBill(ctx, b); err != nil {
				return err
			}
		}
		for _, d := range []string{"Consumo eléctrico", "Cuota común"} {
			if err := w.CreateLineItem(ctx, &entity.BillLineItem{BillID: 1, Description: d}); err != nil {
				return err
			}
		}
		return nil
	}))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// DetailUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDetailUseCase_Load_ResuelveFacturaLocalYLineas(t *testing.T) {
	store := newStore(t)
	obs := &recordingObserver{}
	uc := billing.NewDetailUseCase(store, obs, zerolog.Nop())

	d, err := uc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "3", d.Shop.FloorNo)
	assert.Equal(t, "A-12", d.Shop.ShopNo)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "Consumo eléctrico", d.Items[0].Description)

	assert.Equal(t, 0, store.OpenSessions(), "la sesión debe cerrarse al terminar")
	require.Len(t, obs.loads, 1)
	assert.NoError(t, obs.loads[0])
}

func TestDetailUseCase_Load_SinLineasDevuelveListaVacia(t *testing.T) {
	uc := billing.NewDetailUseCase(newStore(t), nil, zerolog.Nop())

	d, err := uc.Load(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, d.Items)
	assert.Empty(t, d.Items)
}

func TestDetailUseCase_Load_LocalInexistente_NotFound(t *testing.T) {
	store := newStore(t)
	uc := billing.NewDetailUseCase(store, nil, zerolog.Nop())

	_, err := uc.Load(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "shop profile 42")
	assert.Equal(t, 0, store.OpenSessions(), "la sesión se libera también en el camino de error")
}

func TestDetailUseCase_Load_FacturaInexistente_NotFound(t *testing.T) {
	uc := billing.NewDetailUseCase(newStore(t), nil, zerolog.Nop())

	for _, id := range []int64{99, 0, -4} {
		_, err := uc.Load(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "id=%d", id)
	}
}

func TestDetailUseCase_Load_AlmacenCaido_StoreUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	obs := &recordingObserver{}
	uc := billing.NewDetailUseCase(brokenStore{err: cause}, obs, zerolog.Nop())

	_, err := uc.Load(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
	assert.ErrorIs(t, err, cause)
	require.Len(t, obs.loads, 1)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(obs.loads[0]))
}

func TestDetailUseCase_List_NormalizaPaginacion(t *testing.T) {
	uc := billing.NewDetailUseCase(newStore(t), nil, zerolog.Nop())

	bills, err := uc.List(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Len(t, bills, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestFileName_Determinista(t *testing.T) {
	assert.Equal(t, "bill_42.pdf", billing.FileName(42))
}

func TestExportUseCase_Export_EscribeArchivoYSobrescribe(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t)
	gen := &fakeGenerator{}
	obs := &recordingObserver{}
	uc := billing.NewExportUseCase(store, gen, billing.ExportConfig{OutputDir: dir}, obs, zerolog.Nop())

	res, err := uc.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bill_1.pdf"), res.Path)
	assert.Equal(t, 2, res.Items)
	assert.NotEmpty(t, res.ExportID)

	// Segunda exportación del mismo id: sobrescribe sin error.
	res2, err := uc.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, res.Path, res2.Path)
	assert.NotEqual(t, res.ExportID, res2.ExportID)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(data))

	assert.Equal(t, 2, gen.calls, "cada exportación vuelve a consultar y a generar")
	assert.Equal(t, 0, store.OpenSessions())
	assert.Len(t, obs.exports, 2)
}

func TestExportUseCase_Export_SinLineas(t *testing.T) {
	gen := &fakeGenerator{}
	uc := billing.NewExportUseCase(newStore(t), gen, billing.ExportConfig{OutputDir: t.TempDir()}, nil, zerolog.Nop())

	res, err := uc.Export(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Items)
	require.NotNil(t, gen.last)
	assert.Empty(t, gen.last.Items)
}

func TestExportUseCase_Export_FalloDeGeneracion_NoDejaArchivo(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{err: errors.New("font missing")}
	uc := billing.NewExportUseCase(newStore(t), gen, billing.ExportConfig{OutputDir: dir}, nil, zerolog.Nop())

	_, err := uc.Export(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailure)

	_, statErr := os.Stat(filepath.Join(dir, "bill_1.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportUseCase_Export_LocalInexistente(t *testing.T) {
	gen := &fakeGenerator{}
	uc := billing.NewExportUseCase(newStore(t), gen, billing.ExportConfig{OutputDir: t.TempDir()}, nil, zerolog.Nop())

	_, err := uc.Export(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gen.calls, "no se dibuja nada si la carga falla")
}

func TestExportUseCase_Render_DevuelveBytesYNombre(t *testing.T) {
	uc := billing.NewExportUseCase(newStore(t), &fakeGenerator{}, billing.ExportConfig{}, nil, zerolog.Nop())

	data, name, err := uc.Render(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bill_1.pdf", name)
	assert.NotEmpty(t, data)
}
