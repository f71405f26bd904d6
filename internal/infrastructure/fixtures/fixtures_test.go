package fixtures_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bill-detail/internal/infrastructure/fixtures"
	"github.com/jhoicas/bill-detail/internal/infrastructure/memory"
	"github.com/jhoicas/bill-detail/internal/infrastructure/sqlite"
)

func TestLoad_ArchivoDeEjemplo(t *testing.T) {
	f, err := fixtures.Load(filepath.Join("..", "..", "..", "testdata", "fixtures.yaml"))
	require.NoError(t, err)
	assert.Len(t, f.Shops, 2)
	require.Len(t, f.Bills, 2)
	assert.Len(t, f.Bills[0].Items, 3)
}

func TestApply_Memory(t *testing.T) {
	f, err := fixtures.Parse([]byte(`
shops:
  - {id: 1, floor_no: "3", shop_no: "A-12"}
bills:
  - id: 5
    shop_id: 1
    general_total: "12"
    time_points: ["1", "2.5"]
    items: ["Uno", "Dos"]
`))
	require.NoError(t, err)

	store := memory.NewStore()
	st, err := f.Apply(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Stats{Shops: 1, Bills: 1, Items: 2}, st)

	sess, err := store.Open(context.Background())
	require.NoError(t, err)
	defer sess.Close()
	bill, err := sess.GetBill(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.Equal(t, "12", bill.GeneralTotal.String())
	require.Len(t, bill.TimePoints, 2)
	assert.Equal(t, "2.5", bill.TimePoints[1].String())
}

func TestApply_SQLite(t *testing.T) {
	f, err := fixtures.Load(filepath.Join("..", "..", "..", "testdata", "fixtures.yaml"))
	require.NoError(t, err)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer store.Close()

	st, err := f.Apply(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Items)

	sess, err := store.Open(context.Background())
	require.NoError(t, err)
	defer sess.Close()
	items, err := sess.GetLineItemsByBillID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Electricity consumption", items[0].Description)
}

func TestApply_MontoInvalido(t *testing.T) {
	f, err := fixtures.Parse([]byte(`
bills:
  - {id: 1, shop_id: 1, general_total: "doce"}
`))
	require.NoError(t, err)

	_, err = f.Apply(context.Background(), memory.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "general_total")
}

func TestParse_YAMLInvalido(t *testing.T) {
	_, err := fixtures.Parse([]byte("shops: [unterminated"))
	assert.Error(t, err)
}
