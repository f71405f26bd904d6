package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

var (
	_ repository.BillStore   = (*BillStore)(nil)
	_ repository.BillSession = (*billSession)(nil)
	_ repository.BillReader  = (*BillRepo)(nil)
	_ repository.BillWriter  = (*BillRepo)(nil)
)

// BillStore abre sesiones sobre el pool: cada sesión es una conexión adquirida.
type BillStore struct {
	pool *pgxpool.Pool
}

// NewBillStore construye el adaptador.
func NewBillStore(pool *pgxpool.Pool) *BillStore {
	return &BillStore{pool: pool}
}

// Open adquiere una conexión del pool. Close la devuelve.
func (s *BillStore) Open(ctx context.Context) (repository.BillSession, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}
	return &billSession{BillRepo: NewBillRepository(conn), conn: conn}, nil
}

type billSession struct {
	*BillRepo
	conn *pgxpool.Conn
}

func (s *billSession) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
	return nil
}

// BillRepo consultas de facturas (usable con pool, conexión o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el repositorio. Pasar pool, conn o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `
	id, shop_id, gross_units, unit_rate, kw_rate, country_fee, legal_fees,
	general_total, price_amount, annual_cost,
	COALESCE(additional_signatory, '{}')::text[], COALESCE(time_points, '{}')::text[]`

func scanBill(row interface{ Scan(dest ...any) error }) (*entity.Bill, error) {
	var b entity.Bill
	var signatory, timePoints []string
	if err := row.Scan(
		&b.ID, &b.ShopID, &b.GrossUnits, &b.UnitRate, &b.KWRate, &b.CountryFee, &b.LegalFees,
		&b.GeneralTotal, &b.PriceAmount, &b.AnnualCost,
		&signatory, &timePoints,
	); err != nil {
		return nil, err
	}
	var err error
	if b.AdditionalSignatory, err = parseDecimals(signatory); err != nil {
		return nil, fmt.Errorf("additional_signatory: %w", err)
	}
	if b.TimePoints, err = parseDecimals(timePoints); err != nil {
		return nil, fmt.Errorf("time_points: %w", err)
	}
	return &b, nil
}

// GetBill obtiene una factura por ID; (nil, nil) si no existe.
func (r *BillRepo) GetBill(ctx context.Context, id int64) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// GetShopProfile obtiene un local por ID; (nil, nil) si no existe.
func (r *BillRepo) GetShopProfile(ctx context.Context, id int64) (*entity.ShopProfile, error) {
	var s entity.ShopProfile
	err := r.q.QueryRow(ctx, `SELECT id, floor_no, shop_no FROM shop_profiles WHERE id = $1`, id).
		Scan(&s.ID, &s.FloorNo, &s.ShopNo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop profile: %w", err)
	}
	return &s, nil
}

// GetLineItemsByBillID obtiene todas las líneas de una factura en orden de inserción.
func (r *BillRepo) GetLineItemsByBillID(ctx context.Context, billID int64) ([]*entity.BillLineItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, bill_id, description FROM bill_line_items WHERE bill_id = $1 ORDER BY id`, billID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	list := []*entity.BillLineItem{}
	for rows.Next() {
		var it entity.BillLineItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.Description); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListBills lista facturas por ID con paginación.
func (r *BillRepo) ListBills(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	rows, err := r.q.Query(ctx, `SELECT `+billColumns+` FROM bills ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	list := []*entity.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CreateShopProfile persiste un local. ID cero = lo asigna la secuencia.
func (r *BillRepo) CreateShopProfile(ctx context.Context, shop *entity.ShopProfile) error {
	var err error
	if shop.ID == 0 {
		err = r.q.QueryRow(ctx,
			`INSERT INTO shop_profiles (floor_no, shop_no) VALUES ($1, $2) RETURNING id`,
			shop.FloorNo, shop.ShopNo).Scan(&shop.ID)
	} else {
		_, err = r.q.Exec(ctx,
			`INSERT INTO shop_profiles (id, floor_no, shop_no) VALUES ($1, $2, $3)`,
			shop.ID, shop.FloorNo, shop.ShopNo)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("shop profile %d already exists: %w", shop.ID, err)
		}
		return fmt.Errorf("insert shop profile: %w", err)
	}
	return nil
}

// CreateBill persiste la cabecera de la factura. ID cero = lo asigna la secuencia.
func (r *BillRepo) CreateBill(ctx context.Context, bill *entity.Bill) error {
	args := []any{
		bill.ShopID, bill.GrossUnits, bill.UnitRate, bill.KWRate, bill.CountryFee, bill.LegalFees,
		bill.GeneralTotal, bill.PriceAmount, bill.AnnualCost,
		formatDecimals(bill.AdditionalSignatory), formatDecimals(bill.TimePoints),
	}
	const cols = `shop_id, gross_units, unit_rate, kw_rate, country_fee, legal_fees,
		general_total, price_amount, annual_cost, additional_signatory, time_points`
	const vals = `$1, $2, $3, $4, $5, $6, $7, $8, $9, $10::text[]::numeric[], $11::text[]::numeric[]`

	var err error
	if bill.ID == 0 {
		err = r.q.QueryRow(ctx, `INSERT INTO bills (`+cols+`) VALUES (`+vals+`) RETURNING id`, args...).Scan(&bill.ID)
	} else {
		_, err = r.q.Exec(ctx, `INSERT INTO bills (id, `+cols+`) VALUES ($12, `+vals+`)`, append(args, bill.ID)...)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bill %d already exists: %w", bill.ID, err)
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea; el ID lo asigna la secuencia y fija el orden.
func (r *BillRepo) CreateLineItem(ctx context.Context, item *entity.BillLineItem) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO bill_line_items (bill_id, description) VALUES ($1, $2) RETURNING id`,
		item.BillID, item.Description).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}
