package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

var (
	_ repository.BillReader = (*billRepo)(nil)
	_ repository.BillLister = (*billRepo)(nil)
	_ repository.BillWriter = (*billRepo)(nil)
)

// querier es lo común entre *sql.Conn, *sql.Tx y *sql.DB.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type billRepo struct {
	q querier
}

const billColumns = `id, shop_id, gross_units, unit_rate, kw_rate, country_fee, legal_fees,
	general_total, price_amount, annual_cost, additional_signatory, time_points`

func scanBill(row interface{ Scan(dest ...any) error }) (*entity.Bill, error) {
	var b entity.Bill
	var signatory, timePoints string
	if err := row.Scan(
		&b.ID, &b.ShopID, &b.GrossUnits, &b.UnitRate, &b.KWRate, &b.CountryFee, &b.LegalFees,
		&b.GeneralTotal, &b.PriceAmount, &b.AnnualCost, &signatory, &timePoints,
	); err != nil {
		return nil, err
	}
	var err error
	if b.AdditionalSignatory, err = decodeDecimals(signatory); err != nil {
		return nil, fmt.Errorf("additional_signatory: %w", err)
	}
	if b.TimePoints, err = decodeDecimals(timePoints); err != nil {
		return nil, fmt.Errorf("time_points: %w", err)
	}
	return &b, nil
}

func (r *billRepo) GetBill(ctx context.Context, id int64) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (r *billRepo) GetShopProfile(ctx context.Context, id int64) (*entity.ShopProfile, error) {
	var s entity.ShopProfile
	err := r.q.QueryRowContext(ctx, `SELECT id, floor_no, shop_no FROM shop_profiles WHERE id = ?`, id).
		Scan(&s.ID, &s.FloorNo, &s.ShopNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop profile: %w", err)
	}
	return &s, nil
}

func (r *billRepo) GetLineItemsByBillID(ctx context.Context, billID int64) ([]*entity.BillLineItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, bill_id, description FROM bill_line_items WHERE bill_id = ? ORDER BY id`, billID)
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

func (r *billRepo) ListBills(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+billColumns+` FROM bills ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
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

func (r *billRepo) CreateShopProfile(ctx context.Context, shop *entity.ShopProfile) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO shop_profiles (id, floor_no, shop_no) VALUES (NULLIF(?, 0), ?, ?)`,
		shop.ID, shop.FloorNo, shop.ShopNo)
	if err != nil {
		return fmt.Errorf("insert shop profile: %w", err)
	}
	return assignID(res, &shop.ID)
}

func (r *billRepo) CreateBill(ctx context.Context, bill *entity.Bill) error {
	signatory, err := encodeDecimals(bill.AdditionalSignatory)
	if err != nil {
		return err
	}
	timePoints, err := encodeDecimals(bill.TimePoints)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `INSERT INTO bills (`+billColumns+`)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.ShopID, bill.GrossUnits, bill.UnitRate, bill.KWRate, bill.CountryFee, bill.LegalFees,
		bill.GeneralTotal, bill.PriceAmount, bill.AnnualCost, signatory, timePoints)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return assignID(res, &bill.ID)
}

func (r *billRepo) CreateLineItem(ctx context.Context, item *entity.BillLineItem) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO bill_line_items (bill_id, description) VALUES (?, ?)`, item.BillID, item.Description)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return assignID(res, &item.ID)
}

func assignID(res sql.Result, id *int64) error {
	if *id != 0 {
		return nil
	}
	last, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	*id = last
	return nil
}

func encodeDecimals(values []decimal.Decimal) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode decimals: %w", err)
	}
	return string(b), nil
}

func decodeDecimals(raw string) ([]decimal.Decimal, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var out []decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
