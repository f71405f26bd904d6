package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. shop_profiles antes de bills por la FK.
const schema = `
CREATE TABLE IF NOT EXISTS shop_profiles (
    id       BIGSERIAL PRIMARY KEY,
    floor_no TEXT NOT NULL,
    shop_no  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id                   BIGSERIAL PRIMARY KEY,
    shop_id              BIGINT NOT NULL REFERENCES shop_profiles(id),
    gross_units          NUMERIC(14,2) NOT NULL DEFAULT 0,
    unit_rate            NUMERIC(14,4) NOT NULL DEFAULT 0,
    kw_rate              NUMERIC(14,4) NOT NULL DEFAULT 0,
    country_fee          NUMERIC(14,2) NOT NULL DEFAULT 0,
    legal_fees           NUMERIC(14,2) NOT NULL DEFAULT 0,
    general_total        NUMERIC(14,2) NOT NULL DEFAULT 0,
    price_amount         NUMERIC(14,2) NOT NULL DEFAULT 0,
    annual_cost          NUMERIC(14,2) NOT NULL DEFAULT 0,
    additional_signatory NUMERIC[] NOT NULL DEFAULT '{}',
    time_points          NUMERIC[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS bill_line_items (
    id          BIGSERIAL PRIMARY KEY,
    bill_id     BIGINT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    description TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_line_items_bill_id ON bill_line_items(bill_id);
`

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
