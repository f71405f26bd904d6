package sqlite

// Los montos se guardan como TEXT para no perder precisión; las secuencias como arreglo JSON.
// bills.shop_id no lleva FK: los datos importados pueden traer locales huérfanos y la vista lo reporta.
const schema = `
CREATE TABLE IF NOT EXISTS shop_profiles (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    floor_no TEXT NOT NULL,
    shop_no  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    shop_id              INTEGER NOT NULL,
    gross_units          TEXT NOT NULL DEFAULT '0',
    unit_rate            TEXT NOT NULL DEFAULT '0',
    kw_rate              TEXT NOT NULL DEFAULT '0',
    country_fee          TEXT NOT NULL DEFAULT '0',
    legal_fees           TEXT NOT NULL DEFAULT '0',
    general_total        TEXT NOT NULL DEFAULT '0',
    price_amount         TEXT NOT NULL DEFAULT '0',
    annual_cost          TEXT NOT NULL DEFAULT '0',
    additional_signatory TEXT NOT NULL DEFAULT '[]',
    time_points          TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS bill_line_items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    bill_id     INTEGER NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    description TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bill_line_items_bill_id ON bill_line_items(bill_id);
`
