// Package fixtures lee el archivo YAML de datos iniciales y lo vuelca en un repository.Seeder.
//
// Formato:
//
//	shops:
//	  - id: 1
//	    floor_no: "3"
//	    shop_no: "A-12"
//	bills:
//	  - id: 1
//	    shop_id: 1
//	    general_total: "1250.00"
//	    additional_signatory: ["10", "20.5"]
//	    items: ["Electricity", "Water"]
package fixtures

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

// File contenido del archivo de fixtures. Los montos van como texto para no pasar por float.
type File struct {
	Shops []Shop `yaml:"shops"`
	Bills []Bill `yaml:"bills"`
}

// Shop local.
type Shop struct {
	ID      int64  `yaml:"id"`
	FloorNo string `yaml:"floor_no"`
	ShopNo  string `yaml:"shop_no"`
}

// Bill factura con sus líneas.
type Bill struct {
	ID                  int64    `yaml:"id"`
	ShopID              int64    `yaml:"shop_id"`
	GrossUnits          string   `yaml:"gross_units"`
	UnitRate            string   `yaml:"unit_rate"`
	KWRate              string   `yaml:"kw_rate"`
	CountryFee          string   `yaml:"country_fee"`
	LegalFees           string   `yaml:"legal_fees"`
	GeneralTotal        string   `yaml:"general_total"`
	PriceAmount         string   `yaml:"price_amount"`
	AnnualCost          string   `yaml:"annual_cost"`
	AdditionalSignatory []string `yaml:"additional_signatory"`
	TimePoints          []string `yaml:"time_points"`
	Items               []string `yaml:"items"`
}

// Load lee y parsea el archivo.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parsea el YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixtures: yaml inválido: %w", err)
	}
	return &f, nil
}

// Stats conteo de registros escritos.
type Stats struct {
	Shops int
	Bills int
	Items int
}

// Apply escribe locales, facturas y líneas (en ese orden) en una sola transacción.
func (f *File) Apply(ctx context.Context, seeder repository.Seeder) (Stats, error) {
	bills := make([]*entity.Bill, len(f.Bills))
	for i, b := range f.Bills {
		eb, err := b.entity()
		if err != nil {
			return Stats{}, fmt.Errorf("fixtures: bill #%d: %w", i+1, err)
		}
		bills[i] = eb
	}

	var st Stats
	err := seeder.Seed(ctx, func(w repository.BillWriter) error {
		st = Stats{}
		for _, s := range f.Shops {
			if err := w.CreateShopProfile(ctx, &entity.ShopProfile{ID: s.ID, FloorNo: s.FloorNo, ShopNo: s.ShopNo}); err != nil {
				return err
			}
			st.Shops++
		}
		for i, b := range bills {
			if err := w.CreateBill(ctx, b); err != nil {
				return err
			}
			st.Bills++
			for _, desc := range f.Bills[i].Items {
				if err := w.CreateLineItem(ctx, &entity.BillLineItem{BillID: b.ID, Description: desc}); err != nil {
					return err
				}
				st.Items++
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("fixtures: aplicar: %w", err)
	}
	return st, nil
}

func (b Bill) entity() (*entity.Bill, error) {
	out := &entity.Bill{ID: b.ID, ShopID: b.ShopID}
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"gross_units", b.GrossUnits, &out.GrossUnits},
		{"unit_rate", b.UnitRate, &out.UnitRate},
		{"kw_rate", b.KWRate, &out.KWRate},
		{"country_fee", b.CountryFee, &out.CountryFee},
		{"legal_fees", b.LegalFees, &out.LegalFees},
		{"general_total", b.GeneralTotal, &out.GeneralTotal},
		{"price_amount", b.PriceAmount, &out.PriceAmount},
		{"annual_cost", b.AnnualCost, &out.AnnualCost},
	}
	for _, fd := range fields {
		d, err := parseAmount(fd.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fd.name, err)
		}
		*fd.dst = d
	}
	var err error
	if out.AdditionalSignatory, err = parseAmounts(b.AdditionalSignatory); err != nil {
		return nil, fmt.Errorf("additional_signatory: %w", err)
	}
	if out.TimePoints, err = parseAmounts(b.TimePoints); err != nil {
		return nil, fmt.Errorf("time_points: %w", err)
	}
	return out, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func parseAmounts(raw []string) ([]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]decimal.Decimal, len(raw))
	for i, s := range raw {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
