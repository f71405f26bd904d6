package entity

import "github.com/shopspring/decimal"

// Bill representa la factura de un local para un período.
// ShopID debe resolver a exactamente un ShopProfile.
type Bill struct {
	ID                  int64
	ShopID              int64
	GrossUnits          decimal.Decimal
	UnitRate            decimal.Decimal
	KWRate              decimal.Decimal // tarifa por kilovatio
	CountryFee          decimal.Decimal
	LegalFees           decimal.Decimal
	GeneralTotal        decimal.Decimal
	PriceAmount         decimal.Decimal
	AnnualCost          decimal.Decimal
	AdditionalSignatory []decimal.Decimal // montos de firmantes adicionales
	TimePoints          []decimal.Decimal
}

// Totals son los tres montos que muestran tanto la vista como el PDF.
type Totals struct {
	GeneralTotal decimal.Decimal
	PriceAmount  decimal.Decimal
	AnnualCost   decimal.Decimal
}

// Totals devuelve el bloque de totales de la factura.
func (b *Bill) Totals() Totals {
	return Totals{
		GeneralTotal: b.GeneralTotal,
		PriceAmount:  b.PriceAmount,
		AnnualCost:   b.AnnualCost,
	}
}
