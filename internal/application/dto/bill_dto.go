package dto

import "github.com/jhoicas/bill-detail/internal/domain/entity"

// BillSummary fila de la lista de selección.
type BillSummary struct {
	ID           int64  `json:"id"`
	ShopID       int64  `json:"shop_id"`
	GeneralTotal string `json:"general_total"`
	PriceAmount  string `json:"price_amount"`
	AnnualCost   string `json:"annual_cost"`
}

// BillListResponse respuesta de GET /api/bills.
type BillListResponse struct {
	Items []BillSummary `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ExportResponse respuesta de POST /api/bills/:id/print.
type ExportResponse struct {
	ExportID string `json:"export_id"`
	BillID   int64  `json:"bill_id"`
	File     string `json:"file"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	Items    int    `json:"items"`
}

// ToBillSummary montos con dos decimales, igual que la vista.
func ToBillSummary(b *entity.Bill) BillSummary {
	t := b.Totals()
	return BillSummary{
		ID:           b.ID,
		ShopID:       b.ShopID,
		GeneralTotal: t.GeneralTotal.StringFixed(2),
		PriceAmount:  t.PriceAmount.StringFixed(2),
		AnnualCost:   t.AnnualCost.StringFixed(2),
	}
}
