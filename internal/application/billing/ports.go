package billing

import (
	"context"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
)

// BillDetail es la foto de una factura con su local y sus líneas, leída en una sola sesión.
type BillDetail struct {
	Bill  *entity.Bill
	Shop  *entity.ShopProfile
	Items []*entity.BillLineItem
}

// BillPDFGenerator dibuja la factura y devuelve los bytes del PDF.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, detail *BillDetail) ([]byte, error)
}

// Observer recibe el resultado de cada carga y exportación (métricas). err es nil si terminó bien.
type Observer interface {
	ObserveLoad(err error)
	ObserveExport(err error)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(error)   {}
func (nopObserver) ObserveExport(error) {}
