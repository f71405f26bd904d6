package repository

import (
	"context"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
)

// BillReader agrupa las tres consultas puntuales de la vista de detalle.
// Un registro inexistente se devuelve como (nil, nil); el caso de uso decide qué hacer.
type BillReader interface {
	GetBill(ctx context.Context, id int64) (*entity.Bill, error)
	GetShopProfile(ctx context.Context, id int64) (*entity.ShopProfile, error)
	// GetLineItemsByBillID devuelve todas las líneas en orden de inserción (sin paginar).
	GetLineItemsByBillID(ctx context.Context, billID int64) ([]*entity.BillLineItem, error)
}

// BillLister alimenta la lista de selección de facturas.
type BillLister interface {
	ListBills(ctx context.Context, limit, offset int) ([]*entity.Bill, error)
}

// BillSession es un recurso con alcance: quien llama a Open debe llamar a Close en todos los caminos.
type BillSession interface {
	BillReader
	BillLister
	Close() error
}

// BillStore abre sesiones de lectura contra el almacén.
type BillStore interface {
	Open(ctx context.Context) (BillSession, error)
}

// BillWriter es el puerto de escritura usado solo por la carga de datos iniciales (seed).
type BillWriter interface {
	CreateShopProfile(ctx context.Context, shop *entity.ShopProfile) error
	CreateBill(ctx context.Context, bill *entity.Bill) error
	CreateLineItem(ctx context.Context, item *entity.BillLineItem) error
}

// Seeder ejecuta fn dentro de una transacción; Commit si fn no falla, Rollback en otro caso.
type Seeder interface {
	Seed(ctx context.Context, fn func(w BillWriter) error) error
}
