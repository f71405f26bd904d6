package entity

// BillLineItem es una línea descriptiva de una factura.
// El orden es el de inserción en el almacén; el índice visible (1..n) no se persiste.
type BillLineItem struct {
	ID          int64
	BillID      int64
	Description string
}
