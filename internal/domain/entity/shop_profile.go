package entity

// ShopProfile identifica y ubica al local facturado.
type ShopProfile struct {
	ID      int64
	FloorNo string
	ShopNo  string
}
