package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bill-detail/internal/domain"
	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

// DetailUseCase resuelve factura → local → líneas para la vista de detalle.
type DetailUseCase struct {
	store    repository.BillStore
	observer Observer
	log      zerolog.Logger
}

// NewDetailUseCase construye el caso de uso. observer puede ser nil.
func NewDetailUseCase(store repository.BillStore, observer Observer, log zerolog.Logger) *DetailUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &DetailUseCase{store: store, observer: observer, log: log}
}

// Load abre una sesión, ejecuta las tres consultas puntuales y la cierra.
//
// Retorna:
//   - domain.ErrNotFound         si no existe la factura o su local.
//   - domain.ErrStoreUnavailable si el almacén falla en cualquier consulta.
func (uc *DetailUseCase) Load(ctx context.Context, billID int64) (detail *BillDetail, err error) {
	defer func() { uc.observer.ObserveLoad(err) }()

	session, err := openSession(ctx, uc.store, "load")
	if err != nil {
		return nil, err
	}
	defer closeSession(uc.log, session, billID)

	detail, err = fetchDetail(ctx, session, billID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("bill_id", billID).Str("kind", domain.KindOf(err).String()).Msg("carga de factura fallida")
		return nil, err
	}
	uc.log.Debug().Int64("bill_id", billID).Int("items", len(detail.Items)).Msg("factura cargada")
	return detail, nil
}

// List devuelve una página de facturas para la lista de selección.
func (uc *DetailUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	session, err := openSession(ctx, uc.store, "list")
	if err != nil {
		return nil, err
	}
	defer closeSession(uc.log, session, 0)

	bills, err := session.ListBills(ctx, limit, offset)
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, "list bills", err)
	}
	return bills, nil
}

func openSession(ctx context.Context, store repository.BillStore, op string) (repository.BillSession, error) {
	session, err := store.Open(ctx)
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, op+": abrir sesión", err)
	}
	return session, nil
}

func closeSession(log zerolog.Logger, session repository.BillSession, billID int64) {
	if err := session.Close(); err != nil {
		log.Warn().Err(err).Int64("bill_id", billID).Msg("cerrar sesión")
	}
}

// fetchDetail hace las tres consultas sin joins. Un nil del repositorio se traduce a NotFound.
func fetchDetail(ctx context.Context, r repository.BillReader, billID int64) (*BillDetail, error) {
	if billID <= 0 {
		return nil, domain.E(domain.KindNotFound, fmt.Sprintf("get bill %d", billID), nil)
	}

	bill, err := r.GetBill(ctx, billID)
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, fmt.Sprintf("get bill %d", billID), err)
	}
	if bill == nil {
		return nil, domain.E(domain.KindNotFound, fmt.Sprintf("get bill %d", billID), nil)
	}

	shop, err := r.GetShopProfile(ctx, bill.ShopID)
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, fmt.Sprintf("get shop profile %d", bill.ShopID), err)
	}
	if shop == nil {
		return nil, domain.E(domain.KindNotFound, fmt.Sprintf("get shop profile %d", bill.ShopID), nil)
	}

	items, err := r.GetLineItemsByBillID(ctx, billID)
	if err != nil {
		return nil, domain.E(domain.KindStoreUnavailable, fmt.Sprintf("get line items of bill %d", billID), err)
	}
	if items == nil {
		items = []*entity.BillLineItem{}
	}
	return &BillDetail{Bill: bill, Shop: shop, Items: items}, nil
}
