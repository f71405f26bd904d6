// Package memory implementa repository.BillStore en memoria.
// Se usa como doble de pruebas y en el modo DB_DRIVER=memory, cargado desde fixtures.
// No valida integridad referencial: una factura puede apuntar a un local inexistente.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/bill-detail/internal/domain/entity"
	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

var (
	_ repository.BillStore   = (*Store)(nil)
	_ repository.Seeder      = (*Store)(nil)
	_ repository.BillSession = (*session)(nil)
)

// Store es seguro para uso concurrente.
type Store struct {
	mu    sync.RWMutex
	data  dataset
	opens int
}

type dataset struct {
	shops  map[int64]entity.ShopProfile
	bills  map[int64]entity.Bill
	items  []entity.BillLineItem
	nextID int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: dataset{
		shops: make(map[int64]entity.ShopProfile),
		bills: make(map[int64]entity.Bill),
	}}
}

// Open devuelve una sesión de lectura sobre el estado actual.
func (s *Store) Open(ctx context.Context) (repository.BillSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.opens++
	s.mu.Unlock()
	return &session{s: s}, nil
}

// OpenSessions número de sesiones abiertas y aún no cerradas.
func (s *Store) OpenSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opens
}

// Seed aplica fn sobre una copia y la publica solo si fn no falla.
func (s *Store) Seed(ctx context.Context, fn func(w repository.BillWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn(&writer{d: &staged}); err != nil {
		return err
	}
	s.data = staged
	return nil
}

func (d dataset) clone() dataset {
	c := dataset{
		shops:  make(map[int64]entity.ShopProfile, len(d.shops)),
		bills:  make(map[int64]entity.Bill, len(d.bills)),
		items:  append([]entity.BillLineItem(nil), d.items...),
		nextID: d.nextID,
	}
	for k, v := range d.shops {
		c.shops[k] = v
	}
	for k, v := range d.bills {
		c.bills[k] = v
	}
	return c
}

type writer struct {
	d *dataset
}

func (w *writer) CreateShopProfile(_ context.Context, shop *entity.ShopProfile) error {
	if shop.ID == 0 {
		shop.ID = int64(len(w.d.shops) + 1)
	}
	if _, ok := w.d.shops[shop.ID]; ok {
		return fmt.Errorf("shop profile %d ya existe", shop.ID)
	}
	w.d.shops[shop.ID] = *shop
	return nil
}

func (w *writer) CreateBill(_ context.Context, bill *entity.Bill) error {
	if bill.ID == 0 {
		bill.ID = int64(len(w.d.bills) + 1)
	}
	if _, ok := w.d.bills[bill.ID]; ok {
		return fmt.Errorf("bill %d ya existe", bill.ID)
	}
	w.d.bills[bill.ID] = copyBill(*bill)
	return nil
}

func (w *writer) CreateLineItem(_ context.Context, item *entity.BillLineItem) error {
	w.d.nextID++
	item.ID = w.d.nextID
	w.d.items = append(w.d.items, *item)
	return nil
}

type session struct {
	s      *Store
	closed bool
}

func (ss *session) Close() error {
	if ss.closed {
		return nil
	}
	ss.closed = true
	ss.s.mu.Lock()
	ss.s.opens--
	ss.s.mu.Unlock()
	return nil
}

func (ss *session) check(ctx context.Context) error {
	if ss.closed {
		return fmt.Errorf("memory: sesión cerrada")
	}
	return ctx.Err()
}

func (ss *session) GetBill(ctx context.Context, id int64) (*entity.Bill, error) {
	if err := ss.check(ctx); err != nil {
		return nil, err
	}
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	b, ok := ss.s.data.bills[id]
	if !ok {
		return nil, nil
	}
	c := copyBill(b)
	return &c, nil
}

func (ss *session) GetShopProfile(ctx context.Context, id int64) (*entity.ShopProfile, error) {
	if err := ss.check(ctx); err != nil {
		return nil, err
	}
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	sp, ok := ss.s.data.shops[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (ss *session) GetLineItemsByBillID(ctx context.Context, billID int64) ([]*entity.BillLineItem, error) {
	if err := ss.check(ctx); err != nil {
		return nil, err
	}
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	var list []*entity.BillLineItem
	for _, it := range ss.s.data.items {
		if it.BillID == billID {
			c := it
			list = append(list, &c)
		}
	}
	return list, nil
}

func (ss *session) ListBills(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	if err := ss.check(ctx); err != nil {
		return nil, err
	}
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	ids := make([]int64, 0, len(ss.s.data.bills))
	for id := range ss.s.data.bills {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) {
		return []*entity.Bill{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	list := make([]*entity.Bill, 0, len(ids))
	for _, id := range ids {
		b := copyBill(ss.s.data.bills[id])
		list = append(list, &b)
	}
	return list, nil
}

func copyBill(b entity.Bill) entity.Bill {
	b.AdditionalSignatory = append(b.AdditionalSignatory[:0:0], b.AdditionalSignatory...)
	b.TimePoints = append(b.TimePoints[:0:0], b.TimePoints...)
	return b
}
