package memory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo entradas en memoria.
type StockInRepo struct {
	store *Store
	tx    *memTx
}

// Create persiste una entrada y asigna su ID.
func (r *StockInRepo) Create(_ context.Context, entry *entity.StockIn) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_in.create"); err != nil {
		return err
	}
	if _, ok := s.products[entry.ProductID]; !ok {
		return errForeignKey
	}
	s.nextIn++
	entry.ID = s.nextIn
	cp := *entry
	cp.ProductName = ""
	s.ins[cp.ID] = &cp
	r.tx.record(func() { delete(s.ins, cp.ID) })
	return nil
}

// GetByID obtiene una entrada por ID (nil si no existe).
func (r *StockInRepo) GetByID(_ context.Context, id int64) (*entity.StockIn, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_in.get"); err != nil {
		return nil, err
	}
	if e, ok := s.ins[id]; ok {
		cp := *e
		if p, ok := s.products[e.ProductID]; ok {
			cp.ProductName = p.Name
		}
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate bloquea la fila de la entrada y la lee.
func (r *StockInRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockIn, error) {
	if err := r.tx.lock(ctx, stockInKey(id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update persiste cantidad, proveedor, comentario y fecha.
func (r *StockInRepo) Update(_ context.Context, entry *entity.StockIn) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_in.update"); err != nil {
		return err
	}
	e, ok := s.ins[entry.ID]
	if !ok {
		return nil
	}
	prev := *e
	e.Quantity, e.Supplier, e.Comment, e.OccurredAt = entry.Quantity, entry.Supplier, entry.Comment, entry.OccurredAt
	r.tx.record(func() { *e = prev })
	return nil
}

// Delete elimina una entrada.
func (r *StockInRepo) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_in.delete"); err != nil {
		return err
	}
	e, ok := s.ins[id]
	if !ok {
		return nil
	}
	delete(s.ins, id)
	r.tx.record(func() { s.ins[id] = e })
	return nil
}

// DeleteByProduct elimina todas las entradas de un producto.
func (r *StockInRepo) DeleteByProduct(_ context.Context, productID int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_in.delete_by_product"); err != nil {
		return 0, err
	}
	var n int64
	for id, e := range s.ins {
		if e.ProductID != productID {
			continue
		}
		e := e
		delete(s.ins, id)
		r.tx.record(func() { s.ins[e.ID] = e })
		n++
	}
	return n, nil
}

// List lista entradas, más recientes primero.
func (r *StockInRepo) List(_ context.Context, filter entity.MovementFilter) ([]*entity.StockIn, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*entity.StockIn
	for _, e := range s.ins {
		if !matches(filter, e.ProductID, e.OccurredAt) {
			continue
		}
		cp := *e
		if p, ok := s.products[e.ProductID]; ok {
			cp.ProductName = p.Name
		}
		list = append(list, &cp)
	}
	sortNewestFirst(list, func(e *entity.StockIn) (int64, int64) { return e.OccurredAt.UnixNano(), e.ID })
	return page(list, filter.Limit, filter.Offset), nil
}
