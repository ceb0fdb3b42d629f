package memory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo salidas en memoria.
type StockOutRepo struct {
	store *Store
	tx    *memTx
}

// Create persiste una salida y asigna su ID.
func (r *StockOutRepo) Create(_ context.Context, entry *entity.StockOut) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_out.create"); err != nil {
		return err
	}
	if _, ok := s.products[entry.ProductID]; !ok {
		return errForeignKey
	}
	s.nextOut++
	entry.ID = s.nextOut
	cp := *entry
	cp.ProductName = ""
	s.outs[cp.ID] = &cp
	r.tx.record(func() { delete(s.outs, cp.ID) })
	return nil
}

// GetByID obtiene una salida por ID (nil si no existe).
func (r *StockOutRepo) GetByID(_ context.Context, id int64) (*entity.StockOut, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_out.get"); err != nil {
		return nil, err
	}
	if e, ok := s.outs[id]; ok {
		cp := *e
		if p, ok := s.products[e.ProductID]; ok {
			cp.ProductName = p.Name
		}
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate bloquea la fila de la salida y la lee.
func (r *StockOutRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockOut, error) {
	if err := r.tx.lock(ctx, stockOutKey(id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update persiste cantidad, responsable, propósito y fecha.
func (r *StockOutRepo) Update(_ context.Context, entry *entity.StockOut) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_out.update"); err != nil {
		return err
	}
	e, ok := s.outs[entry.ID]
	if !ok {
		return nil
	}
	prev := *e
	e.Quantity, e.IssuedBy, e.Purpose, e.OccurredAt = entry.Quantity, entry.IssuedBy, entry.Purpose, entry.OccurredAt
	r.tx.record(func() { *e = prev })
	return nil
}

// Delete elimina una salida.
func (r *StockOutRepo) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_out.delete"); err != nil {
		return err
	}
	e, ok := s.outs[id]
	if !ok {
		return nil
	}
	delete(s.outs, id)
	r.tx.record(func() { s.outs[id] = e })
	return nil
}

// DeleteByProduct elimina todas las salidas de un producto.
func (r *StockOutRepo) DeleteByProduct(_ context.Context, productID int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("stock_out.delete_by_product"); err != nil {
		return 0, err
	}
	var n int64
	for id, e := range s.outs {
		if e.ProductID != productID {
			continue
		}
		e := e
		delete(s.outs, id)
		r.tx.record(func() { s.outs[e.ID] = e })
		n++
	}
	return n, nil
}

// List lista salidas, más recientes primero.
func (r *StockOutRepo) List(_ context.Context, filter entity.MovementFilter) ([]*entity.StockOut, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*entity.StockOut
	for _, e := range s.outs {
		if !matches(filter, e.ProductID, e.OccurredAt) {
			continue
		}
		cp := *e
		if p, ok := s.products[e.ProductID]; ok {
			cp.ProductName = p.Name
		}
		list = append(list, &cp)
	}
	sortNewestFirst(list, func(e *entity.StockOut) (int64, int64) { return e.OccurredAt.UnixNano(), e.ID })
	return page(list, filter.Limit, filter.Offset), nil
}
