package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria (dentro o fuera de transacción).
type ProductRepo struct {
	store *Store
	tx    *memTx
}

// Create persiste un producto nuevo y asigna su ID.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("product.create"); err != nil {
		return err
	}
	for _, p := range s.products {
		if p.Name == product.Name {
			return domain.ErrDuplicate
		}
	}
	s.nextProduct++
	product.ID = s.nextProduct
	product.Quantity = 0
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	cp := *product
	s.products[cp.ID] = &cp
	r.tx.record(func() { delete(s.products, cp.ID) })
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate bloquea la fila y después la lee.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	if err := r.tx.lock(ctx, productKey(id)); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	err := r.store.fault("product.get_for_update")
	r.store.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update actualiza nombre, unidad y descripción (nunca la cantidad).
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("product.update"); err != nil {
		return err
	}
	p, ok := s.products[product.ID]
	if !ok {
		return nil
	}
	for _, other := range s.products {
		if other.ID != product.ID && other.Name == product.Name {
			return domain.ErrDuplicate
		}
	}
	prev := *p
	p.Name, p.Unit, p.Description = product.Name, product.Unit, product.Description
	r.tx.record(func() { *p = prev })
	return nil
}

// SetQuantity fija el saldo. Rechaza negativos igual que el CHECK de la tabla.
func (r *ProductRepo) SetQuantity(_ context.Context, id, quantity int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("product.set_quantity"); err != nil {
		return err
	}
	if quantity < 0 {
		return errCheckViolation
	}
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	prev := p.Quantity
	p.Quantity = quantity
	r.tx.record(func() { p.Quantity = prev })
	return nil
}

// List lista productos por nombre ascendente.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(filter.Search)
	var list []*entity.Product
	for _, p := range s.products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Unit), q) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, filter.Limit, filter.Offset), nil
}

// Delete elimina el producto y, como la FK ON DELETE CASCADE, sus movimientos.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("product.delete"); err != nil {
		return err
	}
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	delete(s.products, id)
	for eid, e := range s.ins {
		if e.ProductID == id {
			e := e
			delete(s.ins, eid)
			r.tx.record(func() { s.ins[e.ID] = e })
		}
	}
	for eid, e := range s.outs {
		if e.ProductID == id {
			e := e
			delete(s.outs, eid)
			r.tx.record(func() { s.outs[e.ID] = e })
		}
	}
	r.tx.record(func() { s.products[p.ID] = p })
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
