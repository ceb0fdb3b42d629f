package memory

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// State copia profunda del contenido del store.
type State struct {
	Products map[int64]entity.Product
	StockIns map[int64]entity.StockIn
	StockOut map[int64]entity.StockOut
}

// Snapshot devuelve el estado actual; dos snapshots son comparables con assert.Equal.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Products: make(map[int64]entity.Product, len(s.products)),
		StockIns: make(map[int64]entity.StockIn, len(s.ins)),
		StockOut: make(map[int64]entity.StockOut, len(s.outs)),
	}
	for id, p := range s.products {
		st.Products[id] = *p
	}
	for id, e := range s.ins {
		st.StockIns[id] = *e
	}
	for id, e := range s.outs {
		st.StockOut[id] = *e
	}
	return st
}

// MovementSum Σ entradas − Σ salidas de un producto.
func (st State) MovementSum(productID int64) int64 {
	var sum int64
	for _, e := range st.StockIns {
		if e.ProductID == productID {
			sum += e.Quantity
		}
	}
	for _, e := range st.StockOut {
		if e.ProductID == productID {
			sum -= e.Quantity
		}
	}
	return sum
}
