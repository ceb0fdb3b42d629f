// Package memory implementa el Ledger Store en memoria: mismo contrato de TxRunner que
// PostgreSQL, con bloqueo exclusivo por fila y reversión completa vía bitácora de deshacer.
// Se usa en tests y en entornos sin base de datos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store datos de products, stock_in y stock_out en memoria.
type Store struct {
	mu       sync.Mutex // protege mapas, contadores, locks y faults
	products map[int64]*entity.Product
	ins      map[int64]*entity.StockIn
	outs     map[int64]*entity.StockOut
	users    map[string]*entity.User

	nextProduct int64
	nextIn      int64
	nextOut     int64
	nextUser    int64

	rowLocks map[string]chan struct{}
	faults   map[string]error
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]*entity.Product),
		ins:      make(map[int64]*entity.StockIn),
		outs:     make(map[int64]*entity.StockOut),
		users:    make(map[string]*entity.User),
		rowLocks: make(map[string]chan struct{}),
		faults:   make(map[string]error),
	}
}

// Run ejecuta fn en una transacción. Si fn devuelve error se deshacen todas sus escrituras.
// Los bloqueos de fila se liberan al terminar.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
) error) error {
	tx := &memTx{store: s, held: make(map[string]chan struct{})}
	defer tx.release()

	if err := fn(&ProductRepo{store: s, tx: tx}, &StockInRepo{store: s, tx: tx}, &StockOutRepo{store: s, tx: tx}); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// Products repositorio de productos fuera de transacción (autocommit).
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// StockIns repositorio de entradas fuera de transacción.
func (s *Store) StockIns() *StockInRepo { return &StockInRepo{store: s} }

// StockOuts repositorio de salidas fuera de transacción.
func (s *Store) StockOuts() *StockOutRepo { return &StockOutRepo{store: s} }

// InjectFault hace que la próxima operación op ("product.set_quantity", "stock_in.create",
// "stock_out.delete", ...) falle con err. Se consume al dispararse.
func (s *Store) InjectFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault debe llamarse con s.mu tomado.
func (s *Store) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		delete(s.faults, op)
		return fmt.Errorf("memory: %s: %w", op, err)
	}
	return nil
}

func (s *Store) rowLock(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[key]
	if !ok {
		l = make(chan struct{}, 1)
		s.rowLocks[key] = l
	}
	return l
}

// ── Transacción ───────────────────────────────────────────────────────────────

type memTx struct {
	store *Store
	held  map[string]chan struct{}
	undo  []func()
}

// lock toma el bloqueo exclusivo de la fila key (reentrante dentro de la tx).
// Respeta la cancelación del contexto mientras espera.
func (tx *memTx) lock(ctx context.Context, key string) error {
	if tx == nil {
		return nil
	}
	if _, ok := tx.held[key]; ok {
		return nil
	}
	l := tx.store.rowLock(key)
	select {
	case l <- struct{}{}:
		tx.held[key] = l
		return nil
	case <-ctx.Done():
		return fmt.Errorf("memory: esperando bloqueo %s: %w", key, ctx.Err())
	}
}

// record agrega la operación inversa de una escritura. Llamar con store.mu tomado.
func (tx *memTx) record(undo func()) {
	if tx == nil {
		return
	}
	tx.undo = append(tx.undo, undo)
}

func (tx *memTx) rollback() {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *memTx) release() {
	for key, l := range tx.held {
		<-l
		delete(tx.held, key)
	}
}

func productKey(id int64) string  { return fmt.Sprintf("product:%d", id) }
func stockInKey(id int64) string  { return fmt.Sprintf("stock_in:%d", id) }
func stockOutKey(id int64) string { return fmt.Sprintf("stock_out:%d", id) }
