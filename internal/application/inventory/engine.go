package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Nombres de operación usados en métricas y logs.
const (
	OpCreate        = "create"
	OpUpdate        = "update"
	OpDelete        = "delete"
	OpDeleteProduct = "delete_product"
)

// Engine es el motor de ajuste de stock: la única autoridad que modifica products.quantity.
//
// Cada operación corre en una transacción (TxRunner) cuyo primer bloqueo es la fila del
// producto (SELECT ... FOR UPDATE). Así dos salidas concurrentes sobre el mismo producto
// no pueden ver ambas stock suficiente. Cualquier error revierte la transacción completa.
type Engine struct {
	txRunner TxRunner
	recorder Recorder
	now      func() time.Time
}

// Option configura el Engine.
type Option func(*Engine)

// WithRecorder registra métricas de cada operación.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine construye el motor.
func NewEngine(txRunner TxRunner, opts ...Option) *Engine {
	e := &Engine{txRunner: txRunner, recorder: nopRecorder{}, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateEntry registra un movimiento y ajusta el saldo en la misma transacción.
// Devuelve el ID del movimiento creado.
func (e *Engine) CreateEntry(ctx context.Context, in CreateEntryInput) (id int64, err error) {
	start := time.Now()
	defer func() { err = e.finish(in.Kind, OpCreate, start, err) }()

	if !in.Kind.Valid() || in.ProductID <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if err := domaininv.ValidateQuantity(in.Quantity); err != nil {
		return 0, err
	}
	if in.Kind == entity.KindOut {
		if err := validIssuedBy(in.Attrs.IssuedBy, true); err != nil {
			return 0, fmt.Errorf("%w: issued_by es obligatorio", err)
		}
	}

	now := e.now()
	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		// Primer contacto con la BD: bloquear la fila del producto
		product, err := lockProduct(ctx, productRepo, in.ProductID)
		if err != nil {
			return err
		}
		balance, err := domaininv.ApplyDelta(product.Quantity, domaininv.CreateDelta(in.Kind, in.Quantity))
		if err != nil {
			return err
		}
		entries := newEntryStore(in.Kind, stockInRepo, stockOutRepo)
		id, err = entries.insert(ctx, in, now)
		if err != nil {
			return err
		}
		return productRepo.SetQuantity(ctx, product.ID, balance)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateEntry cambia cantidad y/o atributos de un movimiento.
// Aplica al saldo la diferencia con signo entre la cantidad nueva y la anterior.
func (e *Engine) UpdateEntry(ctx context.Context, in UpdateEntryInput) (err error) {
	start := time.Now()
	defer func() { err = e.finish(in.Kind, OpUpdate, start, err) }()

	if !in.Kind.Valid() || in.EntryID <= 0 {
		return domain.ErrInvalidInput
	}
	if !in.hasUpdates() {
		return domain.ErrNoOp
	}
	if in.Quantity != nil {
		if err := domaininv.ValidateQuantity(*in.Quantity); err != nil {
			return err
		}
	}
	if in.Kind == entity.KindOut {
		if err := validIssuedBy(in.Attrs.IssuedBy, false); err != nil {
			return fmt.Errorf("%w: issued_by no puede quedar vacío", err)
		}
	}

	return e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		entries := newEntryStore(in.Kind, stockInRepo, stockOutRepo)
		product, oldQty, err := lockEntry(ctx, productRepo, entries, in.EntryID)
		if err != nil {
			return err
		}
		if in.Quantity != nil {
			delta := domaininv.UpdateDelta(in.Kind, oldQty, *in.Quantity)
			balance, err := domaininv.ApplyDelta(product.Quantity, delta)
			if err != nil {
				return err
			}
			if delta != 0 {
				if err := productRepo.SetQuantity(ctx, product.ID, balance); err != nil {
					return err
				}
			}
		}
		return entries.save(ctx, in.Quantity, in.Attrs)
	})
}

// DeleteEntry elimina un movimiento revirtiendo su efecto sobre el saldo.
func (e *Engine) DeleteEntry(ctx context.Context, kind entity.MovementKind, entryID int64) (err error) {
	start := time.Now()
	defer func() { err = e.finish(kind, OpDelete, start, err) }()

	if !kind.Valid() || entryID <= 0 {
		return domain.ErrInvalidInput
	}

	return e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		entries := newEntryStore(kind, stockInRepo, stockOutRepo)
		product, qty, err := lockEntry(ctx, productRepo, entries, entryID)
		if err != nil {
			return err
		}
		balance, err := domaininv.ApplyDelta(product.Quantity, domaininv.DeleteDelta(kind, qty))
		if err != nil {
			return err
		}
		if err := productRepo.SetQuantity(ctx, product.ID, balance); err != nil {
			return err
		}
		return entries.remove(ctx)
	})
}

// DeleteProduct elimina un producto con saldo cero junto con todos sus movimientos.
// Solo se verifica el saldo agregado, no cada movimiento.
func (e *Engine) DeleteProduct(ctx context.Context, productID int64) (err error) {
	start := time.Now()
	defer func() { err = e.finish("", OpDeleteProduct, start, err) }()

	if productID <= 0 {
		return domain.ErrInvalidInput
	}

	return e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error {
		product, err := lockProduct(ctx, productRepo, productID)
		if err != nil {
			return err
		}
		if product.Quantity != 0 {
			return fmt.Errorf("%w: saldo actual %d", domain.ErrNonZeroBalance, product.Quantity)
		}
		if _, err := stockInRepo.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		if _, err := stockOutRepo.DeleteByProduct(ctx, productID); err != nil {
			return err
		}
		return productRepo.Delete(ctx, productID)
	})
}

// lockProduct bloquea la fila del producto; ErrNotFound si no existe al momento del bloqueo.
func lockProduct(ctx context.Context, productRepo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// lockEntry resuelve el producto dueño con una lectura sin bloqueo, bloquea el producto y
// después la fila del movimiento. El orden producto → movimiento es el mismo en todas las
// operaciones.
func lockEntry(ctx context.Context, productRepo repository.ProductRepository, entries entryStore, entryID int64) (*entity.Product, int64, error) {
	productID, err := entries.productOf(ctx, entryID)
	if err != nil {
		return nil, 0, err
	}
	product, err := lockProduct(ctx, productRepo, productID)
	if err != nil {
		return nil, 0, err
	}
	lockedProductID, qty, err := entries.lock(ctx, entryID)
	if err != nil {
		return nil, 0, err
	}
	// product_id de un movimiento es inmutable
	if lockedProductID != product.ID {
		return nil, 0, domain.ErrNotFound
	}
	return product, qty, nil
}

// finish clasifica el error (negocio vs almacenamiento) y registra la métrica.
func (e *Engine) finish(kind entity.MovementKind, op string, start time.Time, err error) error {
	if err != nil && !domain.IsBusiness(err) && !errors.Is(err, domain.ErrStoreFailure) {
		err = fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	e.recorder.ObserveAdjustment(kind, op, Outcome(err), time.Since(start))
	return err
}

// Outcome etiqueta corta del resultado de una operación.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNonZeroBalance):
		return "non_zero_balance"
	case errors.Is(err, domain.ErrNoOp):
		return "no_op"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "store_failure"
	}
}
