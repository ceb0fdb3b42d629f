package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// entryStore adapta StockInRepository/StockOutRepository a una vista común
// (id, producto, cantidad) para que el motor trate ambos tipos con el mismo código.
// Vive una sola transacción: lock guarda la fila bloqueada para save/remove.
type entryStore interface {
	productOf(ctx context.Context, id int64) (int64, error)
	lock(ctx context.Context, id int64) (productID, quantity int64, err error)
	insert(ctx context.Context, in CreateEntryInput, now time.Time) (int64, error)
	save(ctx context.Context, quantity *int64, attrs EntryAttrs) error
	remove(ctx context.Context) error
}

func newEntryStore(kind entity.MovementKind, in repository.StockInRepository, out repository.StockOutRepository) entryStore {
	if kind == entity.KindOut {
		return &stockOutStore{repo: out}
	}
	return &stockInStore{repo: in}
}

// ── Entradas ──────────────────────────────────────────────────────────────────

type stockInStore struct {
	repo   repository.StockInRepository
	locked *entity.StockIn
}

func (s *stockInStore) productOf(ctx context.Context, id int64) (int64, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if e == nil {
		return 0, domain.ErrNotFound
	}
	return e.ProductID, nil
}

func (s *stockInStore) lock(ctx context.Context, id int64) (int64, int64, error) {
	e, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if e == nil {
		return 0, 0, domain.ErrNotFound
	}
	s.locked = e
	return e.ProductID, e.Quantity, nil
}

func (s *stockInStore) insert(ctx context.Context, in CreateEntryInput, now time.Time) (int64, error) {
	e := &entity.StockIn{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Supplier:   valueOf(in.Attrs.Supplier),
		Comment:    valueOf(in.Attrs.Comment),
		ReceivedBy: valueOf(in.Attrs.ReceivedBy),
		OccurredAt: now,
	}
	if in.Attrs.OccurredAt != nil {
		e.OccurredAt = *in.Attrs.OccurredAt
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *stockInStore) save(ctx context.Context, quantity *int64, attrs EntryAttrs) error {
	e := s.locked
	if quantity != nil {
		e.Quantity = *quantity
	}
	if attrs.Supplier != nil {
		e.Supplier = strings.TrimSpace(*attrs.Supplier)
	}
	if attrs.Comment != nil {
		e.Comment = strings.TrimSpace(*attrs.Comment)
	}
	if attrs.OccurredAt != nil {
		e.OccurredAt = *attrs.OccurredAt
	}
	return s.repo.Update(ctx, e)
}

func (s *stockInStore) remove(ctx context.Context) error {
	return s.repo.Delete(ctx, s.locked.ID)
}

// ── Salidas ───────────────────────────────────────────────────────────────────

type stockOutStore struct {
	repo   repository.StockOutRepository
	locked *entity.StockOut
}

func (s *stockOutStore) productOf(ctx context.Context, id int64) (int64, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if e == nil {
		return 0, domain.ErrNotFound
	}
	return e.ProductID, nil
}

func (s *stockOutStore) lock(ctx context.Context, id int64) (int64, int64, error) {
	e, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if e == nil {
		return 0, 0, domain.ErrNotFound
	}
	s.locked = e
	return e.ProductID, e.Quantity, nil
}

func (s *stockOutStore) insert(ctx context.Context, in CreateEntryInput, now time.Time) (int64, error) {
	e := &entity.StockOut{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		IssuedBy:   valueOf(in.Attrs.IssuedBy),
		Purpose:    valueOf(in.Attrs.Purpose),
		OccurredAt: now,
	}
	if in.Attrs.OccurredAt != nil {
		e.OccurredAt = *in.Attrs.OccurredAt
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *stockOutStore) save(ctx context.Context, quantity *int64, attrs EntryAttrs) error {
	e := s.locked
	if quantity != nil {
		e.Quantity = *quantity
	}
	if attrs.IssuedBy != nil {
		e.IssuedBy = strings.TrimSpace(*attrs.IssuedBy)
	}
	if attrs.Purpose != nil {
		e.Purpose = strings.TrimSpace(*attrs.Purpose)
	}
	if attrs.OccurredAt != nil {
		e.OccurredAt = *attrs.OccurredAt
	}
	return s.repo.Update(ctx, e)
}

func (s *stockOutStore) remove(ctx context.Context) error {
	return s.repo.Delete(ctx, s.locked.ID)
}
