package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Adjuster operaciones del motor de inventario que usan los casos de uso de movimientos.
type Adjuster interface {
	CreateEntry(ctx context.Context, in inventory.CreateEntryInput) (int64, error)
	UpdateEntry(ctx context.Context, in inventory.UpdateEntryInput) error
	DeleteEntry(ctx context.Context, kind entity.MovementKind, entryID int64) error
}

// MovementUseCase entradas y salidas de mercancía. Toda escritura pasa por el motor;
// las lecturas van directo a los repositorios.
type MovementUseCase struct {
	engine   Adjuster
	ins      repository.StockInRepository
	outs     repository.StockOutRepository
	location *time.Location
}

// NewMovementUseCase construye el caso de uso. Las fechas YYYY-MM-DD de los filtros se
// interpretan en loc (nil = UTC).
func NewMovementUseCase(engine Adjuster, ins repository.StockInRepository, outs repository.StockOutRepository, loc *time.Location) *MovementUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MovementUseCase{engine: engine, ins: ins, outs: outs, location: loc}
}

// ── Entradas ──────────────────────────────────────────────────────────────────

// CreateStockIn registra una entrada; actor es el usuario autenticado (received_by).
func (uc *MovementUseCase) CreateStockIn(ctx context.Context, actor string, in dto.CreateStockInRequest) (int64, error) {
	qty, err := in.Quantity.Int64()
	if err != nil {
		return 0, err
	}
	return uc.engine.CreateEntry(ctx, inventory.CreateEntryInput{
		Kind:      entity.KindIn,
		ProductID: in.ProductID,
		Quantity:  qty,
		Attrs: inventory.EntryAttrs{
			Supplier:   in.Supplier,
			Comment:    in.Comment,
			ReceivedBy: &actor,
			OccurredAt: in.OccurredAt,
		},
	})
}

// UpdateStockIn actualización parcial de una entrada.
func (uc *MovementUseCase) UpdateStockIn(ctx context.Context, id int64, in dto.UpdateStockInRequest) error {
	qty, err := optionalQuantity(in.Quantity)
	if err != nil {
		return err
	}
	return uc.engine.UpdateEntry(ctx, inventory.UpdateEntryInput{
		Kind:     entity.KindIn,
		EntryID:  id,
		Quantity: qty,
		Attrs: inventory.EntryAttrs{
			Supplier:   in.Supplier,
			Comment:    in.Comment,
			OccurredAt: in.OccurredAt,
		},
	})
}

// DeleteStockIn elimina una entrada revirtiendo su efecto en el saldo.
func (uc *MovementUseCase) DeleteStockIn(ctx context.Context, id int64) error {
	return uc.engine.DeleteEntry(ctx, entity.KindIn, id)
}

// GetStockIn obtiene una entrada. ErrNotFound si no existe.
func (uc *MovementUseCase) GetStockIn(ctx context.Context, id int64) (*dto.StockInResponse, error) {
	e, err := uc.ins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStockInResponse(e)
	return &resp, nil
}

// ListStockIn lista entradas, más recientes primero.
func (uc *MovementUseCase) ListStockIn(ctx context.Context, req dto.MovementListRequest) (*dto.StockInListResponse, error) {
	filter, err := uc.movementFilter(&req)
	if err != nil {
		return nil, err
	}
	list, err := uc.ins.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockInResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toStockInResponse(e))
	}
	return &dto.StockInListResponse{Items: items, Page: dto.PageResponse{Limit: req.Limit, Offset: req.Offset}}, nil
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateStockOut registra una salida. issued_by por defecto es el usuario autenticado.
func (uc *MovementUseCase) CreateStockOut(ctx context.Context, actor string, in dto.CreateStockOutRequest) (int64, error) {
	qty, err := in.Quantity.Int64()
	if err != nil {
		return 0, err
	}
	issuedBy := in.IssuedBy
	if issuedBy == nil {
		issuedBy = &actor
	}
	return uc.engine.CreateEntry(ctx, inventory.CreateEntryInput{
		Kind:      entity.KindOut,
		ProductID: in.ProductID,
		Quantity:  qty,
		Attrs: inventory.EntryAttrs{
			IssuedBy:   issuedBy,
			Purpose:    in.Purpose,
			OccurredAt: in.OccurredAt,
		},
	})
}

// UpdateStockOut actualización parcial de una salida.
func (uc *MovementUseCase) UpdateStockOut(ctx context.Context, id int64, in dto.UpdateStockOutRequest) error {
	qty, err := optionalQuantity(in.Quantity)
	if err != nil {
		return err
	}
	return uc.engine.UpdateEntry(ctx, inventory.UpdateEntryInput{
		Kind:     entity.KindOut,
		EntryID:  id,
		Quantity: qty,
		Attrs: inventory.EntryAttrs{
			IssuedBy:   in.IssuedBy,
			Purpose:    in.Purpose,
			OccurredAt: in.OccurredAt,
		},
	})
}

// DeleteStockOut elimina una salida devolviendo su cantidad al saldo.
func (uc *MovementUseCase) DeleteStockOut(ctx context.Context, id int64) error {
	return uc.engine.DeleteEntry(ctx, entity.KindOut, id)
}

// GetStockOut obtiene una salida. ErrNotFound si no existe.
func (uc *MovementUseCase) GetStockOut(ctx context.Context, id int64) (*dto.StockOutResponse, error) {
	e, err := uc.outs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStockOutResponse(e)
	return &resp, nil
}

// ListStockOut lista salidas, más recientes primero.
func (uc *MovementUseCase) ListStockOut(ctx context.Context, req dto.MovementListRequest) (*dto.StockOutListResponse, error) {
	filter, err := uc.movementFilter(&req)
	if err != nil {
		return nil, err
	}
	list, err := uc.outs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockOutResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toStockOutResponse(e))
	}
	return &dto.StockOutListResponse{Items: items, Page: dto.PageResponse{Limit: req.Limit, Offset: req.Offset}}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func optionalQuantity(q *dto.Quantity) (*int64, error) {
	if q == nil {
		return nil, nil
	}
	n, err := q.Int64()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (uc *MovementUseCase) movementFilter(req *dto.MovementListRequest) (entity.MovementFilter, error) {
	req.DefaultPage()
	filter := entity.MovementFilter{ProductID: req.ProductID, Limit: req.Limit, Offset: req.Offset}
	if req.From != "" {
		from, _, err := ParseDate(req.From, uc.location)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if req.To != "" {
		to, dayOnly, err := ParseDate(req.To, uc.location)
		if err != nil {
			return filter, err
		}
		// un día completo es inclusivo
		if dayOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("%w: 'to' anterior a 'from'", domain.ErrInvalidInput)
	}
	return filter, nil
}

// ParseDate acepta YYYY-MM-DD (inicio del día en loc, dayOnly=true) o RFC3339.
func ParseDate(s string, loc *time.Location) (t time.Time, dayOnly bool, err error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return d, true, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, false, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: fecha inválida %q (use YYYY-MM-DD o RFC3339)", domain.ErrInvalidInput, s)
}

func toStockInResponse(e *entity.StockIn) dto.StockInResponse {
	return dto.StockInResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		Supplier:    e.Supplier,
		Comment:     e.Comment,
		ReceivedBy:  e.ReceivedBy,
		OccurredAt:  e.OccurredAt,
	}
}

func toStockOutResponse(e *entity.StockOut) dto.StockOutResponse {
	return dto.StockOutResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		IssuedBy:    e.IssuedBy,
		Purpose:     e.Purpose,
		OccurredAt:  e.OccurredAt,
	}
}
