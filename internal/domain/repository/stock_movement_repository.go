package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockInRepository puerto de persistencia para entradas. Sin lógica de negocio:
// el saldo del producto lo ajusta el motor de inventario.
type StockInRepository interface {
	Create(ctx context.Context, entry *entity.StockIn) error
	GetByID(ctx context.Context, id int64) (*entity.StockIn, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.StockIn, error)
	Update(ctx context.Context, entry *entity.StockIn) error
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockIn, error)
}

// StockOutRepository puerto de persistencia para salidas.
type StockOutRepository interface {
	Create(ctx context.Context, entry *entity.StockOut) error
	GetByID(ctx context.Context, id int64) (*entity.StockOut, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.StockOut, error)
	Update(ctx context.Context, entry *entity.StockOut) error
	Delete(ctx context.Context, id int64) error
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockOut, error)
}
