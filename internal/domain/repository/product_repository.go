package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search string // coincidencia parcial en nombre o unidad ("" = todos)
	Limit  int    // 0 = sin límite
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// SetQuantity solo lo usa el motor de inventario dentro de su transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetForUpdate lee el producto y bloquea su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetQuantity(ctx context.Context, id, quantity int64) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
