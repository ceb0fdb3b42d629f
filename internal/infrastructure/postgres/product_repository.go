package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{"id", "name", "unit", "description", "quantity", "created_at"}

type productRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Unit        *string   `db:"unit"`
	Description *string   `db:"description"`
	Quantity    int64     `db:"quantity"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:          row.ID,
		Name:        row.Name,
		Unit:        deref(row.Unit),
		Description: deref(row.Description),
		Quantity:    row.Quantity,
		CreatedAt:   row.CreatedAt,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con saldo 0 y asigna ID y fecha de creación.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, unit, description, quantity)
		VALUES ($1, $2, $3, 0)
		RETURNING id, quantity, created_at`
	err := r.q.QueryRow(ctx, query, product.Name, nullIfEmpty(product.Unit), nullIfEmpty(product.Description)).
		Scan(&product.ID, &product.Quantity, &product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "get product", psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}))
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by name", psql.Select(productColumns...).From("products").Where(squirrel.Eq{"name": name}))
}

// GetForUpdate lee el producto bloqueando su fila (SELECT ... FOR UPDATE) hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "lock product", psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *ProductRepo) getOne(ctx context.Context, op string, q squirrel.SelectBuilder) (*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapLockErr(op, err)
	}
	return row.toEntity(), nil
}

// Update actualiza nombre, unidad y descripción. La cantidad solo cambia vía SetQuantity.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET name = $2, unit = $3, description = $4 WHERE id = $1`,
		product.ID, product.Name, nullIfEmpty(product.Unit), nullIfEmpty(product.Description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity fija el saldo (usado solo por el motor de inventario, con la fila bloqueada).
func (r *ProductRepo) SetQuantity(ctx context.Context, id, quantity int64) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("set product quantity: saldo negativo rechazado por la BD: %w", err)
		}
		return fmt.Errorf("set product quantity: %w", err)
	}
	return nil
}

// List lista productos por nombre con búsqueda opcional en nombre o unidad.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	sql, args, err := buildProductList(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func buildProductList(filter repository.ProductFilter) squirrel.SelectBuilder {
	q := psql.Select(productColumns...).From("products").OrderBy("name ASC", "id ASC")
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"unit": pattern},
		})
	}
	return paginate(q, filter.Limit, filter.Offset)
}

// Delete elimina un producto por ID. Los movimientos caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
