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

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

var stockOutColumns = []string{"id", "product_id", "quantity", "issued_by", "purpose", "occurred_at"}

type stockOutRow struct {
	ID          int64     `db:"id"`
	ProductID   int64     `db:"product_id"`
	ProductName *string   `db:"product_name"`
	Quantity    int64     `db:"quantity"`
	IssuedBy    string    `db:"issued_by"`
	Purpose     *string   `db:"purpose"`
	OccurredAt  time.Time `db:"occurred_at"`
}

func (row stockOutRow) toEntity() *entity.StockOut {
	return &entity.StockOut{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: deref(row.ProductName),
		Quantity:    row.Quantity,
		IssuedBy:    row.IssuedBy,
		Purpose:     deref(row.Purpose),
		OccurredAt:  row.OccurredAt,
	}
}

// StockOutRepo salidas de mercancía sobre PostgreSQL.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el repositorio de salidas. Pasar pool o tx.
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

// Create inserta la salida y asigna su ID.
func (r *StockOutRepo) Create(ctx context.Context, e *entity.StockOut) error {
	query := `
		INSERT INTO stock_out (product_id, quantity, issued_by, purpose, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, e.ProductID, e.Quantity, e.IssuedBy, nullIfEmpty(e.Purpose), e.OccurredAt).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_out: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock_out: %w", err)
	}
	return nil
}

// GetByID obtiene una salida con el nombre del producto (nil si no existe). No bloquea.
func (r *StockOutRepo) GetByID(ctx context.Context, id int64) (*entity.StockOut, error) {
	return r.getOne(ctx, "get stock_out", buildMovementByID("stock_out", stockOutColumns, id))
}

// GetForUpdate obtiene la salida bloqueando su fila.
func (r *StockOutRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockOut, error) {
	return r.getOne(ctx, "lock stock_out", psql.Select(stockOutColumns...).From("stock_out").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *StockOutRepo) getOne(ctx context.Context, op string, q squirrel.SelectBuilder) (*entity.StockOut, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var row stockOutRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapLockErr(op, err)
	}
	return row.toEntity(), nil
}

// Update persiste cantidad, responsable, propósito y fecha.
func (r *StockOutRepo) Update(ctx context.Context, e *entity.StockOut) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_out SET quantity = $2, issued_by = $3, purpose = $4, occurred_at = $5 WHERE id = $1`,
		e.ID, e.Quantity, e.IssuedBy, nullIfEmpty(e.Purpose), e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("update stock_out: %w", err)
	}
	return nil
}

// Delete elimina una salida.
func (r *StockOutRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_out WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock_out: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las salidas de un producto.
func (r *StockOutRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_out WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock_out by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List lista salidas con nombre de producto, más recientes primero.
func (r *StockOutRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockOut, error) {
	sql, args, err := buildMovementList("stock_out", stockOutColumns, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stock_out: %w", err)
	}
	var rows []stockOutRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock_out: %w", err)
	}
	list := make([]*entity.StockOut, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
