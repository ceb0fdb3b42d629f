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

var _ repository.StockInRepository = (*StockInRepo)(nil)

var stockInColumns = []string{"id", "product_id", "quantity", "supplier", "comment", "received_by", "occurred_at"}

type stockInRow struct {
	ID          int64     `db:"id"`
	ProductID   int64     `db:"product_id"`
	ProductName *string   `db:"product_name"`
	Quantity    int64     `db:"quantity"`
	Supplier    *string   `db:"supplier"`
	Comment     *string   `db:"comment"`
	ReceivedBy  *string   `db:"received_by"`
	OccurredAt  time.Time `db:"occurred_at"`
}

func (row stockInRow) toEntity() *entity.StockIn {
	return &entity.StockIn{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: deref(row.ProductName),
		Quantity:    row.Quantity,
		Supplier:    deref(row.Supplier),
		Comment:     deref(row.Comment),
		ReceivedBy:  deref(row.ReceivedBy),
		OccurredAt:  row.OccurredAt,
	}
}

// StockInRepo entradas de mercancía sobre PostgreSQL.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el repositorio de entradas. Pasar pool o tx.
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create inserta la entrada y asigna su ID.
func (r *StockInRepo) Create(ctx context.Context, e *entity.StockIn) error {
	query := `
		INSERT INTO stock_in (product_id, quantity, supplier, comment, received_by, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.ProductID, e.Quantity, nullIfEmpty(e.Supplier), nullIfEmpty(e.Comment), nullIfEmpty(e.ReceivedBy), e.OccurredAt,
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert stock_in: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock_in: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada con el nombre del producto (nil si no existe). No bloquea.
func (r *StockInRepo) GetByID(ctx context.Context, id int64) (*entity.StockIn, error) {
	return r.getOne(ctx, "get stock_in", buildMovementByID("stock_in", stockInColumns, id))
}

// GetForUpdate obtiene la entrada bloqueando su fila.
func (r *StockInRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockIn, error) {
	return r.getOne(ctx, "lock stock_in", psql.Select(stockInColumns...).From("stock_in").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *StockInRepo) getOne(ctx context.Context, op string, q squirrel.SelectBuilder) (*entity.StockIn, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var row stockInRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapLockErr(op, err)
	}
	return row.toEntity(), nil
}

// Update persiste cantidad, proveedor, comentario y fecha. product_id es inmutable.
func (r *StockInRepo) Update(ctx context.Context, e *entity.StockIn) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_in SET quantity = $2, supplier = $3, comment = $4, occurred_at = $5 WHERE id = $1`,
		e.ID, e.Quantity, nullIfEmpty(e.Supplier), nullIfEmpty(e.Comment), e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("update stock_in: %w", err)
	}
	return nil
}

// Delete elimina una entrada.
func (r *StockInRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_in WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock_in: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las entradas de un producto y devuelve cuántas borró.
func (r *StockInRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_in WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock_in by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List lista entradas con nombre de producto, más recientes primero.
func (r *StockInRepo) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockIn, error) {
	sql, args, err := buildMovementList("stock_in", stockInColumns, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stock_in: %w", err)
	}
	var rows []stockInRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock_in: %w", err)
	}
	list := make([]*entity.StockIn, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
