package postgres

import (
	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// buildMovementByID un movimiento por id con el nombre del producto. Sin bloqueo.
func buildMovementByID(table string, columns []string, id int64) squirrel.SelectBuilder {
	return psql.Select(joinedColumns(columns)...).
		From(table + " m").
		Join("products p ON p.id = m.product_id").
		Where(squirrel.Eq{"m.id": id})
}

func joinedColumns(columns []string) []string {
	cols := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		cols = append(cols, "m."+c)
	}
	return append(cols, "p.name AS product_name")
}

// buildMovementList listado de stock_in o stock_out con el nombre del producto,
// más recientes primero (empate por id descendente).
func buildMovementList(table string, columns []string, filter entity.MovementFilter) squirrel.SelectBuilder {
	q := psql.Select(joinedColumns(columns)...).
		From(table + " m").
		Join("products p ON p.id = m.product_id").
		OrderBy("m.occurred_at DESC", "m.id DESC")

	if filter.ProductID > 0 {
		q = q.Where(squirrel.Eq{"m.product_id": filter.ProductID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"m.occurred_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"m.occurred_at": *filter.To})
	}
	return paginate(q, filter.Limit, filter.Offset)
}
