package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetStats totales globales. SUM(bigint) devuelve numeric, por eso los ::bigint.
func (r *ReportRepo) GetStats(ctx context.Context) (entity.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products)::bigint                    AS total_products,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_in)::bigint  AS total_stock_in,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_out)::bigint AS total_stock_out,
			(SELECT COALESCE(SUM(quantity), 0) FROM products)::bigint  AS current_stock_balance`
	var stats entity.DashboardStats
	if err := pgxscan.Get(ctx, r.q, &stats, query); err != nil {
		return stats, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

// RecentActivity últimos movimientos de ambos tipos.
func (r *ReportRepo) RecentActivity(ctx context.Context, limit int) ([]entity.ActivityItem, error) {
	q, err := buildActivity(nil, nil)
	if err != nil {
		return nil, err
	}
	return r.selectActivity(ctx, "recent activity", q.OrderBy("at DESC").Limit(uint64(limit)))
}

// DayMovements movimientos del día [start, start+24h) en orden cronológico.
func (r *ReportRepo) DayMovements(ctx context.Context, start time.Time) ([]entity.ActivityItem, error) {
	end := start.Add(24 * time.Hour)
	q, err := buildActivity(&start, &end)
	if err != nil {
		return nil, err
	}
	return r.selectActivity(ctx, "day movements", q.OrderBy("at ASC"))
}

func (r *ReportRepo) selectActivity(ctx context.Context, op string, q squirrel.SelectBuilder) ([]entity.ActivityItem, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	items := []entity.ActivityItem{}
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// buildActivity UNION ALL de entradas y salidas con nombre de producto y responsable.
// from/to opcionales acotan occurred_at a [from, to).
func buildActivity(from, to *time.Time) (squirrel.SelectBuilder, error) {
	part := func(kind, table, actor string) squirrel.SelectBuilder {
		q := squirrel.Select(
			"'"+kind+"' AS type", "p.name AS product_name", "m.quantity",
			"m.occurred_at AS at", "m."+actor+" AS actor",
		).From(table + " m").Join("products p ON p.id = m.product_id")
		if from != nil {
			q = q.Where(squirrel.GtOrEq{"m.occurred_at": *from})
		}
		if to != nil {
			q = q.Where(squirrel.Lt{"m.occurred_at": *to})
		}
		return q
	}

	outSQL, outArgs, err := part("OUT", "stock_out", "issued_by").ToSql()
	if err != nil {
		return squirrel.SelectBuilder{}, fmt.Errorf("build activity: %w", err)
	}
	union := part("IN", "stock_in", "received_by").Suffix("UNION ALL "+outSQL, outArgs...)
	return psql.Select("type", "product_name", "quantity", "at", "actor").FromSelect(union, "a"), nil
}

// WeeklyTotals entradas y salidas por semana (lunes) para las últimas `weeks` semanas, la actual incluida.
func (r *ReportRepo) WeeklyTotals(ctx context.Context, now time.Time, weeks int) ([]entity.WeeklyTotals, error) {
	query := `
		SELECT
			w.week_start,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_in
			  WHERE occurred_at >= w.week_start AND occurred_at < w.week_start + interval '7 days')::bigint AS stock_in,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_out
			  WHERE occurred_at >= w.week_start AND occurred_at < w.week_start + interval '7 days')::bigint AS stock_out
		FROM generate_series(
			date_trunc('week', $1::timestamptz) - ($2::int - 1) * interval '7 days',
			date_trunc('week', $1::timestamptz),
			interval '7 days'
		) AS w(week_start)
		ORDER BY w.week_start`
	totals := []entity.WeeklyTotals{}
	if err := pgxscan.Select(ctx, r.q, &totals, query, now, weeks); err != nil {
		return nil, fmt.Errorf("weekly totals: %w", err)
	}
	return totals, nil
}

// TopProducts productos con mayor saldo positivo.
func (r *ReportRepo) TopProducts(ctx context.Context, limit int) ([]entity.ProductBalance, error) {
	sql, args, err := psql.Select("name AS product_name", "quantity").
		From("products").
		Where(squirrel.Gt{"quantity": 0}).
		OrderBy("quantity DESC", "name ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top products: %w", err)
	}
	list := []entity.ProductBalance{}
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return list, nil
}

// DayTotals suma de entradas y salidas en [start, start+24h).
func (r *ReportRepo) DayTotals(ctx context.Context, start time.Time) (int64, int64, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_in  WHERE occurred_at >= $1 AND occurred_at < $2)::bigint,
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_out WHERE occurred_at >= $1 AND occurred_at < $2)::bigint`
	var totalIn, totalOut int64
	if err := r.q.QueryRow(ctx, query, start, start.Add(24*time.Hour)).Scan(&totalIn, &totalOut); err != nil {
		return 0, 0, fmt.Errorf("day totals: %w", err)
	}
	return totalIn, totalOut, nil
}

// Mismatches productos cuyo saldo difiere de Σ entradas − Σ salidas.
func (r *ReportRepo) Mismatches(ctx context.Context) ([]entity.BalanceMismatch, error) {
	query := `
		SELECT p.id AS product_id, p.name AS product_name, p.quantity,
		       COALESCE(i.total, 0)::bigint AS total_in,
		       COALESCE(o.total, 0)::bigint AS total_out
		FROM products p
		LEFT JOIN (SELECT product_id, SUM(quantity) AS total FROM stock_in GROUP BY product_id) i ON i.product_id = p.id
		LEFT JOIN (SELECT product_id, SUM(quantity) AS total FROM stock_out GROUP BY product_id) o ON o.product_id = p.id
		WHERE p.quantity <> COALESCE(i.total, 0) - COALESCE(o.total, 0)
		ORDER BY p.id`
	list := []entity.BalanceMismatch{}
	if err := pgxscan.Select(ctx, r.q, &list, query); err != nil {
		return nil, fmt.Errorf("balance mismatches: %w", err)
	}
	return list, nil
}
