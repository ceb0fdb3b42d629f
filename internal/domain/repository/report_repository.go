package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura sobre products, stock_in y stock_out.
// Las implementaciones nunca escriben.
type ReportRepository interface {
	GetStats(ctx context.Context) (entity.DashboardStats, error)
	// RecentActivity últimos `limit` movimientos (IN ∪ OUT), más recientes primero.
	RecentActivity(ctx context.Context, limit int) ([]entity.ActivityItem, error)
	// WeeklyTotals entradas/salidas de las `weeks` semanas que terminan en la actual.
	WeeklyTotals(ctx context.Context, now time.Time, weeks int) ([]entity.WeeklyTotals, error)
	TopProducts(ctx context.Context, limit int) ([]entity.ProductBalance, error)
	// DayTotals y DayMovements cubren [start, start+24h).
	DayTotals(ctx context.Context, start time.Time) (totalIn, totalOut int64, err error)
	DayMovements(ctx context.Context, start time.Time) ([]entity.ActivityItem, error)
	// Mismatches productos con quantity != Σ entradas − Σ salidas.
	Mismatches(ctx context.Context) ([]entity.BalanceMismatch, error)
}
