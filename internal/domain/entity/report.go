package entity

import "time"

// DashboardStats totales globales del almacén.
type DashboardStats struct {
	TotalProducts       int64 `db:"total_products"`
	TotalStockIn        int64 `db:"total_stock_in"`
	TotalStockOut       int64 `db:"total_stock_out"`
	CurrentStockBalance int64 `db:"current_stock_balance"`
}

// ActivityItem movimiento (IN u OUT) en vistas de actividad y reporte diario.
type ActivityItem struct {
	Type        string    `db:"type"`
	ProductName string    `db:"product_name"`
	Quantity    int64     `db:"quantity"`
	At          time.Time `db:"at"`
	User        *string   `db:"actor"`
}

// WeeklyTotals entradas y salidas de una semana (lunes a domingo).
type WeeklyTotals struct {
	WeekStart time.Time `db:"week_start"`
	StockIn   int64     `db:"stock_in"`
	StockOut  int64     `db:"stock_out"`
}

// ProductBalance nombre y saldo de un producto (ranking del dashboard).
type ProductBalance struct {
	ProductName string `db:"product_name"`
	Quantity    int64  `db:"quantity"`
}

// BalanceMismatch producto cuyo saldo no coincide con la suma de sus movimientos.
type BalanceMismatch struct {
	ProductID   int64  `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int64  `db:"quantity"`
	TotalIn     int64  `db:"total_in"`
	TotalOut    int64  `db:"total_out"`
}

// Expected saldo que debería tener el producto según sus movimientos.
func (m BalanceMismatch) Expected() int64 {
	return m.TotalIn - m.TotalOut
}
