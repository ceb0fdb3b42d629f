package dto

import "time"

// DashboardResponse resumen del almacén.
type DashboardResponse struct {
	TotalProducts       int64                 `json:"total_products"`
	TotalStockIn        int64                 `json:"total_stock_in"`
	TotalStockOut       int64                 `json:"total_stock_out"`
	CurrentStockBalance int64                 `json:"current_stock_balance"`
	RecentActivity      []ActivityResponse    `json:"recent_activity"`
	Weekly              []WeeklyTotalResponse `json:"weekly"`
	TopProducts         []ProductBalanceDTO   `json:"top_products"`
}

// ActivityResponse movimiento en la actividad reciente o en el reporte diario.
type ActivityResponse struct {
	Type        string    `json:"type"` // IN | OUT
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	At          time.Time `json:"at"`
	User        string    `json:"user,omitempty"`
}

// WeeklyTotalResponse totales de una semana.
type WeeklyTotalResponse struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD (lunes)
	StockIn   int64  `json:"stock_in"`
	StockOut  int64  `json:"stock_out"`
}

// ProductBalanceDTO producto y su saldo.
type ProductBalanceDTO struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// DailyReportResponse resumen de un día.
type DailyReportResponse struct {
	Date      string             `json:"date"` // YYYY-MM-DD
	TotalIn   int64              `json:"total_in"`
	TotalOut  int64              `json:"total_out"`
	Movements []ActivityResponse `json:"movements"`
}

// ConsistencyResponse productos con saldo distinto de la suma de sus movimientos.
type ConsistencyResponse struct {
	Consistent bool                 `json:"consistent"`
	Mismatches []BalanceMismatchDTO `json:"mismatches"`
}

// BalanceMismatchDTO detalle de una inconsistencia.
type BalanceMismatchDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Expected    int64  `json:"expected"`
}
