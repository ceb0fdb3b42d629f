// Package reports contiene los casos de uso de solo lectura: dashboard, resumen diario,
// exportaciones y verificación de consistencia de saldos.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	recentActivityLimit = 10 // movimientos en la actividad reciente
	dashboardWeeks      = 4  // semanas del gráfico semanal
	topProductsLimit    = 8  // productos en el ranking
	exportLimit         = 50000
)

// DailyRenderer genera el documento (PDF) del resumen diario.
type DailyRenderer interface {
	RenderDaily(report *dto.DailyReportResponse) ([]byte, error)
}

// MovementsExporter genera la hoja de cálculo de movimientos.
type MovementsExporter interface {
	ExportMovements(ins []*entity.StockIn, outs []*entity.StockOut) ([]byte, error)
}

// ReportUseCase reportes del almacén. Nunca escribe.
//
// Fuente de datos: ReportRepository para agregados y los repositorios de movimientos
// para las exportaciones.
type ReportUseCase struct {
	repo     repository.ReportRepository
	ins      repository.StockInRepository
	outs     repository.StockOutRepository
	pdf      DailyRenderer
	xlsx     MovementsExporter
	location *time.Location
	now      func() time.Time
}

// Option configura el ReportUseCase.
type Option func(*ReportUseCase)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *ReportUseCase) { uc.now = now }
}

// WithLocation zona horaria para días y semanas (por defecto UTC).
func WithLocation(loc *time.Location) Option {
	return func(uc *ReportUseCase) {
		if loc != nil {
			uc.location = loc
		}
	}
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	repo repository.ReportRepository,
	ins repository.StockInRepository,
	outs repository.StockOutRepository,
	pdf DailyRenderer,
	xlsx MovementsExporter,
	opts ...Option,
) *ReportUseCase {
	uc := &ReportUseCase{repo: repo, ins: ins, outs: outs, pdf: pdf, xlsx: xlsx, location: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Dashboard totales, actividad reciente, totales semanales y ranking.
//
// Cuatro consultas en paralelo:
//  1. GetStats        → totales
//  2. RecentActivity  → últimos 10 movimientos
//  3. WeeklyTotals    → últimas 4 semanas
//  4. TopProducts     → top 8 por saldo
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now().In(uc.location)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type statsResult struct {
		stats entity.DashboardStats
		err   error
	}
	type activityResult struct {
		items []entity.ActivityItem
		err   error
	}
	type weeklyResult struct {
		weeks []entity.WeeklyTotals
		err   error
	}
	type topResult struct {
		top []entity.ProductBalance
		err error
	}

	statsCh := make(chan statsResult, 1)
	activityCh := make(chan activityResult, 1)
	weeklyCh := make(chan weeklyResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		s, err := uc.repo.GetStats(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		items, err := uc.repo.RecentActivity(ctx, recentActivityLimit)
		activityCh <- activityResult{items, err}
	}()
	go func() {
		weeks, err := uc.repo.WeeklyTotals(ctx, now, dashboardWeeks)
		weeklyCh <- weeklyResult{weeks, err}
	}()
	go func() {
		top, err := uc.repo.TopProducts(ctx, topProductsLimit)
		topCh <- topResult{top, err}
	}()

	stats := <-statsCh
	activity := <-activityCh
	weekly := <-weeklyCh
	top := <-topCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", stats.err)
	}
	if activity.err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", activity.err)
	}
	if weekly.err != nil {
		return nil, fmt.Errorf("dashboard: totales semanales: %w", weekly.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}

	// ── Construir DTO ─────────────────────────────────────────────────────────
	resp := &dto.DashboardResponse{
		TotalProducts:       stats.stats.TotalProducts,
		TotalStockIn:        stats.stats.TotalStockIn,
		TotalStockOut:       stats.stats.TotalStockOut,
		CurrentStockBalance: stats.stats.CurrentStockBalance,
		RecentActivity:      uc.toActivity(activity.items),
		Weekly:              make([]dto.WeeklyTotalResponse, 0, len(weekly.weeks)),
		TopProducts:         make([]dto.ProductBalanceDTO, 0, len(top.top)),
	}
	for _, w := range weekly.weeks {
		resp.Weekly = append(resp.Weekly, dto.WeeklyTotalResponse{
			WeekStart: w.WeekStart.In(uc.location).Format(time.DateOnly),
			StockIn:   w.StockIn,
			StockOut:  w.StockOut,
		})
	}
	for _, p := range top.top {
		resp.TopProducts = append(resp.TopProducts, dto.ProductBalanceDTO{ProductName: p.ProductName, Quantity: p.Quantity})
	}
	return resp, nil
}

// Daily totales y movimientos de un día (YYYY-MM-DD; vacío = hoy).
func (uc *ReportUseCase) Daily(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	start, err := uc.dayStart(date)
	if err != nil {
		return nil, err
	}
	totalIn, totalOut, err := uc.repo.DayTotals(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: totales: %w", err)
	}
	items, err := uc.repo.DayMovements(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: movimientos: %w", err)
	}
	return &dto.DailyReportResponse{
		Date:      start.Format(time.DateOnly),
		TotalIn:   totalIn,
		TotalOut:  totalOut,
		Movements: uc.toActivity(items),
	}, nil
}

// DailyPDF el reporte diario como PDF.
func (uc *ReportUseCase) DailyPDF(ctx context.Context, date string) ([]byte, string, error) {
	report, err := uc.Daily(ctx, date)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.RenderDaily(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte diario: pdf: %w", err)
	}
	return doc, fmt.Sprintf("reporte-%s.pdf", report.Date), nil
}

// MovementsXLSX exporta entradas y salidas del rango [from, to] a una hoja de cálculo.
func (uc *ReportUseCase) MovementsXLSX(ctx context.Context, from, to string) ([]byte, string, error) {
	filter := entity.MovementFilter{Limit: exportLimit}
	label := "todos"
	if from != "" {
		start, err := uc.dayStart(from)
		if err != nil {
			return nil, "", err
		}
		filter.From = &start
		label = start.Format(time.DateOnly)
	}
	if to != "" {
		end, err := uc.dayStart(to)
		if err != nil {
			return nil, "", err
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
		label += "_" + end.Format(time.DateOnly)
	}
	ins, err := uc.ins.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("exportar entradas: %w", err)
	}
	outs, err := uc.outs.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("exportar salidas: %w", err)
	}
	doc, err := uc.xlsx.ExportMovements(ins, outs)
	if err != nil {
		return nil, "", fmt.Errorf("exportar movimientos: %w", err)
	}
	return doc, fmt.Sprintf("movimientos-%s.xlsx", label), nil
}

// Consistency productos cuyo saldo no coincide con Σ entradas − Σ salidas.
func (uc *ReportUseCase) Consistency(ctx context.Context) (*dto.ConsistencyResponse, error) {
	list, err := uc.repo.Mismatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("consistencia: %w", err)
	}
	resp := &dto.ConsistencyResponse{Consistent: len(list) == 0, Mismatches: make([]dto.BalanceMismatchDTO, 0, len(list))}
	for _, m := range list {
		resp.Mismatches = append(resp.Mismatches, dto.BalanceMismatchDTO{
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			Expected:    m.Expected(),
		})
	}
	return resp, nil
}

func (uc *ReportUseCase) dayStart(date string) (time.Time, error) {
	if date == "" {
		now := uc.now().In(uc.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location), nil
	}
	t, dayOnly, err := usecase.ParseDate(date, uc.location)
	if err != nil {
		return time.Time{}, err
	}
	if !dayOnly {
		t = t.In(uc.location)
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, uc.location)
	}
	return t, nil
}

func (uc *ReportUseCase) toActivity(items []entity.ActivityItem) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(items))
	for _, it := range items {
		a := dto.ActivityResponse{Type: it.Type, ProductName: it.ProductName, Quantity: it.Quantity, At: it.At.In(uc.location)}
		if it.User != nil {
			a.User = *it.User
		}
		out = append(out, a)
	}
	return out
}
