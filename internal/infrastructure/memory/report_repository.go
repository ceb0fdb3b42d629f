package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura sobre el store en memoria.
type ReportRepo struct {
	store *Store
}

// Reports repositorio de reportes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{store: s} }

// GetStats totales globales.
func (r *ReportRepo) GetStats(_ context.Context) (entity.DashboardStats, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := entity.DashboardStats{TotalProducts: int64(len(s.products))}
	for _, e := range s.ins {
		stats.TotalStockIn += e.Quantity
	}
	for _, e := range s.outs {
		stats.TotalStockOut += e.Quantity
	}
	for _, p := range s.products {
		stats.CurrentStockBalance += p.Quantity
	}
	return stats, nil
}

// activity todos los movimientos en [from, to) (zero = sin límite), con nombre y responsable.
// Llamar con s.mu tomado.
func (s *Store) activity(from, to time.Time) []entity.ActivityItem {
	items := []entity.ActivityItem{}
	within := func(at time.Time) bool {
		return (from.IsZero() || !at.Before(from)) && (to.IsZero() || at.Before(to))
	}
	name := func(id int64) string {
		if p, ok := s.products[id]; ok {
			return p.Name
		}
		return ""
	}
	for _, e := range s.ins {
		if within(e.OccurredAt) {
			items = append(items, entity.ActivityItem{Type: string(entity.KindIn), ProductName: name(e.ProductID), Quantity: e.Quantity, At: e.OccurredAt, User: optional(e.ReceivedBy)})
		}
	}
	for _, e := range s.outs {
		if within(e.OccurredAt) {
			items = append(items, entity.ActivityItem{Type: string(entity.KindOut), ProductName: name(e.ProductID), Quantity: e.Quantity, At: e.OccurredAt, User: optional(e.IssuedBy)})
		}
	}
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RecentActivity últimos movimientos, más recientes primero.
func (r *ReportRepo) RecentActivity(_ context.Context, limit int) ([]entity.ActivityItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.activity(time.Time{}, time.Time{})
	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
	return page(items, limit, 0), nil
}

// DayMovements movimientos de [start, start+24h) en orden cronológico.
func (r *ReportRepo) DayMovements(_ context.Context, start time.Time) ([]entity.ActivityItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.activity(start, start.Add(24*time.Hour))
	sort.SliceStable(items, func(i, j int) bool { return items[i].At.Before(items[j].At) })
	return items, nil
}

// DayTotals suma de entradas y salidas de [start, start+24h).
func (r *ReportRepo) DayTotals(_ context.Context, start time.Time) (int64, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var totalIn, totalOut int64
	for _, it := range s.activity(start, start.Add(24*time.Hour)) {
		if it.Type == string(entity.KindIn) {
			totalIn += it.Quantity
		} else {
			totalOut += it.Quantity
		}
	}
	return totalIn, totalOut, nil
}

// WeeklyTotals semanas que empiezan en lunes, la actual incluida, en orden ascendente.
func (r *ReportRepo) WeeklyTotals(_ context.Context, now time.Time, weeks int) ([]entity.WeeklyTotals, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	current := WeekStart(now)
	totals := make([]entity.WeeklyTotals, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		start := current.AddDate(0, 0, -7*i)
		w := entity.WeeklyTotals{WeekStart: start}
		for _, it := range s.activity(start, start.AddDate(0, 0, 7)) {
			if it.Type == string(entity.KindIn) {
				w.StockIn += it.Quantity
			} else {
				w.StockOut += it.Quantity
			}
		}
		totals = append(totals, w)
	}
	return totals, nil
}

// WeekStart lunes 00:00 de la semana de t (misma zona horaria).
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// TopProducts productos con mayor saldo positivo.
func (r *ReportRepo) TopProducts(_ context.Context, limit int) ([]entity.ProductBalance, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []entity.ProductBalance{}
	for _, p := range s.products {
		if p.Quantity > 0 {
			list = append(list, entity.ProductBalance{ProductName: p.Name, Quantity: p.Quantity})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity != list[j].Quantity {
			return list[i].Quantity > list[j].Quantity
		}
		return list[i].ProductName < list[j].ProductName
	})
	return page(list, limit, 0), nil
}

// Mismatches productos con saldo distinto de la suma de sus movimientos.
func (r *ReportRepo) Mismatches(_ context.Context) ([]entity.BalanceMismatch, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []entity.BalanceMismatch{}
	for _, p := range s.products {
		m := entity.BalanceMismatch{ProductID: p.ID, ProductName: p.Name, Quantity: p.Quantity}
		for _, e := range s.ins {
			if e.ProductID == p.ID {
				m.TotalIn += e.Quantity
			}
		}
		for _, e := range s.outs {
			if e.ProductID == p.ID {
				m.TotalOut += e.Quantity
			}
		}
		if m.Expected() != p.Quantity {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}
