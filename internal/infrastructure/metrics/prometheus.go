// Package metrics expone contadores e histogramas del motor de inventario en formato Prometheus.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const namespace = "almacen"

var _ inventory.Recorder = (*Registry)(nil)

// Registry agrupa los colectores de la aplicación en un registro propio (no el global).
type Registry struct {
	reg         *prometheus.Registry
	adjustments *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRegistry crea el registro con los colectores de proceso y Go incluidos.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_adjustments_total",
			Help:      "Operaciones del motor de stock por tipo, operación y resultado.",
		}, []string{"kind", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stock_adjustment_duration_seconds",
			Help:      "Duración de las transacciones del motor de stock.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"kind", "op"}),
	}
	r.reg.MustRegister(
		r.adjustments,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAdjustment implementa inventory.Recorder.
func (r *Registry) ObserveAdjustment(kind entity.MovementKind, op, outcome string, elapsed time.Duration) {
	k := string(kind)
	if k == "" {
		k = "product"
	}
	r.adjustments.WithLabelValues(k, op, outcome).Inc()
	r.duration.WithLabelValues(k, op).Observe(elapsed.Seconds())
}

// Gatherer acceso al registro (tests y exportadores adicionales).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler handler fiber para /metrics.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}
