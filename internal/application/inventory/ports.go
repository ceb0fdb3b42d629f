package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa; si no, se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stockInRepo repository.StockInRepository,
		stockOutRepo repository.StockOutRepository,
	) error) error
}

// Recorder recibe una observación por cada operación del motor (métricas).
type Recorder interface {
	ObserveAdjustment(kind entity.MovementKind, op, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAdjustment(entity.MovementKind, string, string, time.Duration) {}
